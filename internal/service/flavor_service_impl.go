package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/flavorwheel"
	"github.com/alexanderramin/roastery/internal/repository"
	"github.com/alexanderramin/roastery/internal/taxonomy"
)

type flavorService struct {
	flavors  repository.FlavorRepo
	coffees  repository.CoffeeRepo
	uow      db.UnitOfWork
	log      logrus.FieldLogger
	observer UseCaseObserver
}

func NewFlavorService(
	flavors repository.FlavorRepo,
	coffees repository.CoffeeRepo,
	uow db.UnitOfWork,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) FlavorService {
	return &flavorService{
		flavors:  flavors,
		coffees:  coffees,
		uow:      uow,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

// checkParent requires a referenced parent to exist and sit exactly one
// level above.
func (s *flavorService) checkParent(ctx context.Context, id string, in FlavorCategoryInput) error {
	if in.ParentID == nil || *in.ParentID == "" {
		return nil
	}
	if *in.ParentID == id {
		return fmt.Errorf("%w: a category cannot be its own parent", ErrValidation)
	}
	parent, err := s.flavors.GetCategory(ctx, *in.ParentID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: parent category %s does not exist", ErrValidation, *in.ParentID)
	}
	if err != nil {
		return err
	}
	if parent.Level != in.Level-1 {
		return fmt.Errorf("%w: a level %d category needs a level %d parent, got %d",
			ErrValidation, in.Level, in.Level-1, parent.Level)
	}
	return nil
}

func (s *flavorService) CreateCategory(ctx context.Context, in FlavorCategoryInput) (*domain.FlavorCategory, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, "", in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.FlavorCategory{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Level:     in.Level,
		ParentID:  blankToNil(in.ParentID),
		ColorHex:  in.ColorHex,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.flavors.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *flavorService) UpdateCategory(ctx context.Context, id string, in FlavorCategoryInput) (*domain.FlavorCategory, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.flavors.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, id, in); err != nil {
		return nil, err
	}
	c.Name, c.Level, c.ParentID, c.ColorHex = in.Name, in.Level, blankToNil(in.ParentID), in.ColorHex
	c.UpdatedAt = time.Now().UTC()
	if err := s.flavors.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *flavorService) GetCategory(ctx context.Context, id string) (*domain.FlavorCategory, error) {
	return s.flavors.GetCategory(ctx, id)
}

func (s *flavorService) ListCategories(ctx context.Context) ([]domain.FlavorCategory, error) {
	return s.flavors.ListCategories(ctx)
}

func (s *flavorService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.flavors.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.flavors.DeleteCategory(ctx, id)
}

func (s *flavorService) checkNoteCategory(ctx context.Context, in FlavorNoteInput) error {
	if in.CategoryID == nil || *in.CategoryID == "" {
		return nil
	}
	_, err := s.flavors.GetCategory(ctx, *in.CategoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: category %s does not exist", ErrValidation, *in.CategoryID)
	}
	return err
}

func (s *flavorService) CreateNote(ctx context.Context, in FlavorNoteInput) (*domain.FlavorNote, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkNoteCategory(ctx, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	n := &domain.FlavorNote{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	in.apply(n)
	if err := s.flavors.CreateNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *flavorService) UpdateNote(ctx context.Context, id string, in FlavorNoteInput) (*domain.FlavorNote, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	n, err := s.flavors.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNoteCategory(ctx, in); err != nil {
		return nil, err
	}
	in.apply(n)
	n.UpdatedAt = time.Now().UTC()
	if err := s.flavors.UpdateNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (in FlavorNoteInput) apply(n *domain.FlavorNote) {
	n.Name = in.Name
	n.CategoryID = blankToNil(in.CategoryID)
	n.ColorHex = in.ColorHex
	n.Description = in.Description
	n.IconURL = in.IconURL
}

func (s *flavorService) GetNote(ctx context.Context, id string) (*domain.FlavorNote, error) {
	return s.flavors.GetNote(ctx, id)
}

func (s *flavorService) ListNotes(ctx context.Context) ([]domain.FlavorNote, error) {
	return s.flavors.ListNotes(ctx)
}

func (s *flavorService) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.flavors.GetNote(ctx, id); err != nil {
		return err
	}
	return s.flavors.DeleteNote(ctx, id)
}

func (s *flavorService) Wheel(ctx context.Context, req WheelRequest) (*WheelResult, error) {
	highlight := req.Highlight
	if req.CoffeeID != "" || req.CoffeeSlug != "" {
		notes, err := s.coffeeNotes(ctx, req.CoffeeID, req.CoffeeSlug)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			highlight.IDs = append(highlight.IDs, n.ID)
			highlight.Names = append(highlight.Names, n.Name)
		}
	}

	categories, err := s.flavors.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.flavors.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	tree := flavorwheel.Annotate(
		flavorwheel.Build(categories, notes),
		highlight,
		flavorwheel.Options{AlwaysShowTopLabels: req.AlwaysShowTopLabels},
	)
	result := &WheelResult{Tree: tree}
	if req.Layout {
		result.Arcs = flavorwheel.Layout(tree, flavorwheel.DefaultLayoutOptions())
	}
	return result, nil
}

func (s *flavorService) coffeeNotes(ctx context.Context, id, slug string) ([]domain.FlavorNote, error) {
	if id == "" {
		c, err := s.coffees.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		id = c.ID
	} else if _, err := s.coffees.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.coffees.ListFlavorNotes(ctx, id)
}

func (s *flavorService) Seed(ctx context.Context, seed *taxonomy.Seed, replace bool) (result *SeedResult, err error) {
	fields := map[string]any{"replace": replace}
	defer observe(ctx, s.observer, "flavor-seed", fields)(&err)

	if err = seed.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	categories, notes := seed.Flatten(time.Now().UTC())

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		flavors := repository.NewSQLiteFlavorRepo(tx)
		existing, err := flavors.CountCategories(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			if !replace {
				return fmt.Errorf("%w: %d flavor categories already exist", ErrConflict, existing)
			}
			if err := flavors.DeleteTaxonomy(ctx); err != nil {
				return err
			}
		}
		for i := range categories {
			if err := flavors.CreateCategory(ctx, &categories[i]); err != nil {
				return err
			}
		}
		for i := range notes {
			if err := flavors.CreateNote(ctx, &notes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["categories"] = len(categories)
	fields["notes"] = len(notes)
	s.log.WithFields(logrus.Fields{"categories": len(categories), "notes": len(notes)}).Info("flavor taxonomy seeded")
	return &SeedResult{Categories: len(categories), Notes: len(notes)}, nil
}

func blankToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
