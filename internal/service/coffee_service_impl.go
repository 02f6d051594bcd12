package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/csvimport"
	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/repository"
)

type coffeeService struct {
	coffees  repository.CoffeeRepo
	terms    repository.ProductTaxonomyRepo
	images   ImageService
	uow      db.UnitOfWork
	log      logrus.FieldLogger
	observer UseCaseObserver
}

// NewCoffeeService wires the coffee catalog. images may be nil when no
// object store is configured; deletes then leave image URLs alone.
func NewCoffeeService(
	coffees repository.CoffeeRepo,
	terms repository.ProductTaxonomyRepo,
	images ImageService,
	uow db.UnitOfWork,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) CoffeeService {
	return &coffeeService{
		coffees:  coffees,
		terms:    terms,
		images:   images,
		uow:      uow,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func checkCoffeeInput(in *CoffeeInput) error {
	if in.Slug == "" {
		in.Slug = csvimport.Slugify(in.Name)
	}
	if err := validateInput(in); err != nil {
		return err
	}
	if in.AltitudeMin != nil && in.AltitudeMax != nil && *in.AltitudeMin > *in.AltitudeMax {
		return fmt.Errorf("%w: altitude_min is above altitude_max", ErrValidation)
	}
	if in.RegularPrice != nil && in.RegularPrice.IsNegative() || in.SalePrice != nil && in.SalePrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", ErrValidation)
	}
	return nil
}

func (s *coffeeService) Create(ctx context.Context, in CoffeeInput) (detail *domain.CoffeeDetail, err error) {
	defer observe(ctx, s.observer, "coffee-create", map[string]any{"name": in.Name})(&err)

	if err = checkCoffeeInput(&in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Coffee{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	in.apply(c)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		coffees := repository.NewSQLiteCoffeeRepo(tx)
		if err := coffees.Create(ctx, c); err != nil {
			return err
		}
		return setCoffeeLinks(ctx, coffees, c.ID, in)
	})
	if err != nil {
		return nil, coffeeWriteError(c.Slug, err)
	}
	return s.Get(ctx, c.ID)
}

func (s *coffeeService) Update(ctx context.Context, id string, in CoffeeInput) (detail *domain.CoffeeDetail, err error) {
	defer observe(ctx, s.observer, "coffee-update", map[string]any{"coffee_id": id})(&err)

	if err = checkCoffeeInput(&in); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		coffees := repository.NewSQLiteCoffeeRepo(tx)
		c, err := coffees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.apply(c)
		c.UpdatedAt = time.Now().UTC()
		if err := coffees.Update(ctx, c); err != nil {
			return err
		}
		return setCoffeeLinks(ctx, coffees, id, in)
	})
	if err != nil {
		return nil, coffeeWriteError(in.Slug, err)
	}
	return s.Get(ctx, id)
}

func setCoffeeLinks(ctx context.Context, coffees repository.CoffeeRepo, id string, in CoffeeInput) error {
	if err := coffees.SetRegions(ctx, id, in.RegionIDs); err != nil {
		return err
	}
	if err := coffees.SetFlavorNotes(ctx, id, in.FlavorNoteIDs); err != nil {
		return err
	}
	return coffees.SetBrewMethods(ctx, id, in.BrewMethodIDs)
}

func coffeeWriteError(slug string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%w: slug %q is already taken", ErrConflict, slug)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: unknown region, flavor note or brew method", ErrValidation)
	default:
		return fmt.Errorf("saving coffee: %w", err)
	}
}

func (s *coffeeService) Get(ctx context.Context, id string) (*domain.CoffeeDetail, error) {
	c, err := s.coffees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, c)
}

func (s *coffeeService) GetBySlug(ctx context.Context, slug string) (*domain.CoffeeDetail, error) {
	c, err := s.coffees.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, c)
}

func (s *coffeeService) detail(ctx context.Context, c *domain.Coffee) (*domain.CoffeeDetail, error) {
	d := &domain.CoffeeDetail{Coffee: *c}
	var err error
	if d.Regions, err = s.coffees.ListRegions(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.FlavorNotes, err = s.coffees.ListFlavorNotes(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.BrewMethods, err = s.coffees.ListBrewMethods(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.Categories, err = s.terms.ListCategories(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.Tags, err = s.terms.ListTags(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.Attributes, err = s.terms.ListAttributes(ctx, c.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *coffeeService) List(ctx context.Context, filter domain.CoffeeFilter) ([]*domain.Coffee, error) {
	return s.coffees.List(ctx, filter)
}

// Delete removes the stored image first. A storage failure is logged and
// does not block removing the row.
func (s *coffeeService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "coffee-delete", map[string]any{"coffee_id": id})(&err)

	c, err := s.coffees.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.images != nil && c.ImageURL != nil && *c.ImageURL != "" {
		if imgErr := s.images.Delete(ctx, *c.ImageURL); imgErr != nil {
			s.log.WithFields(logrus.Fields{"coffee_id": id, "image_url": *c.ImageURL}).
				WithError(imgErr).Warn("deleting coffee image failed")
		}
	}

	return s.coffees.Delete(ctx, id)
}
