package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/roastery/internal/csvimport"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/repository"
)

type regionService struct {
	regions repository.RegionRepo
}

func NewRegionService(regions repository.RegionRepo) RegionService {
	return &regionService{regions: regions}
}

func (in RegionInput) apply(r *domain.Region) {
	r.Country = in.Country
	r.RegionName = in.RegionName
	r.Latitude = in.Latitude
	r.Longitude = in.Longitude
	r.EmblemURL = in.EmblemURL
	r.Description = in.Description
}

func (s *regionService) Create(ctx context.Context, in RegionInput) (*domain.Region, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	r := &domain.Region{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	in.apply(r)
	if err := s.regions.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *regionService) Update(ctx context.Context, id string, in RegionInput) (*domain.Region, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	r, err := s.regions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(r)
	r.UpdatedAt = time.Now().UTC()
	if err := s.regions.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *regionService) Get(ctx context.Context, id string) (*domain.Region, error) {
	return s.regions.GetByID(ctx, id)
}

func (s *regionService) List(ctx context.Context) ([]*domain.Region, error) {
	return s.regions.List(ctx)
}

func (s *regionService) Delete(ctx context.Context, id string) error {
	if _, err := s.regions.GetByID(ctx, id); err != nil {
		return err
	}
	return s.regions.Delete(ctx, id)
}

type brewMethodService struct {
	methods repository.BrewMethodRepo
}

func NewBrewMethodService(methods repository.BrewMethodRepo) BrewMethodService {
	return &brewMethodService{methods: methods}
}

func (s *brewMethodService) Create(ctx context.Context, in BrewMethodInput) (*domain.BrewMethod, error) {
	in.Slug = slugOrName(in.Slug, in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	b := &domain.BrewMethod{
		ID:        uuid.New().String(),
		Slug:      in.Slug,
		Name:      in.Name,
		IconURL:   in.IconURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.methods.Create(ctx, b); err != nil {
		return nil, uniqueSlugError(in.Slug, err)
	}
	return b, nil
}

func (s *brewMethodService) Update(ctx context.Context, id string, in BrewMethodInput) (*domain.BrewMethod, error) {
	in.Slug = slugOrName(in.Slug, in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	b, err := s.methods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Slug, b.Name, b.IconURL = in.Slug, in.Name, in.IconURL
	b.UpdatedAt = time.Now().UTC()
	if err := s.methods.Update(ctx, b); err != nil {
		return nil, uniqueSlugError(in.Slug, err)
	}
	return b, nil
}

func (s *brewMethodService) Get(ctx context.Context, id string) (*domain.BrewMethod, error) {
	return s.methods.GetByID(ctx, id)
}

func (s *brewMethodService) List(ctx context.Context) ([]*domain.BrewMethod, error) {
	return s.methods.List(ctx)
}

func (s *brewMethodService) Delete(ctx context.Context, id string) error {
	if _, err := s.methods.GetByID(ctx, id); err != nil {
		return err
	}
	return s.methods.Delete(ctx, id)
}

type roastLevelService struct {
	levels repository.RoastLevelRepo
}

func NewRoastLevelService(levels repository.RoastLevelRepo) RoastLevelService {
	return &roastLevelService{levels: levels}
}

func (s *roastLevelService) Create(ctx context.Context, in RoastLevelInput) (*domain.RoastLevel, error) {
	in.Slug = slugOrName(in.Slug, in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	r := &domain.RoastLevel{
		ID:          uuid.New().String(),
		Slug:        in.Slug,
		Name:        in.Name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.levels.Create(ctx, r); err != nil {
		return nil, uniqueSlugError(in.Slug, err)
	}
	return r, nil
}

func (s *roastLevelService) Update(ctx context.Context, id string, in RoastLevelInput) (*domain.RoastLevel, error) {
	in.Slug = slugOrName(in.Slug, in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	r, err := s.levels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Slug, r.Name, r.Description, r.SortOrder = in.Slug, in.Name, in.Description, in.SortOrder
	r.UpdatedAt = time.Now().UTC()
	if err := s.levels.Update(ctx, r); err != nil {
		return nil, uniqueSlugError(in.Slug, err)
	}
	return r, nil
}

func (s *roastLevelService) Get(ctx context.Context, id string) (*domain.RoastLevel, error) {
	return s.levels.GetByID(ctx, id)
}

func (s *roastLevelService) List(ctx context.Context) ([]*domain.RoastLevel, error) {
	return s.levels.List(ctx)
}

func (s *roastLevelService) Delete(ctx context.Context, id string) error {
	if _, err := s.levels.GetByID(ctx, id); err != nil {
		return err
	}
	return s.levels.Delete(ctx, id)
}

func slugOrName(slug, name string) string {
	if slug != "" {
		return slug
	}
	return csvimport.Slugify(name)
}

func uniqueSlugError(slug string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: slug %q is already taken", ErrConflict, slug)
	}
	return err
}
