package service

import (
	"context"
	"io"

	"github.com/alexanderramin/roastery/internal/csvimport"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/flavorwheel"
	"github.com/alexanderramin/roastery/internal/taxonomy"
)

// RowError reports one rejected import row. Row is the 1-based line in the
// source file, counting the header as line 1.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises an import. SuccessCount + ErrorCount equals the
// number of non-blank data rows.
type ImportResult struct {
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`
	Errors       []RowError `json:"errors"`
}

// RowOutcome is reported for every row as soon as it has been processed.
type RowOutcome struct {
	Row   int
	Total int
	Slug  string
	Err   *RowError
}

// ImportObserver follows an import row by row.
type ImportObserver interface {
	OnRow(RowOutcome)
}

// ImportObserverFunc adapts a function to ImportObserver.
type ImportObserverFunc func(RowOutcome)

func (f ImportObserverFunc) OnRow(o RowOutcome) { f(o) }

type ImportService interface {
	ImportCSV(ctx context.Context, r io.Reader, obs ImportObserver) (*ImportResult, error)
	ImportXLSX(ctx context.Context, r io.Reader, obs ImportObserver) (*ImportResult, error)
	// ImportFile picks the reader from the file extension.
	ImportFile(ctx context.Context, path string, obs ImportObserver) (*ImportResult, error)
	ImportRecords(ctx context.Context, records []csvimport.Record, obs ImportObserver) (*ImportResult, error)
}

type CoffeeService interface {
	Create(ctx context.Context, in CoffeeInput) (*domain.CoffeeDetail, error)
	Update(ctx context.Context, id string, in CoffeeInput) (*domain.CoffeeDetail, error)
	Get(ctx context.Context, id string) (*domain.CoffeeDetail, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CoffeeDetail, error)
	List(ctx context.Context, filter domain.CoffeeFilter) ([]*domain.Coffee, error)
	Delete(ctx context.Context, id string) error
}

type RegionService interface {
	Create(ctx context.Context, in RegionInput) (*domain.Region, error)
	Update(ctx context.Context, id string, in RegionInput) (*domain.Region, error)
	Get(ctx context.Context, id string) (*domain.Region, error)
	List(ctx context.Context) ([]*domain.Region, error)
	Delete(ctx context.Context, id string) error
}

type BrewMethodService interface {
	Create(ctx context.Context, in BrewMethodInput) (*domain.BrewMethod, error)
	Update(ctx context.Context, id string, in BrewMethodInput) (*domain.BrewMethod, error)
	Get(ctx context.Context, id string) (*domain.BrewMethod, error)
	List(ctx context.Context) ([]*domain.BrewMethod, error)
	Delete(ctx context.Context, id string) error
}

type RoastLevelService interface {
	Create(ctx context.Context, in RoastLevelInput) (*domain.RoastLevel, error)
	Update(ctx context.Context, id string, in RoastLevelInput) (*domain.RoastLevel, error)
	Get(ctx context.Context, id string) (*domain.RoastLevel, error)
	List(ctx context.Context) ([]*domain.RoastLevel, error)
	Delete(ctx context.Context, id string) error
}

// WheelRequest selects what the flavor wheel emphasises. A coffee given by
// id or slug contributes its flavor notes to the highlight set.
type WheelRequest struct {
	Highlight           flavorwheel.Highlight
	CoffeeID            string
	CoffeeSlug          string
	AlwaysShowTopLabels bool
	Layout              bool
}

type WheelResult struct {
	Tree *flavorwheel.Node `json:"tree"`
	Arcs []flavorwheel.Arc `json:"arcs,omitempty"`
}

type SeedResult struct {
	Categories int `json:"categories"`
	Notes      int `json:"notes"`
}

type FlavorService interface {
	CreateCategory(ctx context.Context, in FlavorCategoryInput) (*domain.FlavorCategory, error)
	UpdateCategory(ctx context.Context, id string, in FlavorCategoryInput) (*domain.FlavorCategory, error)
	GetCategory(ctx context.Context, id string) (*domain.FlavorCategory, error)
	ListCategories(ctx context.Context) ([]domain.FlavorCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateNote(ctx context.Context, in FlavorNoteInput) (*domain.FlavorNote, error)
	UpdateNote(ctx context.Context, id string, in FlavorNoteInput) (*domain.FlavorNote, error)
	GetNote(ctx context.Context, id string) (*domain.FlavorNote, error)
	ListNotes(ctx context.Context) ([]domain.FlavorNote, error)
	DeleteNote(ctx context.Context, id string) error

	Wheel(ctx context.Context, req WheelRequest) (*WheelResult, error)
	// Seed loads a taxonomy. It refuses to touch an existing taxonomy
	// unless replace is set.
	Seed(ctx context.Context, seed *taxonomy.Seed, replace bool) (*SeedResult, error)
}

// UploadInput is one image upload.
type UploadInput struct {
	Folder      string
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

type ImageService interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, in UploadInput) (string, error)
	// Delete removes the image behind url. URLs outside the store are ignored.
	Delete(ctx context.Context, url string) error
}

type ChatService interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ContentService interface {
	// Generate drafts catalog copy for a coffee with the LLM.
	Generate(ctx context.Context, in GenerateContentInput) (*GeneratedContent, error)
}
