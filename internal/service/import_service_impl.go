package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/csvimport"
	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/repository"
)

// Row messages are shown to shop staff as-is.
const (
	msgNameMissing  = "Name fehlt"
	msgUnknownError = "Unbekannter Fehler"
)

var importRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "roastery_import_rows_total",
	Help: "Imported catalog rows by outcome.",
}, []string{"result"})

type importService struct {
	uow      db.UnitOfWork
	log      logrus.FieldLogger
	observer UseCaseObserver
	now      func() time.Time
}

func NewImportService(uow db.UnitOfWork, log logrus.FieldLogger, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *importService) ImportCSV(ctx context.Context, r io.Reader, obs ImportObserver) (*ImportResult, error) {
	if s.uow == nil {
		return nil, ErrImportNotConfigured
	}
	records, err := csvimport.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return s.ImportRecords(ctx, records, obs)
}

func (s *importService) ImportXLSX(ctx context.Context, r io.Reader, obs ImportObserver) (*ImportResult, error) {
	if s.uow == nil {
		return nil, ErrImportNotConfigured
	}
	records, err := csvimport.ReadXLSX(r)
	if err != nil {
		return nil, err
	}
	return s.ImportRecords(ctx, records, obs)
}

func (s *importService) ImportFile(ctx context.Context, path string, obs ImportObserver) (*ImportResult, error) {
	if s.uow == nil {
		return nil, ErrImportNotConfigured
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	records, err := csvimport.Read(path, f)
	if err != nil {
		return nil, err
	}
	return s.ImportRecords(ctx, records, obs)
}

// ImportRecords writes every record in its own transaction. A failing row
// is recorded and skipped; once the loop has started the call itself does
// not fail and is not interrupted by cancellation of ctx.
func (s *importService) ImportRecords(ctx context.Context, records []csvimport.Record, obs ImportObserver) (result *ImportResult, err error) {
	if s.uow == nil {
		return nil, ErrImportNotConfigured
	}
	fields := map[string]any{"rows": len(records)}
	defer observe(ctx, s.observer, "import", fields)(&err)

	ctx = context.WithoutCancel(ctx)
	result = &ImportResult{Errors: []RowError{}}

	for _, rec := range records {
		cr := csvimport.MapRecord(rec)
		outcome := RowOutcome{Row: cr.Row, Total: len(records), Slug: cr.Slug}

		if rowErr := s.importRow(ctx, cr); rowErr != nil {
			re := RowError{Row: cr.Row, Message: rowMessage(rowErr)}
			result.Errors = append(result.Errors, re)
			result.ErrorCount++
			outcome.Err = &re
			importRowsTotal.WithLabelValues("error").Inc()
			s.log.WithFields(logrus.Fields{"row": cr.Row, "slug": cr.Slug}).WithError(rowErr).Warn("import row failed")
		} else {
			result.SuccessCount++
			importRowsTotal.WithLabelValues("success").Inc()
		}

		if obs != nil {
			obs.OnRow(outcome)
		}
	}

	fields["success_count"] = result.SuccessCount
	fields["error_count"] = result.ErrorCount
	return result, nil
}

var errNameMissing = errors.New(msgNameMissing)

func (s *importService) importRow(ctx context.Context, cr csvimport.CoffeeRecord) error {
	if cr.Name == "" {
		return errNameMissing
	}

	coffee := cr.Coffee()
	coffee.ID = uuid.New().String()
	now := s.now().UTC()
	coffee.CreatedAt = now
	coffee.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		coffees := repository.NewSQLiteCoffeeRepo(tx)
		terms := repository.NewSQLiteProductTaxonomyRepo(tx)

		id, err := coffees.UpsertBySlug(ctx, coffee)
		if err != nil {
			return err
		}

		for _, name := range cr.Categories {
			slug := csvimport.Slugify(name)
			if slug == "" {
				continue
			}
			catID, err := terms.UpsertCategory(ctx, slug, name)
			if err != nil {
				return err
			}
			if err := terms.LinkCategory(ctx, id, catID); err != nil {
				return err
			}
		}

		for _, name := range cr.Tags {
			slug := csvimport.Slugify(name)
			if slug == "" {
				continue
			}
			tagID, err := terms.UpsertTag(ctx, slug, name)
			if err != nil {
				return err
			}
			if err := terms.LinkTag(ctx, id, tagID); err != nil {
				return err
			}
		}

		for _, attr := range cr.Attributes {
			err := terms.UpsertAttribute(ctx, domain.Attribute{
				CoffeeID: id,
				Key:      attr.Key,
				Value:    attr.Value,
				Source:   domain.AttributeSourceCSV,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func rowMessage(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return msgUnknownError
}
