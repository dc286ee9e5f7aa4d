package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/pipeforge/prql-translator/internal/models"
	"github.com/pipeforge/prql-translator/internal/store"
	"github.com/pipeforge/prql-translator/pkg/filter"
)

// HistoryService records and serves previously performed translations.
type HistoryService struct {
	store *store.Store
}

func NewHistoryService(st *store.Store) *HistoryService {
	return &HistoryService{store: st}
}

type SortField struct {
	Field string
	Desc  bool
}

type HistoryListParams struct {
	Dialect  string
	Status   string
	Filter   filter.Expression
	Sort     []SortField
	Page     int
	PageSize int
}

// Record stores one translation.
func (s *HistoryService) Record(ctx context.Context, t models.Translation) error {
	return s.store.Translations().Add(ctx, t)
}

func (s *HistoryService) Get(ctx context.Context, id uuid.UUID) (*models.Translation, error) {
	return s.store.Translations().Get(ctx, id)
}

// List returns one page of translations plus the total number of matches.
func (s *HistoryService) List(ctx context.Context, params HistoryListParams) ([]models.Translation, int, error) {
	qf := s.buildFilter(params)

	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		qf.Pagination(page, params.PageSize)
	}

	translations, err := s.store.Translations().List(ctx, qf)
	if err != nil {
		return nil, 0, err
	}

	// Get total count without pagination
	total, err := s.store.Translations().Count(ctx, s.countFilter(params))
	if err != nil {
		return nil, 0, err
	}

	return translations, total, nil
}

// Clear removes every recorded translation.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.store.Translations().DeleteAll(ctx)
}

const exportSheet = "Translations"

// Export renders all translations matching the params as an xlsx workbook.
// Pagination params are ignored; the export is always complete.
func (s *HistoryService) Export(ctx context.Context, params HistoryListParams) ([]byte, error) {
	translations, err := s.store.Translations().List(ctx, s.buildFilter(params))
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("renaming export sheet: %w", err)
	}

	headers := []string{"ID", "Dialect", "Status", "PRQL", "SQL", "Error", "Duration (ms)", "Created At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("locating header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}

	for i, t := range translations {
		sqlText := ""
		if t.Sql != nil {
			sqlText = *t.Sql
		}
		errText := ""
		if t.Error != nil {
			errText = *t.Error
		}
		duration := ""
		if t.DurationMs != nil {
			duration = strconv.FormatInt(*t.DurationMs, 10)
		}
		values := []string{
			t.ID.String(),
			t.Dialect,
			string(t.Status),
			t.Prql,
			sqlText,
			errText,
			duration,
			t.CreatedAt.Format(time.RFC3339),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("locating cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing translation %s: %w", t.ID, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing export: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *HistoryService) buildFilter(params HistoryListParams) *store.TranslationQueryFilter {
	qf := s.countFilter(params)

	if len(params.Sort) == 0 {
		// Newest first by default
		qf.OrderBy("created_at", true)
	}
	for _, sort := range params.Sort {
		qf.OrderBy(sort.Field, sort.Desc)
	}

	return qf
}

func (s *HistoryService) countFilter(params HistoryListParams) *store.TranslationQueryFilter {
	qf := store.NewTranslationQueryFilter()
	if params.Dialect != "" {
		qf.ByDialect(params.Dialect)
	}
	if params.Status != "" {
		qf.ByStatus(params.Status)
	}
	if params.Filter != nil {
		qf.ByExpression(params.Filter.Sql())
	}
	return qf
}
