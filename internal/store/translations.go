package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pipeforge/prql-translator/internal/models"
	srvErrors "github.com/pipeforge/prql-translator/pkg/errors"
)

// Column name constants for the translations table
const (
	translationsTable = "translations"

	translationColID         = "id"
	translationColDialect    = "dialect"
	translationColPipeline   = "pipeline"
	translationColPrql       = "prql"
	translationColSql        = "generated_sql"
	translationColStatus     = "status"
	translationColError      = "error"
	translationColDurationMs = "duration_ms"
	translationColCreatedAt  = "created_at"
)

type TranslationStore struct {
	db QueryInterceptor
}

func NewTranslationStore(db QueryInterceptor) *TranslationStore {
	return &TranslationStore{db: db}
}

// Add inserts one translation record.
func (s *TranslationStore) Add(ctx context.Context, t models.Translation) error {
	var pipeline sql.NullString
	if t.Pipeline != nil {
		pipeline = sql.NullString{String: string(t.Pipeline), Valid: true}
	}
	var sqlText sql.NullString
	if t.Sql != nil {
		sqlText = sql.NullString{String: *t.Sql, Valid: true}
	}
	var errText sql.NullString
	if t.Error != nil {
		errText = sql.NullString{String: *t.Error, Valid: true}
	}
	var durationMs sql.NullInt64
	if t.DurationMs != nil {
		durationMs = sql.NullInt64{Int64: *t.DurationMs, Valid: true}
	}

	query, args, err := sq.Insert(translationsTable).
		Columns(translationColID, translationColDialect, translationColPipeline,
			translationColPrql, translationColSql, translationColStatus,
			translationColError, translationColDurationMs, translationColCreatedAt).
		Values(t.ID.String(), t.Dialect, pipeline, t.Prql, sqlText,
			string(t.Status), errText, durationMs, t.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query for translation %s: %w", t.ID, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting translation %s: %w", t.ID, err)
	}
	return nil
}

// Get returns one translation by its ID.
func (s *TranslationStore) Get(ctx context.Context, id uuid.UUID) (*models.Translation, error) {
	query, args, err := s.selectBuilder().
		Where(sq.Eq{translationColID: id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query for translation %s: %w", id, err)
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	t, err := scanTranslation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewTranslationNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning translation %s: %w", id, err)
	}
	return t, nil
}

// List returns translations matching the filter. If filter is nil, returns all.
func (s *TranslationStore) List(ctx context.Context, filter *TranslationQueryFilter) ([]models.Translation, error) {
	builder := s.selectBuilder()
	if filter != nil {
		builder = filter.Apply(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing list query: %w", err)
	}
	defer rows.Close()

	result := make([]models.Translation, 0)
	for rows.Next() {
		t, err := scanTranslation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning translation row: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translation rows: %w", err)
	}
	return result, nil
}

// Count returns the number of translations matching the filter. Pagination
// options on the filter do not apply to the count.
func (s *TranslationStore) Count(ctx context.Context, filter *TranslationQueryFilter) (int, error) {
	builder := sq.Select("COUNT(*)").From(translationsTable)
	if filter != nil {
		builder = filter.Apply(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scanning translation count: %w", err)
	}
	return count, nil
}

// DeleteAll removes every recorded translation.
func (s *TranslationStore) DeleteAll(ctx context.Context) error {
	query, _, err := sq.Delete(translationsTable).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("deleting translations: %w", err)
	}
	return nil
}

func (s *TranslationStore) selectBuilder() sq.SelectBuilder {
	return sq.Select(translationColID, translationColDialect, translationColPipeline,
		translationColPrql, translationColSql, translationColStatus,
		translationColError, translationColDurationMs, translationColCreatedAt).
		From(translationsTable)
}

func scanTranslation(scan func(dest ...any) error) (*models.Translation, error) {
	var t models.Translation
	var id, status string
	var pipeline, sqlText, errText sql.NullString
	var durationMs sql.NullInt64

	if err := scan(&id, &t.Dialect, &pipeline, &t.Prql, &sqlText, &status,
		&errText, &durationMs, &t.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing translation id %q: %w", id, err)
	}
	t.ID = parsed
	t.Status = models.TranslationStatus(status)
	if pipeline.Valid {
		t.Pipeline = json.RawMessage(pipeline.String)
	}
	if sqlText.Valid {
		t.Sql = &sqlText.String
	}
	if errText.Valid {
		t.Error = &errText.String
	}
	if durationMs.Valid {
		t.DurationMs = &durationMs.Int64
	}
	return &t, nil
}
