package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pipeforge/prql-translator/internal/models"
	"github.com/pipeforge/prql-translator/pkg/pipeline"
	"github.com/pipeforge/prql-translator/pkg/prqlc"
	"github.com/pipeforge/prql-translator/pkg/scheduler"
)

// TranslatorService turns pipeline documents into PRQL and, on request, hands
// the PRQL to the external compiler for SQL. Compiler calls go through the
// scheduler so the number of concurrent requests against the compiler stays
// bounded. Every call is recorded in the history, including failed compiles;
// only documents that fail to parse leave no trace.
type TranslatorService struct {
	compiler  *prqlc.Client
	scheduler *scheduler.Scheduler
	history   *HistoryService
}

func NewTranslatorService(compiler *prqlc.Client, sched *scheduler.Scheduler, history *HistoryService) *TranslatorService {
	return &TranslatorService{
		compiler:  compiler,
		scheduler: sched,
		history:   history,
	}
}

// Translate parses a pipeline document and renders it as PRQL.
func (s *TranslatorService) Translate(ctx context.Context, document []byte, dialect pipeline.Dialect) (models.Translation, error) {
	p, err := pipeline.Parse(document)
	if err != nil {
		return models.Translation{}, err
	}

	t := models.Translation{
		ID:        uuid.New(),
		Dialect:   dialect.String(),
		Pipeline:  document,
		Prql:      p.Prql(dialect),
		Status:    models.TranslationStatusTranslated,
		CreatedAt: time.Now().UTC(),
	}
	s.record(ctx, t)

	return t, nil
}

// TranslateAndCompile renders the document as PRQL and asks the external
// compiler for the corresponding SQL.
func (s *TranslatorService) TranslateAndCompile(ctx context.Context, document []byte, dialect pipeline.Dialect) (models.Translation, error) {
	p, err := pipeline.Parse(document)
	if err != nil {
		return models.Translation{}, err
	}

	prqlText := p.Prql(dialect)
	sqlText, elapsedMs, err := s.compile(ctx, prqlText, dialect)

	t := models.Translation{
		ID:         uuid.New(),
		Dialect:    dialect.String(),
		Pipeline:   document,
		Prql:       prqlText,
		DurationMs: &elapsedMs,
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil {
		errText := err.Error()
		t.Status = models.TranslationStatusError
		t.Error = &errText
		s.record(ctx, t)
		return models.Translation{}, err
	}

	t.Status = models.TranslationStatusCompiled
	t.Sql = &sqlText
	s.record(ctx, t)

	return t, nil
}

// Compile lowers a raw PRQL query to SQL. The call is recorded in the history
// without a pipeline document.
func (s *TranslatorService) Compile(ctx context.Context, prqlText string, dialect pipeline.Dialect) (string, error) {
	sqlText, elapsedMs, err := s.compile(ctx, prqlText, dialect)

	t := models.Translation{
		ID:         uuid.New(),
		Dialect:    dialect.String(),
		Prql:       prqlText,
		DurationMs: &elapsedMs,
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil {
		errText := err.Error()
		t.Status = models.TranslationStatusError
		t.Error = &errText
		s.record(ctx, t)
		return "", err
	}

	t.Status = models.TranslationStatusCompiled
	t.Sql = &sqlText
	s.record(ctx, t)

	return sqlText, nil
}

func (s *TranslatorService) compile(ctx context.Context, prqlText string, dialect pipeline.Dialect) (string, int64, error) {
	start := time.Now()

	future := s.scheduler.AddWork(func(ctx context.Context) (any, error) {
		return s.compiler.Compile(ctx, prqlText, dialect)
	})

	select {
	case <-ctx.Done():
		future.Stop()
		return "", time.Since(start).Milliseconds(), ctx.Err()
	case result := <-future.C():
		elapsedMs := time.Since(start).Milliseconds()
		if result.Err != nil {
			return "", elapsedMs, result.Err
		}
		return result.Data.(string), elapsedMs, nil
	}
}

// record saves a finished translation. Failures are logged and swallowed so
// a broken history store never fails the request itself.
func (s *TranslatorService) record(ctx context.Context, t models.Translation) {
	if err := s.history.Record(ctx, t); err != nil {
		zap.S().Named("translator_service").Errorw("failed to record translation", "id", t.ID, "error", err)
	}
}
