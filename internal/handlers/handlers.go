package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/pipeforge/prql-translator/internal/models"
	"github.com/pipeforge/prql-translator/internal/services"
	"github.com/pipeforge/prql-translator/pkg/pipeline"
)

// TranslatorService is the translation surface the handlers consume.
type TranslatorService interface {
	Translate(ctx context.Context, document []byte, dialect pipeline.Dialect) (models.Translation, error)
	TranslateAndCompile(ctx context.Context, document []byte, dialect pipeline.Dialect) (models.Translation, error)
	Compile(ctx context.Context, prql string, dialect pipeline.Dialect) (string, error)
}

// HistoryService is the history surface the handlers consume.
type HistoryService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Translation, error)
	List(ctx context.Context, params services.HistoryListParams) ([]models.Translation, int, error)
	Clear(ctx context.Context) error
	Export(ctx context.Context, params services.HistoryListParams) ([]byte, error)
}

// StorePinger reports whether the backing store is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	translatorSrv TranslatorService
	historySrv    HistoryService
	store         StorePinger
	version       string
}

func New(translatorSrv TranslatorService, historySrv HistoryService, store StorePinger, version string) *Handler {
	return &Handler{
		translatorSrv: translatorSrv,
		historySrv:    historySrv,
		store:         store,
		version:       version,
	}
}
