package v1

import (
	"github.com/pipeforge/prql-translator/internal/models"
)

// NewTranslationFromModel converts a models.Translation to an API Translation.
func NewTranslationFromModel(t models.Translation) Translation {
	result := Translation{
		Id:        t.ID.String(),
		Dialect:   t.Dialect,
		Pipeline:  t.Pipeline,
		Prql:      t.Prql,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}

	if t.Sql != nil {
		sqlText := *t.Sql
		result.Sql = &sqlText
	}
	if t.Error != nil {
		errText := *t.Error
		result.Error = &errText
	}
	if t.DurationMs != nil {
		duration := *t.DurationMs
		result.DurationMs = &duration
	}

	return result
}
