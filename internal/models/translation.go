package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TranslationStatus string

const (
	// TranslationStatusTranslated means PRQL was rendered but no SQL was requested.
	TranslationStatusTranslated TranslationStatus = "translated"
	// TranslationStatusCompiled means the compiler produced SQL.
	TranslationStatusCompiled TranslationStatus = "compiled"
	// TranslationStatusError means the compiler rejected the query or was unreachable.
	TranslationStatusError TranslationStatus = "error"
)

// Translation is one recorded translation request. Pipeline is nil for raw
// PRQL compilations, Sql is nil until the compiler produced something, and
// DurationMs is nil when no compiler round trip happened.
type Translation struct {
	ID         uuid.UUID
	Dialect    string
	Pipeline   json.RawMessage
	Prql       string
	Sql        *string
	Status     TranslationStatus
	Error      *string
	DurationMs *int64
	CreatedAt  time.Time
}
