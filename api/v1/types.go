// Package v1 holds the request and response bodies of the HTTP API.
package v1

import (
	"encoding/json"
	"time"
)

// TranslateRequest carries a pipeline document and the SQL dialect it should
// be translated for.
type TranslateRequest struct {
	Pipeline json.RawMessage `json:"pipeline" binding:"required"`
	Dialect  string          `json:"dialect" binding:"required"`
}

// CompileRequest carries a raw PRQL query to compile as-is.
type CompileRequest struct {
	Prql    string `json:"prql" binding:"required"`
	Dialect string `json:"dialect" binding:"required"`
}

type Translation struct {
	Id         string          `json:"id"`
	Dialect    string          `json:"dialect"`
	Pipeline   json.RawMessage `json:"pipeline,omitempty"`
	Prql       string          `json:"prql"`
	Sql        *string         `json:"sql,omitempty"`
	Status     string          `json:"status"`
	Error      *string         `json:"error,omitempty"`
	DurationMs *int64          `json:"durationMs,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type CompileResponse struct {
	Prql string `json:"prql"`
	Sql  string `json:"sql"`
}

type TranslationListResponse struct {
	Page         int           `json:"page"`
	PageCount    int           `json:"pageCount"`
	Total        int           `json:"total"`
	Translations []Translation `json:"translations"`
}
