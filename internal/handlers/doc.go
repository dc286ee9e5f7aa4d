// Package handlers implements the HTTP API layer for the prql-translator.
//
// This package contains HTTP handlers that expose the translator's functionality
// via a RESTful API. Handlers delegate business logic to the services layer and
// focus on request validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Translator │ History                                           │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Handler Structure
//
// All handlers are methods on a single Handler struct that holds its service
// dependencies behind narrow consumer interfaces, so tests can substitute mocks:
//
//	type Handler struct {
//	    translatorSrv TranslatorService
//	    historySrv    HistoryService
//	    store         StorePinger
//	    version       string
//	}
//
// Routes are registered by the server package (internal/server).
//
// # API Endpoints
//
// Translation Endpoints (translate.go):
//
//	┌────────┬───────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint  │ Description                                 │
//	├────────┼───────────┼─────────────────────────────────────────────┤
//	│ POST   │ /prql     │ Translate a pipeline document to PRQL       │
//	│ POST   │ /sql      │ Translate a pipeline document to SQL        │
//	│ POST   │ /compile  │ Compile raw PRQL text to SQL                │
//	└────────┴───────────┴─────────────────────────────────────────────┘
//
// History Endpoints (history.go):
//
//	┌────────┬──────────────────────┬───────────────────────────────────┐
//	│ Method │ Endpoint             │ Description                       │
//	├────────┼──────────────────────┼───────────────────────────────────┤
//	│ GET    │ /translations        │ List history with paging/filters  │
//	│ GET    │ /translations/{id}   │ Get one history record            │
//	│ DELETE │ /translations        │ Purge the history                 │
//	│ GET    │ /translations/export │ Download history as XLSX          │
//	└────────┴──────────────────────┴───────────────────────────────────┘
//
// Health Endpoint (health.go):
//
//	┌────────┬──────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint │ Description                                 │
//	├────────┼──────────┼─────────────────────────────────────────────┤
//	│ GET    │ /health  │ Service version and store reachability     │
//	└────────┴──────────┴─────────────────────────────────────────────┘
//
// # Translation Handlers
//
// POST /prql - Translates a pipeline document to PRQL without compiling it.
//
// Request:
//
//	{
//	    "pipeline": [ { "name": "domain", "domain": "users", "table": true } ],
//	    "dialect": "postgres"
//	}
//
// Response:
//
//	{
//	    "id": "8b28ec57-3f0f-40a4-8b52-b0df9d8d0a5e",
//	    "dialect": "postgres",
//	    "pipeline": [ { "name": "domain", "domain": "users", "table": true } ],
//	    "prql": "from `users`",
//	    "status": "translated",
//	    "createdAt": "2025-06-01T12:00:00Z"
//	}
//
// POST /sql - Translates a pipeline document to PRQL and compiles it. The
// response carries the same shape as POST /prql plus "sql", "durationMs",
// and status "compiled". Failed compiles are recorded with status "error"
// before the error response is returned.
//
// POST /compile - Compiles raw PRQL text, bypassing pipeline translation.
//
// Request:
//
//	{ "prql": "from x", "dialect": "postgres" }
//
// Response:
//
//	{ "prql": "from x", "sql": "SELECT * FROM x" }
//
// Errors:
//   - 400 Bad Request: Malformed body, empty pipeline, unknown dialect,
//     or a pipeline document the parser rejects
//   - 422 Unprocessable Entity: The compiler rejected the PRQL; the body
//     carries the compiler diagnostics under "details"
//   - 502 Bad Gateway: The compiler could not be reached
//
// # History Handlers
//
// GET /translations - Lists history records with filtering, sorting, and
// pagination.
//
// Query Parameters:
//
//	┌───────────┬──────────┬─────────────────────────────────────────┐
//	│ Parameter │ Type     │ Description                             │
//	├───────────┼──────────┼─────────────────────────────────────────┤
//	│ dialect   │ string   │ Filter by target dialect                │
//	│ status    │ string   │ Filter by outcome status                │
//	│ filter    │ string   │ Search expression (see pkg/filter)      │
//	│ sort      │ []string │ Sort fields (format: "field:direction") │
//	│ page      │ int      │ Page number (default: 1)                │
//	│ pageSize  │ int      │ Items per page (default: 20, max: 100)  │
//	└───────────┴──────────┴─────────────────────────────────────────┘
//
// Valid Sort Fields:
//   - createdAt, dialect, status
//
// Sort Direction:
//   - asc (ascending) or desc (descending)
//
// Filter Expressions:
//
// The filter parameter carries a boolean search expression evaluated against
// the history columns. Malformed expressions answer 400 with the parser's
// position and message. Examples:
//
//	status = 'error' and error ~ /unknown name/
//	duration > 2s or dialect = 'bigquery'
//	created >= '2026-03-01' and prql ~ /aggregate/
//
// The grammar lives in pkg/filter.
//
// Example: /translations?dialect=postgres&sort=createdAt:desc&page=1&pageSize=50
//
// Response:
//
//	{
//	    "page": 1,
//	    "pageCount": 5,
//	    "total": 100,
//	    "translations": [ ... ]
//	}
//
// GET /translations/{id} - Returns one history record.
//
// DELETE /translations - Removes every history record, returns 204.
//
// GET /translations/export - Streams the history as an XLSX workbook. Accepts
// the same dialect/status/filter/sort query parameters as the listing;
// pagination is ignored so the export always carries every matching row.
//
// # Health Handler
//
// GET /health - Reports the service version and whether the store answers a
// ping. Returns 503 with status "unavailable" when the store is unreachable.
//
// Response:
//
//	{ "status": "ok", "version": "v0.1.0" }
//
// # Error Handling
//
// Handlers use consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌───────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                │ Status │ When                         │
//	├───────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error          │ 400    │ Invalid request params       │
//	│ ParseError                │ 400    │ Malformed pipeline document  │
//	│ ResourceNotFoundError     │ 404    │ History record doesn't exist │
//	│ CompileError              │ 422    │ Compiler rejected the PRQL   │
//	│ CompilerUnreachableError  │ 502    │ Compiler down or misbehaving │
//	│ Internal error            │ 500    │ Unexpected service errors    │
//	└───────────────────────────┴────────┴──────────────────────────────┘
//
// Requests rejected by the authentication middleware (when enabled) answer
// 401 before any handler in this package runs.
//
// # Model Conversion
//
// Handlers convert between internal models and API types using extension
// functions defined in api/v1/extension.go:
//
//   - v1.NewTranslationFromModel(models.Translation) → v1.Translation
//
// # Framework
//
// The package uses the Gin web framework. Routes are registered explicitly
// by internal/server when the HTTP server starts.
package handlers
