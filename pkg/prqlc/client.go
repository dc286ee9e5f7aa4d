// Package prqlc talks to the prqlc-service HTTP API, the external compiler
// that lowers PRQL to dialect-specific SQL.
package prqlc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	serviceErrs "github.com/pipeforge/prql-translator/pkg/errors"
	"github.com/pipeforge/prql-translator/pkg/pipeline"
)

const defaultTimeout = 30 * time.Second

type compileRequest struct {
	Prql   string `json:"prql"`
	Target string `json:"target"`
}

type compileResponse struct {
	Sql string `json:"sql"`
}

type compileErrorResponse struct {
	Errors []compileDiagnostic `json:"errors"`
}

type compileDiagnostic struct {
	Message string `json:"message"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewCompilerClient builds a client for the compiler at baseURL. When token
// is non-empty it is sent as a bearer token on every request.
func NewCompilerClient(baseURL string, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		token:      token,
	}
}

// target returns the compiler target name for a dialect.
func target(dialect pipeline.Dialect) string {
	if dialect == pipeline.BigQuery {
		return "sql.bigquery"
	}
	return "sql.postgres"
}

// Compile lowers a PRQL query to SQL for the given dialect.
// POST /compile
func (c *Client) Compile(ctx context.Context, prql string, dialect pipeline.Dialect) (string, error) {
	body, err := json.Marshal(compileRequest{Prql: prql, Target: target(dialect)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal compile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compile", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build compile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serviceErrs.NewCompilerUnreachableError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var compiled compileResponse
		if err := json.NewDecoder(resp.Body).Decode(&compiled); err != nil {
			return "", fmt.Errorf("failed to decode compile response: %w", err)
		}
		return compiled.Sql, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", serviceErrs.NewCompileError(readDiagnostics(resp.Body))
	default:
		return "", serviceErrs.NewCompilerUnreachableError(fmt.Errorf("unexpected status: %s", resp.Status))
	}
}

// readDiagnostics extracts the compiler's error messages. A body that is not
// the documented error shape is passed through whole so nothing is lost.
func readDiagnostics(r io.Reader) []string {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return nil
	}
	var payload compileErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Errors) > 0 {
		messages := make([]string, 0, len(payload.Errors))
		for _, diagnostic := range payload.Errors {
			messages = append(messages, diagnostic.Message)
		}
		return messages
	}
	if text := bytes.TrimSpace(raw); len(text) > 0 {
		return []string{string(text)}
	}
	return nil
}
