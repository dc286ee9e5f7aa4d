package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	v1 "github.com/pipeforge/prql-translator/api/v1"
	srvErrors "github.com/pipeforge/prql-translator/pkg/errors"
	"github.com/pipeforge/prql-translator/pkg/pipeline"
)

// TranslateToPrql renders a pipeline document as PRQL text
// (POST /prql)
func (h *Handler) TranslateToPrql(c *gin.Context) {
	req, dialect, ok := h.bindTranslateRequest(c)
	if !ok {
		return
	}

	translation, err := h.translatorSrv.Translate(c.Request.Context(), req.Pipeline, dialect)
	if err != nil {
		respondTranslationError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTranslationFromModel(translation))
}

// TranslateToSql renders a pipeline document as PRQL and compiles it to SQL
// (POST /sql)
func (h *Handler) TranslateToSql(c *gin.Context) {
	req, dialect, ok := h.bindTranslateRequest(c)
	if !ok {
		return
	}

	translation, err := h.translatorSrv.TranslateAndCompile(c.Request.Context(), req.Pipeline, dialect)
	if err != nil {
		respondTranslationError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTranslationFromModel(translation))
}

// CompilePrql compiles caller-supplied PRQL to SQL
// (POST /compile)
func (h *Handler) CompilePrql(c *gin.Context) {
	var req v1.CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	dialect, err := pipeline.ParseDialect(req.Dialect)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sqlText, err := h.translatorSrv.Compile(c.Request.Context(), req.Prql, dialect)
	if err != nil {
		respondTranslationError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.CompileResponse{Prql: req.Prql, Sql: sqlText})
}

func (h *Handler) bindTranslateRequest(c *gin.Context) (v1.TranslateRequest, pipeline.Dialect, bool) {
	var req v1.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return req, 0, false
	}

	if emptyStepList(req.Pipeline) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pipeline must contain at least one step"})
		return req, 0, false
	}

	dialect, err := pipeline.ParseDialect(req.Dialect)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, 0, false
	}

	return req, dialect, true
}

// bindErrorMessage turns a binding failure into a caller-facing message,
// naming the offending fields when the payload failed validation.
func bindErrorMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		fields := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return "missing or invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid request body"
}

// emptyStepList reports whether doc is a JSON array with zero elements.
// Documents that are not arrays at all fall through to the parser, which
// produces the more precise error.
func emptyStepList(doc json.RawMessage) bool {
	var steps []json.RawMessage
	if err := json.Unmarshal(doc, &steps); err != nil {
		return false
	}
	return len(steps) == 0
}

func respondTranslationError(c *gin.Context, err error) {
	var compileErr *srvErrors.CompileError
	switch {
	case pipeline.IsParseError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &compileErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": compileErr.Error(), "details": compileErr.Messages})
	case srvErrors.IsCompilerUnreachableError(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		zap.S().Named("translate_handler").Errorw("translation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "translation failed"})
	}
}
