package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/pipeforge/prql-translator/api/v1"
	"github.com/pipeforge/prql-translator/internal/services"
	srvErrors "github.com/pipeforge/prql-translator/pkg/errors"
	"github.com/pipeforge/prql-translator/pkg/filter"
)

// validSortFields maps API sort field names to history store columns.
var validSortFields = map[string]string{
	"createdAt": "created_at",
	"dialect":   "dialect",
	"status":    "status",
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListTranslations returns the translation history with filtering and pagination
// (GET /translations)
func (h *Handler) ListTranslations(c *gin.Context) {
	params, ok := h.bindHistoryParams(c)
	if !ok {
		return
	}

	translations, total, err := h.historySrv.List(c.Request.Context(), params)
	if err != nil {
		zap.S().Named("history_handler").Errorw("failed to list translations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list translations"})
		return
	}

	// Calculate page count
	pageCount := (total + params.PageSize - 1) / params.PageSize
	if pageCount == 0 {
		pageCount = 1
	}

	apiTranslations := make([]v1.Translation, 0, len(translations))
	for _, t := range translations {
		apiTranslations = append(apiTranslations, v1.NewTranslationFromModel(t))
	}

	c.JSON(http.StatusOK, v1.TranslationListResponse{
		Page:         params.Page,
		PageCount:    pageCount,
		Total:        total,
		Translations: apiTranslations,
	})
}

// GetTranslation returns one history record
// (GET /translations/{id})
func (h *Handler) GetTranslation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid translation id"})
		return
	}

	translation, err := h.historySrv.Get(c.Request.Context(), id)
	if err != nil {
		switch err.(type) {
		case *srvErrors.ResourceNotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			zap.S().Named("history_handler").Errorw("failed to get translation", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get translation"})
		}
		return
	}

	c.JSON(http.StatusOK, v1.NewTranslationFromModel(*translation))
}

// ClearTranslations purges the translation history
// (DELETE /translations)
func (h *Handler) ClearTranslations(c *gin.Context) {
	if err := h.historySrv.Clear(c.Request.Context()); err != nil {
		zap.S().Named("history_handler").Errorw("failed to clear translations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear translations"})
		return
	}

	c.Status(http.StatusNoContent)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportTranslations downloads the translation history as an XLSX workbook
// (GET /translations/export)
func (h *Handler) ExportTranslations(c *gin.Context) {
	params, ok := h.bindHistoryParams(c)
	if !ok {
		return
	}

	workbook, err := h.historySrv.Export(c.Request.Context(), params)
	if err != nil {
		zap.S().Named("history_handler").Errorw("failed to export translations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export translations"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="translations.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, workbook)
}

func (h *Handler) bindHistoryParams(c *gin.Context) (services.HistoryListParams, bool) {
	params := services.HistoryListParams{
		Dialect:  c.Query("dialect"),
		Status:   c.Query("status"),
		Page:     1,
		PageSize: defaultPageSize,
	}

	if raw := c.Query("filter"); raw != "" {
		expr, err := filter.Parse([]byte(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return params, false
		}
		params.Filter = expr
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page: " + raw})
			return params, false
		}
		params.Page = page
	}

	if raw := c.Query("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pageSize: " + raw})
			return params, false
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
		params.PageSize = pageSize
	}

	// Parse and validate sort params
	for _, s := range c.QueryArray("sort") {
		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort format, expected 'field:direction' (e.g., 'createdAt:desc')"})
			return params, false
		}
		field, direction := parts[0], parts[1]
		column, known := validSortFields[field]
		if !known {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort field: " + field})
			return params, false
		}
		if direction != "asc" && direction != "desc" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort direction: " + direction + ", must be 'asc' or 'desc'"})
			return params, false
		}
		params.Sort = append(params.Sort, services.SortField{Field: column, Desc: direction == "desc"})
	}

	return params, true
}
