package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/services"
)

// handleError maps domain errors to HTTP status codes. Validation
// failures carry the wrapped message; anything unclassified is a 500
// with the detail kept out of the response body.
func handleError(c *gin.Context, err error, logger *zap.Logger) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrHabitNotFound), errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

type LogHandler struct {
	svc    *services.LogService
	logger *zap.Logger
}

func NewLogHandler(svc *services.LogService, logger *zap.Logger) *LogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogHandler{
		svc:    svc,
		logger: logger,
	}
}

type upsertLogRequest struct {
	HabitID   string   `json:"habit_id" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value"`
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs")
	{
		logs.GET("", h.ListByDateRange)
		logs.POST("", h.Upsert)
	}
}

func (h *LogHandler) Upsert(c *gin.Context) {
	var req upsertLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	record, err := h.svc.Upsert(c.Request.Context(), services.UpsertLogInput{
		HabitID:   req.HabitID,
		Day:       day,
		Completed: req.Completed,
		Value:     req.Value,
	})
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *LogHandler) ListByDateRange(c *gin.Context) {
	startParam := c.Query("start_date")
	endParam := c.Query("end_date")

	if startParam == "" || endParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	start, err := domain.ParseDay(startParam)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	end, err := domain.ParseDay(endParam)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	records, err := h.svc.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, records)
}
