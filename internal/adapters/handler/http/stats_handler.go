package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/services"
)

type StatsHandler struct {
	svc    *services.StatsService
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsHandler(svc *services.StatsService, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{
		svc:    svc,
		logger: logger,
		now:    time.Now,
	}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/stats")
	{
		stats.GET("/month", h.MonthOverview)
	}
}

// MonthOverview serves the calendar grid plus monthly, weekly and daily
// rollups for the month containing ?date (default: today).
func (h *StatsHandler) MonthOverview(c *gin.Context) {
	ref := h.now()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := domain.ParseDay(dateParam)
		if err != nil {
			handleError(c, err, h.logger)
			return
		}
		ref = parsed
	}

	overview, err := h.svc.MonthOverview(c.Request.Context(), ref)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, overview)
}
