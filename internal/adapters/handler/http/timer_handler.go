package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/services"
)

type TimerHandler struct {
	svc    *services.TimerService
	logger *zap.Logger
	now    func() time.Time
}

func NewTimerHandler(svc *services.TimerService, logger *zap.Logger) *TimerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimerHandler{
		svc:    svc,
		logger: logger,
		now:    time.Now,
	}
}

type recordSessionRequest struct {
	Category   string    `json:"category" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	DurationMS int64     `json:"duration_ms"`
}

func (h *TimerHandler) RegisterRoutes(router *gin.RouterGroup) {
	timer := router.Group("/timer")
	{
		timer.POST("", h.Record)
		timer.GET("", h.List)
	}
}

func (h *TimerHandler) Record(c *gin.Context) {
	var req recordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	session, err := h.svc.Record(c.Request.Context(), services.RecordSessionInput{
		Category:   req.Category,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		DurationMS: req.DurationMS,
	})
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *TimerHandler) List(c *gin.Context) {
	sessions, err := h.svc.ListByRange(c.Request.Context(), c.Query("range"), h.now())
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, sessions)
}
