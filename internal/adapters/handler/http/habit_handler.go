package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/services"
	"github.com/tanveerhkit/habit-tracker/internal/core/view"
)

type HabitHandler struct {
	svc    *services.HabitService
	toggle *view.Controller
	logger *zap.Logger
}

func NewHabitHandler(svc *services.HabitService, toggle *view.Controller, logger *zap.Logger) *HabitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitHandler{
		svc:    svc,
		toggle: toggle,
		logger: logger,
	}
}

type createHabitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Goal        int    `json:"goal"`
	SortOrder   int    `json:"order"`
}

type updateHabitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Goal        int    `json:"goal"`
	SortOrder   int    `json:"order"`
}

type toggleRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/toggle", h.Toggle)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Goal:        req.Goal,
		SortOrder:   req.SortOrder,
	}

	habit, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateHabitInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Goal:        req.Goal,
		SortOrder:   req.SortOrder,
	}

	habit, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// Toggle flips one cell of the grid through the optimistic controller.
// A failed durable write has already rolled the local view back by the
// time the error surfaces here.
func (h *HabitHandler) Toggle(c *gin.Context) {
	id := c.Param("id")

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		handleError(c, err, h.logger)
		return
	}

	record, err := h.toggle.Toggle(c.Request.Context(), id, day)
	if err != nil {
		// The controller has already rolled the local view back; tell the
		// caller so it can drop its own speculative state too.
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "rolled_back": true})
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "rolled_back": true})
		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("toggle write failed, view resynced", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable", "rolled_back": true})
		default:
			h.logger.Error("toggle write failed, view resynced", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "rolled_back": true})
		}
		return
	}

	c.JSON(http.StatusOK, record)
}
