package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/service"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

// ScheduleHandler weekly window configuration HTTP handler
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler builds a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Set replaces the target user's weekly windows
// PUT /api/v1/schedules
func (h *ScheduleHandler) Set(c *gin.Context) {
	var req dto.SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Set(c.Request.Context(), callerID, role, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns a user's weekly windows
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Get(c.Request.Context(), callerID, role, c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// handleScheduleError maps schedule module business errors to responses.
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScheduleTime):
		response.BadRequest(c, 13001, "schedule time not a valid clock time")
	case errors.Is(err, service.ErrDuplicateDay):
		response.BadRequest(c, 13002, "day of week listed more than once")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11004, "user not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "not authorized for this resource")
	default:
		response.InternalError(c)
	}
}
