package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/attendance"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/service"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

// AttendanceHandler badge scan and history HTTP handler
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler builds an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Scan records a badge tap from an authenticated terminal
// POST /api/v1/attendance/scan
func (h *AttendanceHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	deviceUUID, ok := MustGetDeviceUUID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.RecordScan(c.Request.Context(), deviceUUID, &req)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.Created(c, result)
}

// RegisterCard binds a badge to an account
// POST /api/v1/cards
func (h *AttendanceHandler) RegisterCard(c *gin.Context) {
	var req dto.RegisterCardRequest
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

	card, err := h.attendanceSvc.RegisterCard(c.Request.Context(), callerID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCardTaken):
			response.Conflict(c, 12002, "card already registered")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "user not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, card)
}

// Today lists today's records
// GET /api/v1/attendance/today
func (h *AttendanceHandler) Today(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	records, err := h.attendanceSvc.TodayRecords(c.Request.Context(), callerID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// UserRecords lists one user's records over a date range
// GET /api/v1/attendance/users/:id
func (h *AttendanceHandler) UserRecords(c *gin.Context) {
	var q dto.RecordRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
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

	records, err := h.attendanceSvc.UserRecords(c.Request.Context(), callerID, role, c.Param("id"), &q)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Forbidden(c, 10003, "not authorized for this resource")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// handleScanError maps scan outcomes to responses. Decision rejections
// are client-level outcomes with a precise reason; only store faults
// fall through to 500.
func (h *AttendanceHandler) handleScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCardNotRegistered):
		response.NotFound(c, 12001, "card not registered or inactive")
	case errors.Is(err, attendance.ErrNoScheduleToday):
		response.Error(c, http.StatusUnprocessableEntity, 12010, "no schedule configured for today")
	case errors.Is(err, attendance.ErrTooEarlyForCheckIn):
		response.Error(c, http.StatusUnprocessableEntity, 12011, "too early to check in")
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		response.Conflict(c, 12012, "already checked in moments ago")
	case errors.Is(err, attendance.ErrTooEarlyForCheckOut):
		response.Error(c, http.StatusUnprocessableEntity, 12013, "too early to check out")
	case errors.Is(err, attendance.ErrCheckOutWindowClosed):
		response.Error(c, http.StatusUnprocessableEntity, 12014, "check-out window has closed")
	case errors.Is(err, attendance.ErrCheckOutWithoutCheckIn):
		response.Error(c, http.StatusUnprocessableEntity, 12015, "no check-in recorded today")
	default:
		response.InternalError(c)
	}
}
