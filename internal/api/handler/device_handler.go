package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/service"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

// DeviceHandler scan terminal HTTP handler
//
// Routes split into two surfaces: operator routes behind JWT auth and
// terminal routes behind device-credential auth.
type DeviceHandler struct {
	deviceSvc service.DeviceService
}

// NewDeviceHandler builds a DeviceHandler.
func NewDeviceHandler(deviceSvc service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceSvc: deviceSvc}
}

// RegisterBatch mints credentials for new terminals
// POST /api/v1/devices
func (h *DeviceHandler) RegisterBatch(c *gin.Context) {
	var req dto.RegisterDevicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	devices, err := h.deviceSvc.RegisterBatch(c.Request.Context(), callerID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, gin.H{"list": devices})
}

// List terminals visible to the caller
// GET /api/v1/devices
func (h *DeviceHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	devices, err := h.deviceSvc.List(c.Request.Context(), callerID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": devices})
}

// Assign binds a terminal to an account
// POST /api/v1/devices/assign
func (h *DeviceHandler) Assign(c *gin.Context) {
	var req dto.AssignDeviceRequest
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

	device, err := h.deviceSvc.Assign(c.Request.Context(), callerID, role, &req)
	if err != nil {
		h.handleDeviceError(c, err)
		return
	}

	response.OK(c, device)
}

// Status reports liveness derived from the last heartbeat
// GET /api/v1/devices/:uuid/status
func (h *DeviceHandler) Status(c *gin.Context) {
	status, err := h.deviceSvc.Status(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		h.handleDeviceError(c, err)
		return
	}

	response.OK(c, status)
}

// QueueConnect queues wifi credentials for the terminal's next heartbeat
// POST /api/v1/devices/:uuid/connect
func (h *DeviceHandler) QueueConnect(c *gin.Context) {
	var req dto.ConnectCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	if err := h.deviceSvc.QueueConnect(c.Request.Context(), c.Param("uuid"), &req); err != nil {
		h.handleDeviceError(c, err)
		return
	}

	response.OK(c, nil)
}

// WifiScan returns the terminal's latest reported networks
// GET /api/v1/devices/:uuid/wifi-scan
func (h *DeviceHandler) WifiScan(c *gin.Context) {
	networks, err := h.deviceSvc.GetWifiScan(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		h.handleDeviceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": networks})
}

// ── terminal-facing routes (device auth) ──

// Heartbeat liveness report from a terminal
// POST /api/v1/devices/heartbeat
func (h *DeviceHandler) Heartbeat(c *gin.Context) {
	var req dto.HeartbeatRequest
	_ = c.ShouldBindJSON(&req) // body optional

	deviceUUID, ok := MustGetDeviceUUID(c)
	if !ok {
		return
	}

	result, err := h.deviceSvc.Heartbeat(c.Request.Context(), deviceUUID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// SubmitWifiScan stores the networks a terminal observed
// POST /api/v1/devices/wifi-scan
func (h *DeviceHandler) SubmitWifiScan(c *gin.Context) {
	var networks []dto.WifiNetwork
	if err := c.ShouldBindJSON(&networks); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	deviceUUID, ok := MustGetDeviceUUID(c)
	if !ok {
		return
	}

	if err := h.deviceSvc.SubmitWifiScan(c.Request.Context(), deviceUUID, networks); err != nil {
		h.handleDeviceError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDeviceError maps device module business errors to responses.
func (h *DeviceHandler) handleDeviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDeviceNotFound):
		response.NotFound(c, 14001, "device not found")
	case errors.Is(err, service.ErrDeviceTaken):
		response.Conflict(c, 14002, "device already assigned")
	case errors.Is(err, service.ErrDeviceUnavailable):
		response.ServiceUnavailable(c, 14003, "device state store unavailable")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "not authorized for this resource")
	default:
		response.InternalError(c)
	}
}
