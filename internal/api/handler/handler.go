package handler

import "github.com/Syedfarrukh0/rfid-backend-prac/internal/service"

// Handler aggregates every module handler.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Attendance *AttendanceHandler
	Schedule   *ScheduleHandler
	Device     *DeviceHandler
	Export     *ExportHandler
}

// NewHandler builds the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Device:     NewDeviceHandler(svc.Device),
		Export:     NewExportHandler(svc.Export),
	}
}
