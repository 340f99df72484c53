package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Syedfarrukh0/rfid-backend-prac/config"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/repository"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/jwt"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/redis"
)

// Roles
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleCompany    = "company"
)

// ErrForbidden the caller may not act on this resource.
var ErrForbidden = errors.New("not authorized for this resource")

// Service aggregates every business-logic interface.
type Service struct {
	Auth       AuthService
	User       UserService
	Attendance AttendanceService
	Schedule   ScheduleService
	Device     DeviceService
	Export     ExportService
}

// NewService builds the Service aggregate.
// rdb may be nil; redis-backed features degrade per service.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) (*Service, error) {
	loc, err := cfg.Attendance.Location()
	if err != nil {
		return nil, err
	}

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Attendance: NewAttendanceService(cfg, repo, loc, logger),
		Schedule:   NewScheduleService(repo, logger),
		Device:     NewDeviceService(cfg, repo, rdb, logger),
		Export:     NewExportService(repo, loc, logger),
	}, nil
}

// isAdmin reports whether role carries administrative rights.
func isAdmin(role string) bool {
	return role == RoleSuperadmin || role == RoleAdmin
}
