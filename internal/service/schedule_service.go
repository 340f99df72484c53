package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/repository"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/timeclock"
)

// ── schedule module business errors ──

var (
	ErrInvalidScheduleTime = errors.New("schedule time not a valid clock time")
	ErrDuplicateDay        = errors.New("day of week listed more than once")
)

// ScheduleService weekly attendance window administration interface
type ScheduleService interface {
	Set(ctx context.Context, callerID, callerRole string, req *dto.SetScheduleRequest) (*dto.ScheduleResponse, error)
	Get(ctx context.Context, callerID, callerRole, userID string) (*dto.ScheduleResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService builds a ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// Set replaces the target user's whole week. Times are normalized to
// 24-hour form at this boundary so everything below it deals only in
// canonical "HH:MM:SS".
func (s *scheduleService) Set(ctx context.Context, callerID, callerRole string, req *dto.SetScheduleRequest) (*dto.ScheduleResponse, error) {
	targetID := callerID
	if req.UserID != nil {
		if !isAdmin(callerRole) && *req.UserID != callerID {
			return nil, ErrForbidden
		}
		targetID = *req.UserID
	}

	if _, err := s.repo.User.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	seen := make(map[int]bool, len(req.Schedules))
	rows := make([]model.AttendanceSchedule, 0, len(req.Schedules))
	for _, entry := range req.Schedules {
		if seen[entry.DayOfWeek] {
			return nil, fmt.Errorf("%w: day %d", ErrDuplicateDay, entry.DayOfWeek)
		}
		seen[entry.DayOfWeek] = true

		row := model.AttendanceSchedule{
			UserID:    targetID,
			DayOfWeek: entry.DayOfWeek,
		}
		for _, f := range []struct {
			raw string
			dst *string
		}{
			{entry.CheckInFrom, &row.CheckInFrom},
			{entry.CheckInTo, &row.CheckInTo},
			{entry.CheckOutFrom, &row.CheckOutFrom},
			{entry.CheckOutTo, &row.CheckOutTo},
		} {
			normalized, err := timeclock.Normalize12Hour(f.raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, f.raw)
			}
			*f.dst = normalized
		}
		row.CreatedBy = &callerID
		rows = append(rows, row)
	}

	if err := s.repo.Schedule.ReplaceForUser(ctx, targetID, rows); err != nil {
		s.logger.Error("replacing schedule", zap.Error(err))
		return nil, err
	}

	s.logger.Info("schedule replaced",
		zap.String("user_id", targetID),
		zap.Int("days", len(rows)),
	)

	return scheduleResponse(targetID, rows), nil
}

func (s *scheduleService) Get(ctx context.Context, callerID, callerRole, userID string) (*dto.ScheduleResponse, error) {
	if callerID != userID && !isAdmin(callerRole) {
		return nil, ErrForbidden
	}

	rows, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("listing schedule", zap.Error(err))
		return nil, err
	}
	return scheduleResponse(userID, rows), nil
}

func scheduleResponse(userID string, rows []model.AttendanceSchedule) *dto.ScheduleResponse {
	entries := make([]dto.ScheduleEntryResponse, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.ScheduleEntryResponse{
			DayOfWeek:       row.DayOfWeek,
			CheckInFrom:     row.CheckInFrom,
			CheckInTo:       row.CheckInTo,
			CheckOutFrom:    row.CheckOutFrom,
			CheckOutTo:      row.CheckOutTo,
			CheckInDisplay:  displayRange(row.CheckInFrom, row.CheckInTo),
			CheckOutDisplay: displayRange(row.CheckOutFrom, row.CheckOutTo),
		})
	}
	return &dto.ScheduleResponse{UserID: userID, Schedules: entries}
}

// displayRange renders a stored window in 12-hour form. Stored values
// are canonical, so parse failures fall back to the raw strings.
func displayRange(from, to string) string {
	f, errF := timeclock.Parse(from)
	t, errT := timeclock.Parse(to)
	if errF != nil || errT != nil {
		return from + " - " + to
	}
	return timeclock.Format12Hour(f) + " - " + timeclock.Format12Hour(t)
}
