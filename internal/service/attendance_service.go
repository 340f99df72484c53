package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/config"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/attendance"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/repository"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/timeclock"
)

// ── attendance module business errors ──

var (
	ErrCardNotRegistered = errors.New("card not registered or inactive")
	ErrCardTaken         = errors.New("card already registered")
)

// AttendanceService badge-scan business interface
//
// RecordScan surfaces the decision engine's rejections unchanged
// (attendance.IsRejection distinguishes them from store faults), so
// the handler can answer with the precise reason.
type AttendanceService interface {
	RecordScan(ctx context.Context, deviceUUID string, req *dto.ScanRequest) (*dto.ScanResponse, error)
	RegisterCard(ctx context.Context, callerID, callerRole string, req *dto.RegisterCardRequest) (*dto.CardResponse, error)
	TodayRecords(ctx context.Context, callerID, callerRole string) ([]dto.RecordResponse, error)
	UserRecords(ctx context.Context, callerID, callerRole, userID string, q *dto.RecordRangeQuery) ([]dto.RecordResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	engine *attendance.Engine
	loc    *time.Location
	logger *zap.Logger

	// locks serializes read-decide-append per person; without it two
	// near-simultaneous taps could both be classified as IN and break
	// the alternation invariant. Entries are one bare mutex per user
	// seen since startup and are never evicted.
	locks sync.Map // userID → *sync.Mutex

	// clock is swappable in tests; everything else calls it.
	clock func() time.Time
}

// NewAttendanceService builds an AttendanceService. All wall-clock
// decisions run in loc, the single operational timezone.
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, loc *time.Location, logger *zap.Logger) AttendanceService {
	engine := attendance.NewEngine()
	if cfg.Attendance.EarlyCheckInMargin > 0 {
		engine.EarlyCheckInMargin = cfg.Attendance.EarlyCheckInMargin
	}
	if cfg.Attendance.DuplicateWindow > 0 {
		engine.DuplicateWindow = cfg.Attendance.DuplicateWindow
	}
	if cfg.Attendance.CheckOutSpan > 0 {
		engine.CheckOutSpan = cfg.Attendance.CheckOutSpan
	}

	return &attendanceService{
		repo:   repo,
		engine: engine,
		loc:    loc,
		logger: logger,
		clock:  time.Now,
	}
}

func (s *attendanceService) userLock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *attendanceService) RecordScan(ctx context.Context, deviceUUID string, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	card, err := s.repo.Card.GetByUUID(ctx, req.CardUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotRegistered
		}
		s.logger.Error("looking up card", zap.Error(err))
		return nil, err
	}
	if !card.IsActive {
		return nil, ErrCardNotRegistered
	}

	mu := s.userLock(card.UserID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	records, err := s.repo.Attendance.ListByUserBetween(ctx, card.UserID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("loading today's records", zap.Error(err))
		return nil, err
	}

	sched, err := s.loadTodaySchedule(ctx, card.UserID, now)
	if err != nil {
		return nil, err
	}

	events := make([]attendance.Event, 0, len(records))
	for _, r := range records {
		at := r.OccurredAt.In(s.loc)
		events = append(events, attendance.Event{
			Type: attendance.RecordType(r.RecordType),
			At:   timeclock.FromClock(at.Hour(), at.Minute(), at.Second()),
		})
	}

	decision, err := s.engine.Decide(events, sched, timeclock.FromClock(now.Hour(), now.Minute(), now.Second()))
	if err != nil {
		return nil, err
	}

	record := &model.AttendanceRecord{
		UserID:     card.UserID,
		CardUUID:   card.UUID,
		DeviceUUID: deviceUUID,
		RecordType: string(decision.Type),
		Status:     string(decision.Status),
		OccurredAt: now,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		s.logger.Error("appending attendance record", zap.Error(err))
		return nil, err
	}

	s.logger.Info("scan accepted",
		zap.String("user_id", card.UserID),
		zap.String("record_type", record.RecordType),
		zap.String("status", record.Status),
	)

	return &dto.ScanResponse{
		RecordType: record.RecordType,
		Status:     record.Status,
		OccurredAt: now.Format(time.RFC3339),
		User:       userResponse(card.User),
	}, nil
}

// loadTodaySchedule fetches the schedule row for the current Monday-based
// day of week. Absence is a decision-level rejection; a row that fails
// to parse is a system fault, never coerced into a rejection.
func (s *attendanceService) loadTodaySchedule(ctx context.Context, userID string, now time.Time) (*attendance.Schedule, error) {
	dow := int(now.Weekday())
	if dow == 0 {
		dow = 7
	}

	row, err := s.repo.Schedule.GetByUserAndDay(ctx, userID, dow)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrNoScheduleToday
		}
		s.logger.Error("loading schedule", zap.Error(err))
		return nil, err
	}

	sched := &attendance.Schedule{}
	for _, f := range []struct {
		value string
		dst   *timeclock.TimeOfDay
	}{
		{row.CheckInFrom, &sched.CheckInFrom},
		{row.CheckInTo, &sched.CheckInTo},
		{row.CheckOutFrom, &sched.CheckOutFrom},
		{row.CheckOutTo, &sched.CheckOutTo},
	} {
		t, err := timeclock.Parse(f.value)
		if err != nil {
			s.logger.Error("malformed schedule row",
				zap.String("user_id", userID),
				zap.Int("day_of_week", dow),
				zap.String("value", f.value),
			)
			return nil, fmt.Errorf("malformed schedule for user %s day %d: %w", userID, dow, err)
		}
		*f.dst = t
	}

	return sched, nil
}

func (s *attendanceService) RegisterCard(ctx context.Context, callerID, callerRole string, req *dto.RegisterCardRequest) (*dto.CardResponse, error) {
	targetID := callerID
	if req.UserID != nil && isAdmin(callerRole) {
		targetID = *req.UserID
	}

	if _, err := s.repo.Card.GetByUUID(ctx, req.CardUUID); err == nil {
		return nil, ErrCardTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	card := &model.Card{
		UUID:     req.CardUUID,
		UserID:   user.UserID,
		IsActive: true,
	}
	card.CreatedBy = &callerID
	if err := s.repo.Card.Create(ctx, card); err != nil {
		s.logger.Error("registering card", zap.Error(err))
		return nil, err
	}

	return &dto.CardResponse{
		UUID:      card.UUID,
		UserID:    card.UserID,
		UserEmail: user.Email,
		IsActive:  card.IsActive,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *attendanceService) TodayRecords(ctx context.Context, callerID, callerRole string) ([]dto.RecordResponse, error) {
	now := s.clock().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	filterUser := ""
	if !isAdmin(callerRole) {
		filterUser = callerID
	}

	records, err := s.repo.Attendance.ListBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1), filterUser)
	if err != nil {
		s.logger.Error("listing today's records", zap.Error(err))
		return nil, err
	}
	return recordResponses(records), nil
}

func (s *attendanceService) UserRecords(ctx context.Context, callerID, callerRole, userID string, q *dto.RecordRangeQuery) ([]dto.RecordResponse, error) {
	if callerID != userID && !isAdmin(callerRole) {
		return nil, ErrForbidden
	}

	// Default to the trailing 30 days when no range is given.
	now := s.clock().In(s.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -30)
	to := from.AddDate(0, 0, 31)

	if q != nil && q.StartDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q.StartDate, s.loc)
		if err == nil {
			from = parsed
		}
	}
	if q != nil && q.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q.EndDate, s.loc)
		if err == nil {
			to = parsed.AddDate(0, 0, 1) // end date is inclusive
		}
	}

	records, err := s.repo.Attendance.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("listing user records", zap.Error(err))
		return nil, err
	}
	return recordResponses(records), nil
}

func recordResponses(records []model.AttendanceRecord) []dto.RecordResponse {
	out := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		r := &records[i]
		resp := dto.RecordResponse{
			RecordID:   r.RecordID,
			RecordType: r.RecordType,
			Status:     r.Status,
			CardUUID:   r.CardUUID,
			DeviceUUID: r.DeviceUUID,
			OccurredAt: r.OccurredAt.Format(time.RFC3339),
		}
		if r.User != nil {
			resp.User = userResponse(r.User)
		}
		out = append(out, resp)
	}
	return out
}
