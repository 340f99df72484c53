package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
)

// AttendanceRepository attendance ledger data access interface
//
// The ledger is append-mostly: Create is the only write.
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]model.AttendanceRecord, error)
	ListBetween(ctx context.Context, from, to time.Time, userID string) ([]model.AttendanceRecord, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByUserBetween returns one user's records in [from, to), ascending
// by occurrence, which is the order the decision engine expects.
func (r *attendanceRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, from, to).
		Order("occurred_at ASC").
		Find(&records).Error
	return records, err
}

// ListBetween returns records in [from, to) across users, newest first,
// optionally narrowed to one user. Used by the reporting endpoints.
func (r *attendanceRepo) ListBetween(ctx context.Context, from, to time.Time, userID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	db := r.db.WithContext(ctx).
		Preload("User").
		Where("occurred_at >= ? AND occurred_at < ?", from, to)
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	err := db.Order("occurred_at DESC").Find(&records).Error
	return records, err
}
