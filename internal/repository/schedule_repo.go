package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
)

// ScheduleRepository weekly attendance window data access interface
type ScheduleRepository interface {
	GetByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*model.AttendanceSchedule, error)
	ListByUser(ctx context.Context, userID string) ([]model.AttendanceSchedule, error)
	ReplaceForUser(ctx context.Context, userID string, rows []model.AttendanceSchedule) error
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*model.AttendanceSchedule, error) {
	var sched model.AttendanceSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).
		First(&sched).Error
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID string) ([]model.AttendanceSchedule, error) {
	var rows []model.AttendanceSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceForUser swaps a user's whole week in one transaction: the
// administrative contract is delete-then-insert, never row patching.
func (r *scheduleRepo) ReplaceForUser(ctx context.Context, userID string, rows []model.AttendanceSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.AttendanceSchedule{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
