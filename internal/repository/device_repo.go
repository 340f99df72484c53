package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
	pkgerrors "github.com/Syedfarrukh0/rfid-backend-prac/pkg/errors"
)

// DeviceRepository scan terminal data access interface
type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	GetByUUID(ctx context.Context, uuid string) (*model.Device, error)
	List(ctx context.Context) ([]model.Device, error)
	Update(ctx context.Context, device *model.Device) error
	TouchHeartbeat(ctx context.Context, uuid, status string, at time.Time) error
}

type deviceRepo struct {
	db *gorm.DB
}

func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) Create(ctx context.Context, device *model.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *deviceRepo) GetByUUID(ctx context.Context, uuid string) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("uuid = ?", uuid).
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepo) List(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at ASC").
		Find(&devices).Error
	return devices, err
}

// Update writes assignment and status through an optimistic-lock check
// so two concurrent claims of the same device cannot both win.
func (r *deviceRepo) Update(ctx context.Context, device *model.Device) error {
	oldVersion := device.Version
	result := r.db.WithContext(ctx).
		Model(device).
		Where("uuid = ? AND version = ?", device.UUID, oldVersion).
		Updates(map[string]interface{}{
			"name":       device.Name,
			"status":     device.Status,
			"owner_id":   device.OwnerID,
			"updated_by": device.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	device.Version = oldVersion + 1
	return nil
}

// TouchHeartbeat records a heartbeat without bumping the version; the
// status flip is idempotent and races harmlessly.
func (r *deviceRepo) TouchHeartbeat(ctx context.Context, uuid, status string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Device{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"status":         status,
			"last_heartbeat": at,
		}).Error
}
