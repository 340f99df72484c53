package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
	pkgerrors "github.com/Syedfarrukh0/rfid-backend-prac/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock CardRepository ──

type mockCardRepo struct {
	cards map[string]*model.Card // keyed by badge UUID
	users *mockUserRepo
}

func newMockCardRepo(users *mockUserRepo) *mockCardRepo {
	return &mockCardRepo{cards: make(map[string]*model.Card), users: users}
}

func (m *mockCardRepo) Create(_ context.Context, card *model.Card) error {
	if card.CardID == "" {
		card.CardID = "card-" + card.UUID
	}
	m.cards[card.UUID] = card
	return nil
}

func (m *mockCardRepo) GetByUUID(_ context.Context, uuid string) (*model.Card, error) {
	card, ok := m.cards[uuid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// emulate the Preload("User") the real repo does
	if card.User == nil {
		if u, ok := m.users.users[card.UserID]; ok {
			card.User = u
		}
	}
	return card, nil
}

func (m *mockCardRepo) ListByUser(_ context.Context, userID string) ([]model.Card, error) {
	var result []model.Card
	for _, c := range m.cards {
		if c.UserID == userID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCardRepo) SetActive(_ context.Context, uuid string, active bool) error {
	card, ok := m.cards[uuid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	card.IsActive = active
	return nil
}

// ── Mock DeviceRepository ──

type mockDeviceRepo struct {
	devices map[string]*model.Device // keyed by device UUID
}

func newMockDeviceRepo() *mockDeviceRepo {
	return &mockDeviceRepo{devices: make(map[string]*model.Device)}
}

func (m *mockDeviceRepo) Create(_ context.Context, device *model.Device) error {
	if device.DeviceID == "" {
		device.DeviceID = "dev-" + device.UUID
	}
	m.devices[device.UUID] = device
	return nil
}

func (m *mockDeviceRepo) GetByUUID(_ context.Context, uuid string) (*model.Device, error) {
	if d, ok := m.devices[uuid]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeviceRepo) List(_ context.Context) ([]model.Device, error) {
	var result []model.Device
	for _, d := range m.devices {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDeviceRepo) Update(_ context.Context, device *model.Device) error {
	existing, ok := m.devices[device.UUID]
	if !ok || existing.Version != device.Version {
		return pkgerrors.ErrOptimisticLock
	}
	device.Version++
	m.devices[device.UUID] = device
	return nil
}

func (m *mockDeviceRepo) TouchHeartbeat(_ context.Context, uuid, status string, at time.Time) error {
	d, ok := m.devices[uuid]
	if !ok {
		return nil
	}
	d.Status = status
	d.LastHeartbeat = &at
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	rows map[string][]model.AttendanceSchedule // keyed by user ID
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{rows: make(map[string][]model.AttendanceSchedule)}
}

func (m *mockScheduleRepo) GetByUserAndDay(_ context.Context, userID string, dayOfWeek int) (*model.AttendanceSchedule, error) {
	for i := range m.rows[userID] {
		if m.rows[userID][i].DayOfWeek == dayOfWeek {
			return &m.rows[userID][i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.AttendanceSchedule, error) {
	return m.rows[userID], nil
}

func (m *mockScheduleRepo) ReplaceForUser(_ context.Context, userID string, rows []model.AttendanceSchedule) error {
	m.rows[userID] = rows
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []model.AttendanceRecord
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	if record.RecordID == "" {
		record.RecordID = fmt.Sprintf("rec-%d", len(m.records)+1)
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockAttendanceRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID && !r.OccurredAt.Before(from) && r.OccurredAt.Before(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListBetween(_ context.Context, from, to time.Time, userID string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if userID != "" && r.UserID != userID {
			continue
		}
		if !r.OccurredAt.Before(from) && r.OccurredAt.Before(to) {
			result = append(result, r)
		}
	}
	return result, nil
}
