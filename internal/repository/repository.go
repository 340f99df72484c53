package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User       UserRepository
	Card       CardRepository
	Device     DeviceRepository
	Schedule   ScheduleRepository
	Attendance AttendanceRepository
}

// NewRepository builds the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Card:       NewCardRepo(db),
		Device:     NewDeviceRepo(db),
		Schedule:   NewScheduleRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}
