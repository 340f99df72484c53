package model

// AttendanceSchedule per-user weekly window table, maps to attendance_schedules
//
// One row per (user, day of week); DayOfWeek is Monday-based 1..7.
// Boundaries are stored as zero-padded 24-hour HH:MM:SS in the
// operational timezone; the configuration endpoint normalizes 12-hour
// input before anything reaches this table. Rows are replaced wholesale
// per user (delete then insert) and are read-only to the engine.
type AttendanceSchedule struct {
	ScheduleID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"schedule_id"`
	UserID       string `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_user_day" json:"user_id"`
	DayOfWeek    int    `gorm:"type:smallint;not null;uniqueIndex:idx_schedule_user_day" json:"day_of_week"`
	CheckInFrom  string `gorm:"type:char(8);not null" json:"check_in_from"`
	CheckInTo    string `gorm:"type:char(8);not null" json:"check_in_to"`
	CheckOutFrom string `gorm:"type:char(8);not null" json:"check_out_from"`
	CheckOutTo   string `gorm:"type:char(8);not null" json:"check_out_to"`
	BaseModel

	// Associations
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name
func (AttendanceSchedule) TableName() string { return "attendance_schedules" }
