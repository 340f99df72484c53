package model

import "time"

// AttendanceRecord accepted badge scan table, maps to attendance_records
//
// Rows are append-only: a correction check-out adds a new row and the
// latest OUT of the day is authoritative for reporting.
type AttendanceRecord struct {
	RecordID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_attendance_user_day" json:"user_id"`
	CardUUID   string    `gorm:"type:varchar(64);not null"                      json:"card_uuid"`
	DeviceUUID string    `gorm:"type:varchar(64);not null"                      json:"device_uuid"`
	RecordType string    `gorm:"type:varchar(8);not null"                       json:"record_type"` // IN | OUT
	Status     string    `gorm:"type:varchar(10);not null"                      json:"status"`      // EARLY | PRESENT | LATE
	OccurredAt time.Time `gorm:"not null;index:idx_attendance_user_day"         json:"occurred_at"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name
func (AttendanceRecord) TableName() string { return "attendance_records" }
