package model

import "time"

// Device statuses
const (
	DeviceStatusPendingProvision = "PENDING_PROVISION"
	DeviceStatusConnected        = "CONNECTED"
	DeviceStatusDisconnected     = "DISCONNECTED"
)

// Device badge-scan terminal table, maps to devices
//
// Secret is the shared credential the terminal presents in
// X-Device-Secret; Version backs the optimistic-lock update path so two
// operators cannot both claim an unassigned device.
type Device struct {
	DeviceID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"device_id"`
	UUID          string     `gorm:"type:varchar(64);not null;uniqueIndex"              json:"uuid"`
	Secret        string     `gorm:"type:varchar(64);not null"                          json:"secret"`
	Name          string     `gorm:"type:varchar(100);not null"                         json:"name"`
	Status        string     `gorm:"type:varchar(20);not null;default:'PENDING_PROVISION'" json:"status"`
	OwnerID       *string    `gorm:"type:uuid"                                          json:"owner_id,omitempty"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
	VersionedModel

	// Associations
	Owner *User `gorm:"foreignKey:OwnerID;references:UserID" json:"owner,omitempty"`
}

// TableName sets the table name
func (Device) TableName() string { return "devices" }
