package model

// Card RFID badge card table, maps to cards
//
// UUID is the identifier burned into the badge and reported by scan
// hardware; it is the lookup key at the attendance endpoint.
type Card struct {
	CardID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"card_id"`
	UUID     string `gorm:"type:varchar(64);not null;uniqueIndex"          json:"uuid"`
	UserID   string `gorm:"type:uuid;not null"                             json:"user_id"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// Associations
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name
func (Card) TableName() string { return "cards" }
