package dto

// ── attendance module DTOs ──

// ScanRequest badge scan reported by a terminal
type ScanRequest struct {
	CardUUID string `json:"card_uuid" binding:"required,min=1,max=64"`
}

// ScanResponse outcome of an accepted scan
type ScanResponse struct {
	RecordType string        `json:"record_type"` // IN | OUT
	Status     string        `json:"status"`      // EARLY | PRESENT | LATE
	OccurredAt string        `json:"occurred_at"`
	User       *UserResponse `json:"user,omitempty"`
}

// RegisterCardRequest badge card registration
type RegisterCardRequest struct {
	CardUUID string `json:"card_uuid" binding:"required,min=1,max=64"`
	// UserID is honored for admins; company accounts register to themselves.
	UserID *string `json:"user_id" binding:"omitempty,uuid"`
}

// CardResponse registered card summary
type CardResponse struct {
	UUID      string `json:"uuid"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// RecordResponse one ledger row
type RecordResponse struct {
	RecordID   string        `json:"record_id"`
	RecordType string        `json:"record_type"`
	Status     string        `json:"status"`
	CardUUID   string        `json:"card_uuid"`
	DeviceUUID string        `json:"device_uuid"`
	OccurredAt string        `json:"occurred_at"`
	User       *UserResponse `json:"user,omitempty"`
}

// RecordRangeQuery date-bounded history query
type RecordRangeQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}
