package dto

// ── schedule module DTOs ──

// ScheduleEntryRequest one weekday's windows. Times accept 24-hour
// "HH:MM:SS" or 12-hour "HH:MM:SS AM/PM"; both are normalized to
// 24-hour form before storage.
type ScheduleEntryRequest struct {
	DayOfWeek    int    `json:"day_of_week"    binding:"required,min=1,max=7"` // 1 = Monday
	CheckInFrom  string `json:"check_in_from"  binding:"required"`
	CheckInTo    string `json:"check_in_to"    binding:"required"`
	CheckOutFrom string `json:"check_out_from" binding:"required"`
	CheckOutTo   string `json:"check_out_to"   binding:"required"`
}

// SetScheduleRequest wholesale weekly schedule replacement
type SetScheduleRequest struct {
	// UserID is honored for admins; company accounts set their own.
	UserID    *string                `json:"user_id"   binding:"omitempty,uuid"`
	Schedules []ScheduleEntryRequest `json:"schedules" binding:"required,min=1,max=7,dive"`
}

// ScheduleEntryResponse one weekday's windows as stored, plus the
// 12-hour display form
type ScheduleEntryResponse struct {
	DayOfWeek       int    `json:"day_of_week"`
	CheckInFrom     string `json:"check_in_from"`
	CheckInTo       string `json:"check_in_to"`
	CheckOutFrom    string `json:"check_out_from"`
	CheckOutTo      string `json:"check_out_to"`
	CheckInDisplay  string `json:"check_in_display"`  // e.g. "09:00:00 AM - 10:00:00 AM"
	CheckOutDisplay string `json:"check_out_display"` // e.g. "05:00:00 PM - 06:00:00 PM"
}

// ScheduleResponse a user's full week
type ScheduleResponse struct {
	UserID    string                  `json:"user_id"`
	Schedules []ScheduleEntryResponse `json:"schedules"`
}
