package dto

// ── device module DTOs ──

// DeviceSpec one terminal in a registration batch
type DeviceSpec struct {
	Name string `json:"name" binding:"omitempty,max=100"`
}

// RegisterDevicesRequest batch terminal registration
type RegisterDevicesRequest struct {
	Devices []DeviceSpec `json:"devices" binding:"required,min=1,dive"`
}

// DeviceResponse terminal summary. Secret is only echoed at
// registration time.
type DeviceResponse struct {
	UUID          string `json:"uuid"`
	Secret        string `json:"secret,omitempty"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	OwnerEmail    string `json:"owner_email,omitempty"`
	LastHeartbeat string `json:"last_heartbeat,omitempty"`
}

// AssignDeviceRequest bind a terminal to an account
type AssignDeviceRequest struct {
	UUID string `json:"uuid" binding:"required"`
	// UserID is honored for admins; company accounts self-assign.
	UserID *string `json:"user_id" binding:"omitempty,uuid"`
}

// HeartbeatRequest terminal liveness report
type HeartbeatRequest struct {
	Status string `json:"status" binding:"omitempty,max=20"`
}

// DeviceCommand one queued instruction for a terminal
type DeviceCommand struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// HeartbeatResponse heartbeat acknowledgment with any pending command
type HeartbeatResponse struct {
	Command string                 `json:"command"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ConnectCommandRequest queue wifi credentials for a terminal
type ConnectCommandRequest struct {
	SSID     string `json:"ssid"     binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// WifiNetwork one observed network in a terminal's scan
type WifiNetwork struct {
	SSID       string `json:"ssid"`
	RSSI       int    `json:"rssi"`
	Channel    int    `json:"channel"`
	Encryption int    `json:"encryption"`
}

// DeviceStatusResponse liveness derived from the last heartbeat
type DeviceStatusResponse struct {
	Status        string `json:"status"` // CONNECTED | DISCONNECTED
	LastHeartbeat string `json:"last_heartbeat,omitempty"`
}
