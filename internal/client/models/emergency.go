package models

// Emergency is a recorded emergency event.
type Emergency struct {
	ID        int    `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"tipo_emergencia"`
	Message   string `json:"mensaje_opcional"`
	Timestamp string `json:"timestamp"`
}

// EmergencyCreate is the request body for raising an emergency.
type EmergencyCreate struct {
	UserID  string `json:"user_id"`
	Type    string `json:"tipo_emergencia"`
	Message string `json:"mensaje_opcional,omitempty"`
}
