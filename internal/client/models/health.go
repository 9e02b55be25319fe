package models

// HealthRecord is a saved health measurement (blood pressure, glucose, ...).
type HealthRecord struct {
	ID        int    `json:"id"`
	UserID    string `json:"user_id"`
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// HealthRecordCreate is the request body for saving a measurement.
// Timestamp is optional; the backend fills it in when empty.
type HealthRecordCreate struct {
	UserID    string `json:"user_id"`
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp,omitempty"`
}
