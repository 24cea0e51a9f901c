package dto

// EligibilityRequest asks which teachers can take a lesson at the target
// date and clock range. ExcludeRecordID carries the booking being edited
// so it never conflicts with itself.
type EligibilityRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	ExcludeRecordID string `json:"excludeRecordId"`
}

// EligibilityResponse is one resolution result. Generation and Superseded
// let the caller drop answers that were overtaken by a newer request in
// the same form session.
type EligibilityResponse struct {
	Busy             []string `json:"busy"`
	Unavailable      []string `json:"unavailable"`
	DefaultTeacherID string   `json:"defaultTeacherId,omitempty"`
	Generation       uint64   `json:"generation"`
	Superseded       bool     `json:"superseded"`
	Degraded         bool     `json:"degraded"`
	Warning          string   `json:"warning,omitempty"`
}

// SessionResponse returns the id of a freshly opened form session.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// InvalidationRequest names which cached scope to drop after an upstream
// mutation.
type InvalidationRequest struct {
	Scope string `json:"scope" binding:"required,oneof=bookings availability roster all"`
}
