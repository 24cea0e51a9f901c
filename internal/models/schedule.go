package models

import "strings"

// ScheduleStatus is the lifecycle state of a booking.
type ScheduleStatus string

const (
	StatusPending   ScheduleStatus = "pending"
	StatusConfirmed ScheduleStatus = "confirmed"
	StatusCompleted ScheduleStatus = "completed"
	StatusCancelled ScheduleStatus = "cancelled"
)

// ParseScheduleStatus maps a raw status spelling onto the canonical set.
// Unknown spellings fall back to pending rather than failing the record.
func ParseScheduleStatus(raw string) ScheduleStatus {
	switch ScheduleStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusConfirmed:
		return StatusConfirmed
	case StatusCompleted:
		return StatusCompleted
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// ScheduleRecord is the canonical booking shape every raw upstream payload
// is normalized into. Cancelled records stay in the data set for history
// but are excluded from conflict computation.
type ScheduleRecord struct {
	ID         string         `json:"id"`
	TeacherID  string         `json:"teacher_id"`
	StudentIDs []string       `json:"student_ids,omitempty"`
	Date       string         `json:"date"`
	StartTime  string         `json:"start_time,omitempty"`
	EndTime    string         `json:"end_time,omitempty"`
	Interval   TimeInterval   `json:"interval"`
	Location   string         `json:"location,omitempty"`
	Status     ScheduleStatus `json:"status"`
	TypeLabel  string         `json:"type_label"`
}

// Cluster is a maximal run of transitively overlapping records for one
// teacher on one day. Display-only: rebuilt on every render, never stored.
type Cluster struct {
	Records  []ScheduleRecord `json:"records"`
	MinStart int              `json:"min_start"`
	MaxEnd   int              `json:"max_end"`
}
