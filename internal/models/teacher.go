package models

// RestrictionTier decides whether a teacher's availability declarations are
// binding during resolution.
type RestrictionTier string

const (
	// TierUnrestricted teachers ignore declarations entirely; only hard
	// booking conflicts apply to them.
	TierUnrestricted RestrictionTier = "UNRESTRICTED"
	// TierAvailabilityChecked teachers are bound by their declarations.
	TierAvailabilityChecked RestrictionTier = "AVAILABILITY_CHECKED"
)

const (
	TeacherStatusActive   = "active"
	TeacherStatusPaused   = "paused"
	TeacherStatusInactive = "inactive"
	TeacherStatusDeleted  = "deleted"
)

// Teacher is the bookable resource of the scheduling grid.
type Teacher struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status string          `json:"status"`
	Tier   RestrictionTier `json:"tier"`
}

// StatusWeight orders teachers for the default pick: active first, paused
// next, everything else last.
func (t Teacher) StatusWeight() int {
	switch t.Status {
	case TeacherStatusActive:
		return 0
	case TeacherStatusPaused:
		return 1
	default:
		return 2
	}
}

// Bookable reports whether the teacher belongs in the candidate pool at
// all. Deleted and inactive teachers are filtered out before resolution.
func (t Teacher) Bookable() bool {
	return t.Status != TeacherStatusDeleted && t.Status != TeacherStatusInactive
}
