package models

// DaySlot is one of the three fixed daily bands used for coarse-grained
// availability declarations.
type DaySlot string

const (
	SlotMorning   DaySlot = "morning"
	SlotAfternoon DaySlot = "afternoon"
	SlotEvening   DaySlot = "evening"
)

// AllSlots lists the slots in chronological order.
var AllSlots = []DaySlot{SlotMorning, SlotAfternoon, SlotEvening}

// SlotBounds holds the fixed [start, end) minute boundaries of each slot.
// These are policy constants, not per-teacher configuration.
var SlotBounds = map[DaySlot][2]int{
	SlotMorning:   {360, 720},
	SlotAfternoon: {720, 1140},
	SlotEvening:   {1140, 1440},
}

// AvailabilityRecord is one teacher's declaration for one date. A nil flag
// means the slot was simply not mentioned, which is different from an
// explicit false.
type AvailabilityRecord struct {
	TeacherID string `json:"teacher_id"`
	Date      string `json:"date"`
	Morning   *bool  `json:"morning,omitempty"`
	Afternoon *bool  `json:"afternoon,omitempty"`
	Evening   *bool  `json:"evening,omitempty"`
}

// Open reports whether the slot is declared open. Only an explicit false
// closes a slot; an absent flag (or an absent record) leaves it open.
func (r *AvailabilityRecord) Open(slot DaySlot) bool {
	if r == nil {
		return true
	}
	var flag *bool
	switch slot {
	case SlotMorning:
		flag = r.Morning
	case SlotAfternoon:
		flag = r.Afternoon
	case SlotEvening:
		flag = r.Evening
	}
	return flag == nil || *flag
}
