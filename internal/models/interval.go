package models

// MinutesUnknown marks a clock value that could not be parsed. Unknown is a
// value here, not an error: records carrying it are excluded from conflict
// math instead of aborting it.
const MinutesUnknown = -1

// TimeInterval is a minute-resolution time range within a single day.
// Parseable intervals satisfy 0 <= StartMinute < EndMinute < 1440;
// everything else (including zero-length ranges) reports Valid() == false.
type TimeInterval struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// UnknownInterval returns the sentinel interval for unparseable clocks.
func UnknownInterval() TimeInterval {
	return TimeInterval{StartMinute: MinutesUnknown, EndMinute: MinutesUnknown}
}

// Valid reports whether the interval carries usable minute bounds.
func (t TimeInterval) Valid() bool {
	return t.StartMinute >= 0 && t.EndMinute > t.StartMinute && t.EndMinute < 1440
}

// Overlaps applies the half-open overlap test. An interval with unknown
// bounds never overlaps anything.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	if !t.Valid() || !other.Valid() {
		return false
	}
	return !(t.EndMinute <= other.StartMinute || other.EndMinute <= t.StartMinute)
}

// TouchesRange reports whether the interval overlaps the half-open minute
// range [start, end).
func (t TimeInterval) TouchesRange(start, end int) bool {
	if !t.Valid() {
		return false
	}
	return !(t.EndMinute <= start || end <= t.StartMinute)
}
