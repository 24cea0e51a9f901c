package dto

import (
	"encoding/json"
	"strings"
)

// FlexID decodes upstream identifiers that arrive as either JSON numbers
// or strings, depending on which version of the legacy API served them.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// RawBooking mirrors the booking payloads of the legacy API, which spells
// the same concept several ways depending on endpoint version. The
// normalize service owns the priority between variants; this type just
// captures everything that might be present.
type RawBooking struct {
	ID        FlexID `json:"id"`
	BookingID FlexID `json:"booking_id"`

	TeacherID    FlexID `json:"teacher_id"`
	TeacherIDAlt FlexID `json:"teacherId"`
	ResourceID   FlexID `json:"resource_id"`

	StudentID  FlexID   `json:"student_id"`
	StudentIDs []FlexID `json:"student_ids"`

	Date       string `json:"date"`
	LessonDate string `json:"lesson_date"`

	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	StartTimeAlt string `json:"startTime"`
	EndTimeAlt   string `json:"endTime"`
	Start        string `json:"start"`
	End          string `json:"end"`

	Status   string `json:"status"`
	Location string `json:"location"`
	Room     string `json:"room"`

	CourseID     FlexID `json:"course_id"`
	ScheduleType string `json:"schedule_type"`
}

// RawTeacher is the roster entry as served upstream. Restriction is a
// numeric enum there: 0 means unrestricted, 1 (or absent) means the
// teacher's availability declarations are binding.
type RawTeacher struct {
	ID          FlexID `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Restriction *int   `json:"restriction"`
}

// RawCourseType maps a course identifier to its display label. Some
// deployments serve "label", older ones "name".
type RawCourseType struct {
	ID    FlexID `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// RawAvailability is one flattened availability declaration. The upstream
// serves either a flat array of these or a teacher→date nested map; the
// repository folds both into this shape.
type RawAvailability struct {
	TeacherID  FlexID `json:"teacher_id"`
	ResourceID FlexID `json:"resource_id"`
	Date       string `json:"date"`
	Morning    *bool  `json:"morning"`
	Afternoon  *bool  `json:"afternoon"`
	Evening    *bool  `json:"evening"`
}
