package dto

import "github.com/noah-isme/tutor-dash-api/internal/models"

// BookingFilter narrows an upstream booking listing. StartDate and EndDate
// are inclusive YYYY-MM-DD bounds; the rest are optional exact filters.
type BookingFilter struct {
	StartDate  string
	EndDate    string
	Status     string
	CourseType string
	TeacherID  string
}

// GridCell holds the clustered bookings of one teacher column on one day.
type GridCell struct {
	Date      string           `json:"date"`
	TeacherID string           `json:"teacher_id"`
	Clusters  []models.Cluster `json:"clusters"`
}

// GridResponse is the dashboard grid payload, cells ordered by date then
// teacher id so repeated renders are byte-stable.
type GridResponse struct {
	Cells []GridCell `json:"cells"`
}

// AvailabilityResponse lists the declarations for a date window.
type AvailabilityResponse struct {
	Records []models.AvailabilityRecord `json:"records"`
}

// TeacherListResponse is the normalized roster.
type TeacherListResponse struct {
	Teachers []models.Teacher `json:"teachers"`
}
