package repository

import (
	"context"
	"net/url"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
)

// BookingRepository lists raw bookings from the upstream API.
type BookingRepository struct {
	client *UpstreamClient
}

// NewBookingRepository constructs a booking repository.
func NewBookingRepository(client *UpstreamClient) *BookingRepository {
	return &BookingRepository{client: client}
}

// ListRange fetches the bookings matching the filter. Optional filter
// fields are omitted from the query when empty.
func (r *BookingRepository) ListRange(ctx context.Context, filter dto.BookingFilter) ([]dto.RawBooking, error) {
	query := url.Values{}
	query.Set("start_date", filter.StartDate)
	query.Set("end_date", filter.EndDate)
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.CourseType != "" {
		query.Set("type", filter.CourseType)
	}
	if filter.TeacherID != "" {
		query.Set("teacher_id", filter.TeacherID)
	}

	var bookings []dto.RawBooking
	if err := r.client.GetJSON(ctx, "/bookings", query, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
