package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
)

// AvailabilityRepository lists availability declarations from the upstream
// API. Depending on deployment age the endpoint serves either a flat array
// of declarations or a teacher→date nested map; both are folded into the
// flat form.
type AvailabilityRepository struct {
	client *UpstreamClient
}

// NewAvailabilityRepository constructs an availability repository.
func NewAvailabilityRepository(client *UpstreamClient) *AvailabilityRepository {
	return &AvailabilityRepository{client: client}
}

// ListRange fetches declarations for the inclusive date window.
func (r *AvailabilityRepository) ListRange(ctx context.Context, startDate, endDate string) ([]dto.RawAvailability, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var raw json.RawMessage
	if err := r.client.GetJSON(ctx, "/availability", query, &raw); err != nil {
		return nil, err
	}
	return decodeAvailability(raw)
}

type availabilityFlags struct {
	Morning   *bool `json:"morning"`
	Afternoon *bool `json:"afternoon"`
	Evening   *bool `json:"evening"`
}

func decodeAvailability(raw json.RawMessage) ([]dto.RawAvailability, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var flat []dto.RawAvailability
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var nested map[string]map[string]availabilityFlags
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("decode availability payload: %w", err)
	}

	var out []dto.RawAvailability
	for teacherID, days := range nested {
		for date, flags := range days {
			out = append(out, dto.RawAvailability{
				TeacherID: dto.FlexID(teacherID),
				Date:      date,
				Morning:   flags.Morning,
				Afternoon: flags.Afternoon,
				Evening:   flags.Evening,
			})
		}
	}
	// map iteration order is random; keep the output stable
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeacherID != out[j].TeacherID {
			return out[i].TeacherID < out[j].TeacherID
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}
