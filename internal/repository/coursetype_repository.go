package repository

import (
	"context"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
)

// CourseTypeRepository lists the course type catalog used to resolve type
// labels on normalized records.
type CourseTypeRepository struct {
	client *UpstreamClient
}

// NewCourseTypeRepository constructs a course type repository.
func NewCourseTypeRepository(client *UpstreamClient) *CourseTypeRepository {
	return &CourseTypeRepository{client: client}
}

// List fetches the full catalog.
func (r *CourseTypeRepository) List(ctx context.Context) ([]dto.RawCourseType, error) {
	var types []dto.RawCourseType
	if err := r.client.GetJSON(ctx, "/course-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}
