package repository

import (
	"context"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
)

// TeacherRepository lists the raw roster from the upstream API.
type TeacherRepository struct {
	client *UpstreamClient
}

// NewTeacherRepository constructs a teacher repository.
func NewTeacherRepository(client *UpstreamClient) *TeacherRepository {
	return &TeacherRepository{client: client}
}

// List fetches every teacher known upstream, including inactive ones; the
// roster service decides what is bookable.
func (r *TeacherRepository) List(ctx context.Context) ([]dto.RawTeacher, error) {
	var teachers []dto.RawTeacher
	if err := r.client.GetJSON(ctx, "/teachers", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}
