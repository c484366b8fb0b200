package services

import (
	"context"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/repositories"
)

// CourseService exposes the read-only course catalogue.
type CourseService struct {
	courseRepo repositories.ICourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repositories.ICourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// List returns all courses ordered by identifier. An empty catalogue is an
// empty slice, never nil, so it serializes as a JSON array.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}
