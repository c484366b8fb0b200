package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/app/repositories"
)

// Grade submission outcomes.
const (
	StatusCreated = "created"
	StatusUpdated = "updated"
)

// GradeService handles grade submission and retrieval.
type GradeService struct {
	gradeRepo repositories.IGradeRepository
	logger    zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(gradeRepo repositories.IGradeRepository, logger zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo: gradeRepo,
		logger:    logger,
	}
}

// Submit upserts the user's grade for a course and reports whether the row
// was created or updated, with its id.
func (s *GradeService) Submit(ctx context.Context, userID string, req *dto.GradeSubmitRequest) (*dto.GradeSubmitResponse, error) {
	grade := &models.Grade{
		CourseID:   req.CourseID,
		TotalMarks: *req.TotalMarks,
		Grade:      req.Grade,
		UserID:     userID,
	}

	id, created, err := s.gradeRepo.Upsert(ctx, grade)
	if err != nil {
		return nil, err
	}

	status := StatusUpdated
	if created {
		status = StatusCreated
	}

	s.logger.Debug().
		Str("courseId", req.CourseID).
		Str("status", status).
		Msg("Grade submitted")

	return &dto.GradeSubmitResponse{Status: status, ID: id}, nil
}

// ListByCourse returns every grade row recorded for a course.
func (s *GradeService) ListByCourse(ctx context.Context, courseID string) ([]dto.GradeRow, error) {
	return s.gradeRepo.ListByCourse(ctx, courseID)
}
