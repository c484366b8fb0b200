package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/app/services"
	"github.com/rjoshi/gradevault/internal/middleware"
)

// GradeController handles grade submission and retrieval.
type GradeController struct {
	gradeService *services.GradeService
	logger       zerolog.Logger
}

// NewGradeController creates a new GradeController.
func NewGradeController(gradeService *services.GradeService, logger zerolog.Logger) *GradeController {
	return &GradeController{
		gradeService: gradeService,
		logger:       logger,
	}
}

// SubmitGrade upserts the caller's grade for a course.
func (c *GradeController) SubmitGrade(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "could not validate credentials"})
		return
	}

	var req dto.GradeSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.MessageResponse{Message: err.Error()})
		return
	}

	result, err := c.gradeService.Submit(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		c.logger.Error().Err(err).Str("courseId", req.CourseID).Msg("Failed to submit grade")
		ctx.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetGrades lists every grade row recorded for a course.
func (c *GradeController) GetGrades(ctx *gin.Context) {
	courseID := ctx.Param("course_id")

	grades, err := c.gradeService.ListByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		c.logger.Error().Err(err).Str("courseId", courseID).Msg("Failed to list grades")
		ctx.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, grades)
}
