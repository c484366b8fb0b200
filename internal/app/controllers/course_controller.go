package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/app/services"
)

// CourseController serves the course catalogue.
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// GetCourses lists all seeded courses, id ascending.
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list courses")
		ctx.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, courses)
}
