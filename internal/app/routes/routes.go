// Package routes wires controllers and middleware into the route table.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rjoshi/gradevault/internal/app/controllers"
	"github.com/rjoshi/gradevault/internal/middleware"
)

// SetupRouter registers all application routes. Every route passes through
// exactly one rate class; protected routes additionally require a session.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	gradeController *controllers.GradeController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
) {
	defaultLimit := rateLimit.Limit(middleware.RateClassDefault)

	router.GET("/courses", defaultLimit, courseController.GetCourses)

	auth := router.Group("/auth")
	{
		auth.GET("/login", defaultLimit, authController.Login)
		auth.GET("/logout", defaultLimit, authController.Logout)
		auth.GET("/has_login", rateLimit.Limit(middleware.RateClassHasLogin), authController.HasLogin)
	}

	authenticated := router.Group("")
	authenticated.Use(authMiddleware.SessionRequired())
	{
		authenticated.POST("/grades", rateLimit.Limit(middleware.RateClassGrades), gradeController.SubmitGrade)
		authenticated.GET("/get_grades/:course_id", defaultLimit, gradeController.GetGrades)
	}
}
