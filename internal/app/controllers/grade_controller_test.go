package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/app/services"
	"github.com/rjoshi/gradevault/internal/middleware"
)

type fakeGradeRepo struct {
	rows   map[string]*models.Grade
	nextID int
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{rows: map[string]*models.Grade{}}
}

func (r *fakeGradeRepo) Upsert(_ context.Context, grade *models.Grade) (string, bool, error) {
	key := grade.UserID + "|" + grade.CourseID
	if existing, ok := r.rows[key]; ok {
		existing.TotalMarks = grade.TotalMarks
		existing.Grade = grade.Grade
		return existing.ID, false, nil
	}
	r.nextID++
	stored := *grade
	stored.ID = fmt.Sprintf("grade-%d", r.nextID)
	r.rows[key] = &stored
	return stored.ID, true, nil
}

func (r *fakeGradeRepo) ListByCourse(_ context.Context, courseID string) ([]dto.GradeRow, error) {
	result := []dto.GradeRow{}
	for _, g := range r.rows {
		if g.CourseID == courseID {
			result = append(result, dto.GradeRow{CourseID: g.CourseID, Grade: g.Grade, TotalMarks: g.TotalMarks})
		}
	}
	return result, nil
}

// asUser injects an authenticated user, standing in for the session
// middleware.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Next()
	}
}

func newGradeTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewGradeController(services.NewGradeService(newFakeGradeRepo(), zerolog.Nop()), zerolog.Nop())

	router := gin.New()
	router.POST("/grades", asUser(&models.User{ID: "u1", Email: "student@college.edu"}), controller.SubmitGrade)
	router.GET("/get_grades/:course_id", controller.GetGrades)
	return router
}

func postGrade(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/grades", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitGradeCreatedThenUpdated(t *testing.T) {
	router := newGradeTestRouter()

	w := postGrade(router, `{"course_id":"CS1.301","total_marks":87.5,"grade":"A"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != `{"status":"created","id":"grade-1"}` {
		t.Errorf("first submission body = %s, want created with id", got)
	}

	w = postGrade(router, `{"course_id":"CS1.301","total_marks":90.0,"grade":"A"}`)
	if got := w.Body.String(); got != `{"status":"updated","id":"grade-1"}` {
		t.Errorf("second submission body = %s, want updated with the same id", got)
	}
}

func TestSubmitGradeRejectsMalformedBody(t *testing.T) {
	router := newGradeTestRouter()

	for name, body := range map[string]string{
		"not json":       "not json",
		"missing course": `{"total_marks":87.5,"grade":"A"}`,
		"missing marks":  `{"course_id":"CS1.301","grade":"A"}`,
		"missing grade":  `{"course_id":"CS1.301","total_marks":87.5}`,
	} {
		if w := postGrade(router, body); w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want 422", name, w.Code)
		}
	}
}

func TestSubmitGradeAcceptsZeroMarks(t *testing.T) {
	router := newGradeTestRouter()

	w := postGrade(router, `{"course_id":"CS1.301","total_marks":0,"grade":"F"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for zero marks, body %s", w.Code, w.Body.String())
	}
}

func TestSubmitGradeWithoutUserIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewGradeController(services.NewGradeService(newFakeGradeRepo(), zerolog.Nop()), zerolog.Nop())
	router := gin.New()
	router.POST("/grades", controller.SubmitGrade)

	w := postGrade(router, `{"course_id":"CS1.301","total_marks":87.5,"grade":"A"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGetGradesScopedToCourse(t *testing.T) {
	router := newGradeTestRouter()

	postGrade(router, `{"course_id":"CS1.301","total_marks":87.5,"grade":"A"}`)
	postGrade(router, `{"course_id":"CS1.302","total_marks":60.0,"grade":"C"}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/get_grades/CS1.301", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `[{"course_id":"CS1.301","grade":"A","total_marks":87.5}]` {
		t.Errorf("body = %s, want only the CS1.301 row", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/get_grades/MA6.101", nil))
	if got := w.Body.String(); got != `[]` {
		t.Errorf("empty course body = %s, want []", got)
	}
}
