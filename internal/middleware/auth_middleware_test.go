package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/services"
	"github.com/rjoshi/gradevault/internal/pkg/apperrors"
	"github.com/rjoshi/gradevault/internal/pkg/cas"
	"github.com/rjoshi/gradevault/internal/pkg/token"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

type stubCAS struct{}

func (stubCAS) ValidateTicket(string) (*cas.Identity, error) { return nil, apperrors.ErrNoAttributes }
func (stubCAS) LoginURL() string                             { return "https://cas.example/login" }
func (stubCAS) LogoutURL() string                            { return "https://cas.example/logout" }

func newTestAuthSetup() (*AuthMiddleware, *token.Service) {
	tokens := token.NewService(token.Config{
		SecretKey: "test-secret",
		Lifetime:  15 * time.Minute,
	})
	repo := &fakeUserRepo{users: map[string]*models.User{
		"student@college.edu": {ID: "u1", Email: "student@college.edu"},
	}}
	authService := services.NewAuthService(repo, tokens, stubCAS{}, zerolog.Nop())
	return NewAuthMiddleware(authService), tokens
}

func protectedRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", m.SessionRequired(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return router
}

func TestSessionRequiredWithoutCookie(t *testing.T) {
	m, _ := newTestAuthSetup()
	router := protectedRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := w.Body.String(); got != `{"message":"could not validate credentials"}` {
		t.Errorf("body = %s, want the generic 401 body", got)
	}
}

func TestSessionRequiredWithValidCookie(t *testing.T) {
	m, tokens := newTestAuthSetup()
	router := protectedRouter(m)

	tok, err := tokens.Issue("student@college.edu")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != `{"id":"u1"}` {
		t.Errorf("body = %s, want the resolved user", got)
	}
}

func TestSessionRequiredFailuresAreUniform(t *testing.T) {
	m, tokens := newTestAuthSetup()
	router := protectedRouter(m)

	expiredService := token.NewServiceWithClock(token.Config{
		SecretKey: "test-secret",
		Lifetime:  15 * time.Minute,
	}, func() time.Time { return time.Now().Add(-time.Hour) })
	expired, err := expiredService.Issue("student@college.edu")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	unknownSubject, err := tokens.Issue("ghost@college.edu")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	for name, value := range map[string]string{
		"forged":          "aaaa.bbbb.cccc",
		"expired":         expired,
		"unknown subject": unknownSubject,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
		if got := w.Body.String(); got != `{"message":"could not validate credentials"}` {
			t.Errorf("%s: body = %s, want the generic 401 body", name, got)
		}
	}
}
