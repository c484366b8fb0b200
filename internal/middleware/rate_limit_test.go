package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddlewareRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m, err := NewRateLimitMiddleware(map[string]string{
		RateClassDefault: "2/minute",
	})
	if err != nil {
		t.Fatalf("NewRateLimitMiddleware returned error: %v", err)
	}
	defer m.Stop()

	router := gin.New()
	router.GET("/ping", m.Limit(RateClassDefault), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if got := w.Body.String(); got != `{"message":"rate limit exceeded"}` {
		t.Errorf("body = %s, want the fixed rate limit body", got)
	}
}

func TestRateLimitMiddlewareClassesAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m, err := NewRateLimitMiddleware(map[string]string{
		RateClassDefault:  "1/minute",
		RateClassHasLogin: "100/minute",
	})
	if err != nil {
		t.Fatalf("NewRateLimitMiddleware returned error: %v", err)
	}
	defer m.Stop()

	router := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/a", m.Limit(RateClassDefault), ok)
	router.GET("/b", m.Limit(RateClassHasLogin), ok)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("default class: status = %d, want 429", w.Code)
	}

	// Exhausting the default class must not touch has_login's budget.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/b", nil))
	if w.Code != http.StatusOK {
		t.Errorf("has_login class: status = %d, want 200", w.Code)
	}
}

func TestNewRateLimitMiddlewareRejectsBadRateString(t *testing.T) {
	if _, err := NewRateLimitMiddleware(map[string]string{RateClassDefault: "often"}); err == nil {
		t.Error("expected error for malformed rate string")
	}
}
