package cas

import (
	"errors"
	"testing"

	gocas "gopkg.in/cas.v2"

	"github.com/rjoshi/gradevault/internal/pkg/apperrors"
)

func TestLoginAndLogoutURLs(t *testing.T) {
	client, err := NewClient("https://login.college.edu/cas", "https://grades.college.edu/auth/login", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	wantLogin := "https://login.college.edu/cas/login?service=https%3A%2F%2Fgrades.college.edu%2Fauth%2Flogin"
	if got := client.LoginURL(); got != wantLogin {
		t.Errorf("LoginURL = %q, want %q", got, wantLogin)
	}

	wantLogout := "https://login.college.edu/cas/logout"
	if got := client.LogoutURL(); got != wantLogout {
		t.Errorf("LogoutURL = %q, want %q", got, wantLogout)
	}
}

func TestNewClientRejectsBadURLs(t *testing.T) {
	if _, err := NewClient("://bad", "https://grades.college.edu/auth/login", nil); err == nil {
		t.Error("expected error for malformed server URL")
	}
}

func TestIdentityFromResponse(t *testing.T) {
	attrs := gocas.UserAttributes{}
	attrs.Add("E-Mail", "student@college.edu")
	attrs.Add("Name", "A Student")
	attrs.Add("RollNo", "2023101042")

	identity, err := identityFromResponse(&gocas.AuthenticationResponse{
		User:       "student",
		Attributes: attrs,
	})
	if err != nil {
		t.Fatalf("identityFromResponse returned error: %v", err)
	}
	if identity.Email != "student@college.edu" || identity.Name != "A Student" || identity.RollNo != "2023101042" {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestIdentityEmailFallsBackToUser(t *testing.T) {
	attrs := gocas.UserAttributes{}
	attrs.Add("Name", "A Student")

	identity, err := identityFromResponse(&gocas.AuthenticationResponse{
		User:       "student@college.edu",
		Attributes: attrs,
	})
	if err != nil {
		t.Fatalf("identityFromResponse returned error: %v", err)
	}
	if identity.Email != "student@college.edu" {
		t.Errorf("Email = %q, want fallback to CAS user", identity.Email)
	}
}

func TestIdentityRequiresAttributes(t *testing.T) {
	_, err := identityFromResponse(&gocas.AuthenticationResponse{User: "student"})
	if !errors.Is(err, apperrors.ErrNoAttributes) {
		t.Errorf("err = %v, want ErrNoAttributes", err)
	}
}
