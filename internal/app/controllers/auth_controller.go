// Package controllers handles HTTP request handling.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/app/services"
	"github.com/rjoshi/gradevault/internal/middleware"
	"github.com/rjoshi/gradevault/internal/pkg/apperrors"
)

// AuthController implements the CAS login flow endpoints.
type AuthController struct {
	authService *services.AuthService
	frontendURL string
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService *services.AuthService, frontendURL string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Login drives the CAS ticket exchange:
//  1. a valid session cookie short-circuits straight to the frontend,
//  2. no ticket redirects out to the CAS login page,
//  3. a ticket is exchanged for a session token, set as a cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(middleware.SessionCookieName); err == nil {
		if c.authService.HasValidSession(cookie) {
			ctx.Redirect(http.StatusFound, c.frontendURL)
			return
		}
	}

	ticket := ctx.Query("ticket")
	if ticket == "" {
		ctx.Redirect(http.StatusFound, c.authService.LoginURL())
		return
	}

	tokenString, err := c.authService.ExchangeTicket(ctx.Request.Context(), ticket)
	if err != nil {
		c.logger.Warn().Err(err).Msg("CAS ticket exchange failed")
		if errors.Is(err, apperrors.ErrNoAttributes) {
			ctx.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "CAS attributes not valid"})
			return
		}
		ctx.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "could not validate credentials"})
		return
	}

	setSessionCookie(ctx, tokenString)
	ctx.Redirect(http.StatusFound, c.frontendURL)
}

// Logout clears the session cookie and redirects to the CAS logout page,
// whether or not a session existed.
func (c *AuthController) Logout(ctx *gin.Context) {
	clearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, c.authService.LogoutURL())
}

// HasLogin reports whether the caller currently holds a valid session
// token. Polled by the frontend, so it only checks the token locally and
// never contacts CAS.
func (c *AuthController) HasLogin(ctx *gin.Context) {
	authenticated := false
	if cookie, err := ctx.Cookie(middleware.SessionCookieName); err == nil {
		authenticated = c.authService.HasValidSession(cookie)
	}
	ctx.JSON(http.StatusOK, dto.HasLoginResponse{Authenticated: authenticated})
}

// setSessionCookie sets the token as a secure, http-only, cross-site
// cookie. No Max-Age: the cookie outlives the 15-minute token on purpose,
// and validation catches the mismatch.
func setSessionCookie(ctx *gin.Context, tokenString string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
