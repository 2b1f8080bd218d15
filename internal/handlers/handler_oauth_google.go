package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/middleware"
	"github.com/fondosar/backoffice_api/internal/platform/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles the Google OAuth login flow. Token issuance is
// shared with the password login path through AuthHandler.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	auth               *AuthHandler
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	auth *AuthHandler,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		auth:               auth,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes. These are public:
// the user has no token yet.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, NewAuthHandler(services.User, services.Token, cfg), cfg)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.LoginGoogle)
		google.GET("/callback", h.CallbackGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the browser to Google's consent screen. A state cookie guards the callback against CSRF.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	// 10 minutes is plenty for the consent screen roundtrip.
	c.SetCookie(oauthStateCookieName, state, 600, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code for tokens, finds or creates the user and redirects to the frontend with the access token.
// @Tags oauth
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	// Prefer the signed ID token; fall back to the userinfo endpoint when the
	// response carries none.
	userInfo, err := h.fetchUserInfo(c, oauth2Token)
	if err != nil {
		logger.Error("Failed to obtain Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user info from Google"})
		return
	}

	user, err := h.userService.FindOrCreateFromGoogle(ctx, userInfo)
	if err != nil {
		logger.Error("Failed to find or create user from Google profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in with Google"})
		return
	}

	accessToken, _, err := h.auth.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens after Google login", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	redirectURL := h.cfg.FrontendBaseURL + "/auth/callback#token=" + url.QueryEscape(accessToken)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

func (h *GoogleOAuthHandler) fetchUserInfo(c *gin.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	ctx := c.Request.Context()

	if idTokenString, ok := token.Extra("id_token").(string); ok && idTokenString != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err == nil {
			return googleUserInfoFromIDToken(payload), nil
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Google ID token validation failed, falling back to userinfo endpoint", slog.String("error", err.Error()))
	}

	return h.googleOAuthService.GetUserInfo(ctx, token)
}

// googleUserInfoFromIDToken maps the verified ID token claims onto the
// userinfo shape so both paths feed FindOrCreateFromGoogle identically.
func googleUserInfoFromIDToken(payload *idtoken.Payload) *domain.GoogleUserInfo {
	info := &domain.GoogleUserInfo{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}
	return info
}
