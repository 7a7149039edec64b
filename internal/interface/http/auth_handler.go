package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/config"
	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/pkg/helpers"
	"github.com/secondchance/marketplace/pkg/response"
	"github.com/secondchance/marketplace/pkg/validation"
)

const oauthStateTTL = 10 * time.Minute

type AuthHandler struct {
	Svc     *application.AuthService
	Google  *application.GoogleProvider
	Redis   *redis.Client
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
	Cfg     *config.Config
}

func NewAuthHandler(svc *application.AuthService, google *application.GoogleProvider, rdb *redis.Client, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Svc:     svc,
		Google:  google,
		Redis:   rdb,
		Logger:  logger,
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Cfg:     cfg,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(u), "account created, check your email to verify", nil)
}

func (h *AuthHandler) Verify(c *gin.Context) {
	u, err := h.Svc.Verify(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid or expired verification token", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "email verified", nil)
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.ResendVerification(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error[any](c, http.StatusBadRequest, "user already verified", nil)
	case err != nil:
		h.Logger.WithError(err).Error("resend verification failed")
		response.Error[any](c, http.StatusInternalServerError, "resend failed", nil)
	default:
		response.Success[any](c, http.StatusOK, map[string]any{"sent": true}, "verification email sent", nil)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	case errors.Is(err, application.ErrNotVerified):
		response.Error[any](c, http.StatusForbidden, "email not verified", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, toUserView(res.User), "login successful", map[string]any{"expires_at": res.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// Me echoes the identity the session middleware resolved.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"id":       c.GetString("userID"),
		"email":    c.GetString("userEmail"),
		"username": c.GetString("userName"),
		"role":     c.GetString("userRole"),
	}, "session", nil)
}

func (h *AuthHandler) IsAdmin(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"is_admin": c.GetString("userRole") == "admin",
	}, "role check", nil)
}

// GoogleRedirect starts the authorization-code flow. The state nonce lives
// in Redis so the callback can reject forged or replayed states.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	state, err := helpers.GenVerificationToken()
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not start login", nil)
		return
	}
	if err := h.Redis.Set(c.Request.Context(), helpers.KeyOAuthState(state), "1", oauthStateTTL).Err(); err != nil {
		h.Logger.WithError(err).Error("store oauth state failed")
		response.Error[any](c, http.StatusInternalServerError, "could not start login", nil)
		return
	}
	c.Redirect(http.StatusFound, h.Google.AuthCodeURL(state))
}

// GoogleCallback finishes the flow. Any failure sends the browser back to
// the login page; only success sets the session cookie.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	loginURL := h.Cfg.ClientURL + "/login"

	state := c.Query("state")
	if state == "" {
		c.Redirect(http.StatusFound, loginURL)
		return
	}
	deleted, err := h.Redis.Del(c.Request.Context(), helpers.KeyOAuthState(state)).Result()
	if err != nil || deleted == 0 {
		h.Logger.WithField("state", state).Warn("unknown oauth state")
		c.Redirect(http.StatusFound, loginURL)
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, loginURL)
		return
	}

	profile, err := h.Google.FetchProfile(c.Request.Context(), code)
	if err != nil {
		h.Logger.WithError(err).Warn("google profile fetch failed")
		c.Redirect(http.StatusFound, loginURL)
		return
	}

	res, err := h.Svc.LoginWithGoogle(c.Request.Context(), profile)
	if err != nil {
		h.Logger.WithError(err).Warn("google login failed")
		c.Redirect(http.StatusFound, loginURL)
		return
	}

	h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
	c.Redirect(http.StatusFound, h.Cfg.ClientURL)
}
