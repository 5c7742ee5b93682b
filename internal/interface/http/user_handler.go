package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/chinmayajanata/backend/internal/application"
	repo "github.com/chinmayajanata/backend/internal/domain/repository"
	"github.com/chinmayajanata/backend/pkg/helpers"
	"github.com/chinmayajanata/backend/pkg/response"
	"github.com/chinmayajanata/backend/pkg/validation"
)

type UserHandler struct {
	Svc       *app.UserService
	Authority *app.Authority
	Logger    *logrus.Logger
	Cookies   *helpers.Manager
}

func NewUserHandler(svc *app.UserService, authority *app.Authority, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Authority: authority, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyUserRequest struct {
	Level int `json:"level" binding:"required"`
}

type joinCenterRequest struct {
	CenterID int64 `json:"center_id" binding:"required"`
}

type awardPointsRequest struct {
	Amount int64 `json:"amount"`
}

type updateUserRequest struct {
	Active *bool `json:"active"`
}

func (h *UserHandler) caller(c *gin.Context) app.CallerContext {
	return app.CallerContext{Principal: c.GetString("username")}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			response.Fail(c, http.StatusConflict, "username already taken", nil)
			return
		}
		response.Fail(c, statusFor(err), "registration failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, u, "registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		response.Fail(c, statusFor(err), "login failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, u, "login successful", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Fail(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *UserHandler) Logout(c *gin.Context) {
	username := c.GetString("username")
	if err := h.Svc.Deauthenticate(c.Request.Context(), username); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("username", username).Warn("logout cleanup failed")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// Exists answers username availability checks during signup.
func (h *UserHandler) Exists(c *gin.Context) {
	username := c.Param("username")
	ok, err := h.Svc.Exists(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, statusFor(err), "lookup failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"username": username, "exists": ok}, "user existence", nil)
}

func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		username = c.GetString("username")
	}
	u, err := h.Svc.Profile(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, statusFor(err), "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateRegistration(c.Request.Context(), c.GetString("username"), req.Active)
	if err != nil {
		response.Fail(c, statusFor(err), "failed to update user", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

// Verify raises or lowers a user's verification level. Admin only.
func (h *UserHandler) Verify(c *gin.Context) {
	var req verifyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	username := c.Param("username")
	if err := h.Authority.VerifyUser(c.Request.Context(), h.caller(c), username, req.Level); err != nil {
		response.Fail(c, statusFor(err), "verification failed", nil)
		return
	}
	h.Svc.NotifyVerified(c.Request.Context(), username, req.Level)
	response.Success[any](c, http.StatusOK, map[string]any{"username": username, "level": req.Level}, "user verified", nil)
}

func (h *UserHandler) Remove(c *gin.Context) {
	username := c.Param("username")
	if err := h.Svc.Remove(c.Request.Context(), h.caller(c), username); err != nil {
		response.Fail(c, statusFor(err), "removal failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"username": username, "removed": true}, "user removed", nil)
}

// Events lists the ids of events the user attends.
func (h *UserHandler) Events(c *gin.Context) {
	username := c.Param("username")
	ids, err := h.Svc.EventIDs(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, statusFor(err), "user not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"username": username, "events": ids}, "attended events", nil)
}

func (h *UserHandler) JoinCenter(c *gin.Context) {
	var req joinCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	username := c.GetString("username")
	if err := h.Svc.JoinCenter(c.Request.Context(), username, req.CenterID); err != nil {
		response.Fail(c, statusFor(err), "failed to join center", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"username": username, "center_id": req.CenterID}, "center joined", nil)
}

// AwardPoints grants seva points to a user. Admin only.
func (h *UserHandler) AwardPoints(c *gin.Context) {
	var req awardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Authority.Authorize(h.caller(c)); err != nil {
		response.Fail(c, statusFor(err), "not authorized", nil)
		return
	}
	username := c.Param("username")
	if err := h.Svc.AwardPoints(c.Request.Context(), username, req.Amount); err != nil {
		response.Fail(c, statusFor(err), "failed to award points", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"username": username, "amount": req.Amount}, "points awarded", nil)
}

// UploadAvatar accepts a multipart file and stores it in object storage.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	defer file.Close()

	username := c.GetString("username")
	url, err := h.Svc.UploadAvatar(c.Request.Context(), username, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.Fail(c, statusFor(err), "avatar upload failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"avatar_url": url}, "avatar uploaded", nil)
}
