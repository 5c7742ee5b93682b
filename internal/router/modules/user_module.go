package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chinmayajanata/backend/internal/container"
	handlers "github.com/chinmayajanata/backend/internal/interface/http"
	"github.com/chinmayajanata/backend/internal/interface/middleware"
	"github.com/chinmayajanata/backend/pkg/helpers"
)

// UserModule wires user HTTP handlers and auth middleware into routes.
// Public: register, login, refresh, existence check.
// Protected: logout, profile, update, center join, avatar upload, plus the
// admin-gated verification, point, and removal endpoints.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.GET("/users/:username/exists", m.Handler.Exists)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	cfg := container.GetConfig()
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), cfg.RateLimitRequests, cfg.RateLimitWindow, middleware.KeyByUsername(), nil),
	)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
		auth.PUT("/profile", m.Handler.Update)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
		auth.POST("/profile/center", m.Handler.JoinCenter)

		auth.GET("/users/:username", m.Handler.Profile)
		auth.GET("/users/:username/events", m.Handler.Events)

		// Admin-gated; the service layer enforces the principal.
		auth.POST("/users/:username/verify", m.Handler.Verify)
		auth.POST("/users/:username/points", m.Handler.AwardPoints)
		auth.DELETE("/users/:username", m.Handler.Remove)
	}
}
