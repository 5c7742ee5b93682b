package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/chinmayajanata/backend/internal/container"
	handlers "github.com/chinmayajanata/backend/internal/interface/http"
	"github.com/chinmayajanata/backend/internal/interface/middleware"
	"github.com/chinmayajanata/backend/pkg/helpers"
)

// EventModule exposes event reads publicly; attendance, endorsement, and
// lifecycle operations require a session.
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	readLimiter := middleware.RateLimit(container.GetRedis(), cfg.RateLimitRequests, cfg.RateLimitWindow, middleware.KeyByIP(), nil)

	rg.GET("/events/:id", readLimiter, m.Handler.Get)
	rg.GET("/events/:id/attendees", readLimiter, m.Handler.Attendees)
	rg.GET("/centers/:id/events", readLimiter, m.Handler.ByCenter)
	rg.GET("/search/events", readLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitRequests, cfg.RateLimitWindow, middleware.KeyByUsername(), nil))
	{
		auth.POST("/events", m.Handler.Create)
		auth.PUT("/events/:id", m.Handler.Update)
		auth.DELETE("/events/:id", m.Handler.Remove)
		auth.POST("/events/:id/attendees", m.Handler.Attend)
		auth.DELETE("/events/:id/attendees", m.Handler.Unattend)
		auth.POST("/events/:id/endorsers", m.Handler.Endorse)
	}
}
