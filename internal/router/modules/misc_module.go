package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chinmayajanata/backend/internal/container"
	"github.com/chinmayajanata/backend/internal/interface/middleware"
	"github.com/chinmayajanata/backend/pkg/response"
)

// MiscModule hosts the health probe and a small easter egg.
type MiscModule struct{}

func NewMiscModule() *MiscModule { return &MiscModule{} }

func (m *MiscModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	rl := middleware.RateLimit(container.GetRedis(), cfg.RateLimitRequests, cfg.RateLimitWindow, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/healthz", func(c *gin.Context) {
		response.Success[any](c, http.StatusOK, map[string]any{"status": "ok"}, "healthy", nil)
	})

	// RFC 2324. This server is unable to brew coffee.
	rg.POST("/brew-coffee", rl, func(c *gin.Context) {
		response.Fail(c, http.StatusTeapot, "I'm a teapot", nil)
	})
}
