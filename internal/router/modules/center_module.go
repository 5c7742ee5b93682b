package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/chinmayajanata/backend/internal/container"
	handlers "github.com/chinmayajanata/backend/internal/interface/http"
	"github.com/chinmayajanata/backend/internal/interface/middleware"
	"github.com/chinmayajanata/backend/pkg/helpers"
)

// CenterModule exposes center listing publicly and gates mutation behind
// authentication; creation, verification and removal are admin only at the
// service layer.
type CenterModule struct {
	Handler *handlers.CenterHandler
	JWT     *helpers.JWTManager
}

func NewCenterModule(h *handlers.CenterHandler, jwt *helpers.JWTManager) *CenterModule {
	return &CenterModule{Handler: h, JWT: jwt}
}

func (m *CenterModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	listLimiter := middleware.RateLimit(container.GetRedis(), cfg.RateLimitRequests, cfg.RateLimitWindow, middleware.KeyByIP(), nil)

	rg.GET("/centers", listLimiter, m.Handler.List)
	rg.GET("/centers/:id", listLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/centers", m.Handler.Create)
		auth.PUT("/centers/:id", m.Handler.Update)
		auth.POST("/centers/:id/verify", m.Handler.Verify)
		auth.DELETE("/centers/:id", m.Handler.Remove)
	}
}
