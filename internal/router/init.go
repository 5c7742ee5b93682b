package router

import (
	app "github.com/chinmayajanata/backend/internal/application"
	"github.com/chinmayajanata/backend/internal/container"
	"github.com/chinmayajanata/backend/internal/domain/identity"
	pginfra "github.com/chinmayajanata/backend/internal/infrastructure/postgres"
	handlers "github.com/chinmayajanata/backend/internal/interface/http"
	"github.com/chinmayajanata/backend/internal/router/modules"
)

// InitModules builds every repository, service, and handler from the
// container singletons and registers the feature modules. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	centers := pginfra.NewCenterRepository(pool)
	events := pginfra.NewEventRepository(pool)

	allocator := identity.New()

	authority := app.NewAuthority(cfg.AdminName, users, centers, logger)

	userSvc := &app.UserService{
		Repo:      users,
		Centers:   centers,
		Authority: authority,
		JWT:       container.GetJWT(),
		Redis:     container.GetRedis(),
		Logger:    logger,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		Pub:       container.GetRabbitPub(),
		MailOn:    cfg.MailSendEnabled,
	}
	centerSvc := &app.CenterService{
		Repo:      centers,
		Authority: authority,
		Allocator: allocator,
		Logger:    logger,
	}
	eventSvc := &app.EventService{
		Repo:      events,
		Users:     users,
		Centers:   centers,
		Allocator: allocator,
		Logger:    logger,
		ES:        container.GetES(),
		ESIndex:   cfg.ESEventsIndex,
	}

	userHandler := handlers.NewUserHandler(userSvc, authority, logger, cfg.CookieDomain, cfg.CookieSecure)
	centerHandler := handlers.NewCenterHandler(centerSvc, logger)
	eventHandler := handlers.NewEventHandler(eventSvc, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewCenterModule(centerHandler, container.GetJWT()))
	r.Add(modules.NewEventModule(eventHandler, container.GetJWT()))
	r.Add(modules.NewMiscModule())
}
