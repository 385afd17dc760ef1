package http

import (
	"log/slog"

	"github.com/geocoder89/usersvc/internal/app"
	"github.com/geocoder89/usersvc/internal/config"
	"github.com/geocoder89/usersvc/internal/http/handlers"
	"github.com/geocoder89/usersvc/internal/http/middlewares"
	"github.com/geocoder89/usersvc/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, state *app.State, prom *observability.Prom, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	// probes and metrics stay out of body logging
	h := handlers.NewHealthHandler(state)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(prom.Handler()))

	errs := handlers.NewErrorResponder(log, prom)
	users := handlers.NewUsersHandler(state)

	api := r.Group("/")
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	api.Use(middlewares.BodyLogger(log))

	api.POST("/user", errs.Handle(users.CreateUser))
	api.GET("/user/:id", errs.Handle(users.GetUserByID))
	api.DELETE("/user/:id", errs.Handle(users.DeleteUserByID))

	return r
}
