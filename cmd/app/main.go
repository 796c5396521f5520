package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripplanner/cmd/fx/config_fx"
	"tripplanner/cmd/fx/controllers_fx"
	"tripplanner/cmd/fx/db_fx"
	"tripplanner/cmd/fx/image_fx"
	"tripplanner/cmd/fx/memcache_fx"
	"tripplanner/cmd/fx/prompt_fx"
	"tripplanner/cmd/fx/session_fx"
	"tripplanner/internal/api"
	"tripplanner/internal/api/controllers"
	"tripplanner/internal/config"
	"tripplanner/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		prompt_fx.Module,
		session_fx.Module,
		image_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	itineraryController *controllers.ItineraryController,
	sessionController *controllers.SessionController,
	imageController *controllers.ImageController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	var limiter gin.HandlerFunc
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit()
	}

	api.RegisterRoutes(r, limiter, itineraryController, sessionController, imageController)

	return r
}
