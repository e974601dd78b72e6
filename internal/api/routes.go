package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/modle-app/modle/internal/config"
	"github.com/modle-app/modle/internal/game"
)

type (
	BuildInfo struct {
		Version   string `json:"version"`
		BuildTime string `json:"build_time"`
	}

	Dependencies struct {
		Game      *game.Service
		BuildInfo BuildInfo
		Logger    *slog.Logger
	}
)

func NewRouter(ctx context.Context, conf *config.API, deps Dependencies) http.Handler {
	e := echo.New()

	e.Use(middleware.RequestID())
	e.Use(loggingMiddleware(ctx, deps.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(conf.HTTP.RateLimit))))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.HTTP.CORS.AllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: conf.HTTP.ProcessTimeout,
	}))
	e.Use(middleware.Secure())

	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler(deps.Logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, deps.BuildInfo)
	})

	jwtProcessor := NewJWTProcessor(conf.HTTP.JWT, conf.HTTP.Cookie.AccessExpiresIn)
	cookiesProcessor := NewCookiesProcessor(conf.HTTP.Cookie)
	authMiddleware := AuthMiddleware(cookiesProcessor, jwtProcessor, deps.Logger)

	authHandler := NewAuthHandler(jwtProcessor, cookiesProcessor, deps.Logger)
	e.POST("/logout", authHandler.Logout)
	if conf.Dev {
		e.POST("/dev/token", authHandler.Token)
	}

	gameHandler := NewGameHandler(deps.Game, deps.Logger)
	securedGroup := e.Group("/game", authMiddleware)
	securedGroup.GET("/status", gameHandler.Status)
	securedGroup.GET("/puzzle", gameHandler.Puzzle)
	securedGroup.POST("/result", gameHandler.SubmitResult)

	return e
}

func loggingMiddleware(ctx context.Context, log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
				)
			} else {
				log.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	})
}
