package api

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sociopedia/server/docs"
	"github.com/sociopedia/server/internal/api/handler"
	"github.com/sociopedia/server/internal/api/middleware"
	"github.com/sociopedia/server/internal/core/ports"
)

const (
	defaultBodyLimit  = "30M"
	metricsNamespace  = "sociopedia"
	corpHeader        = "Cross-Origin-Resource-Policy"
	corpCrossOrigin   = "cross-origin"
	assetsRoutePrefix = "/assets"
)

// Dependencies carries everything the router wires together. Optional fields:
//   - Storage nil: multipart pictures are rejected; picturePath is still accepted.
//   - AssetsDir empty: /assets is not served.
//   - Limiter nil: /auth routes are not rate limited.
//   - Registerer/Gatherer nil: no request metrics and no /metrics endpoint.
type Dependencies struct {
	Auth    ports.AuthService
	Users   ports.UserService
	Posts   ports.PostService
	Tokens  ports.TokenVerifier
	Storage ports.FileStorage

	AssetsDir string
	Limiter   middleware.RateLimiter
	Pingers   map[string]handler.Pinger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	ExposePasswordHash bool
	BodyLimit          string
	CORSOrigins        []string

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.Secure())
	e.Use(crossOriginResourcePolicy)
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
	}))

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	if deps.Registerer != nil {
		mw, err := echoprometheus.MiddlewareConfig{
			Namespace:  metricsNamespace,
			Registerer: deps.Registerer,
		}.ToMiddleware()
		if err != nil {
			return nil, fmt.Errorf("prometheus middleware: %w", err)
		}
		e.Use(mw)
	}
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}

	if deps.AssetsDir != "" {
		e.Static(assetsRoutePrefix, deps.AssetsDir)
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Storage, deps.ExposePasswordHash)
	userHandler := handler.NewUserHandler(deps.Users)
	postHandler := handler.NewPostHandler(deps.Posts, deps.Storage)
	healthHandler := handler.NewHealthHandler(deps.Pingers)

	authRequired := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	auth := e.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, middleware.KeyByIP, deps.Log))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- User routes (identity required) ---
	users := e.Group("/users", authRequired)
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/friends", userHandler.Friends)
	users.PATCH("/:id/:friendId", userHandler.ToggleFriend, middleware.RequireSelf("id"))

	// --- Post routes (identity required) ---
	posts := e.Group("/posts", authRequired)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.Feed)
	posts.GET("/:userId/posts", postHandler.UserPosts)
	posts.PATCH("/:id/like", postHandler.ToggleLike)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// crossOriginResourcePolicy lets other origins embed /assets pictures.
func crossOriginResourcePolicy(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(corpHeader, corpCrossOrigin)
		return next(c)
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
