// Package router registers the HTTP routes of the membership API.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/config"
	"github.com/iliyamo/fanclub-membership/internal/handler"
	"github.com/iliyamo/fanclub-membership/internal/metrics"
	"github.com/iliyamo/fanclub-membership/internal/middleware"
)

// Deps is everything the routes need.  Redis may be nil, in which case the
// response cache and the login rate limiter pass requests through.
type Deps struct {
	Config        config.Config
	DB            handler.Pinger
	Redis         *redis.Client
	Browse        *handler.BrowseHandler
	Customers     *handler.CustomerHandler
	Subscriptions *handler.SubscriptionHandler
	Log           zerolog.Logger
}

// New builds the echo instance with global middleware and all routes.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.MemberToken(d.Config.MemberTokenSecret))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metrics.Middleware())

	RegisterRoutes(e, d.DB)
	RegisterPublic(e, d)
	RegisterMembership(e, d)
	return e
}

// RegisterRoutes registers the operational endpoints.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", metrics.Handler())
}

// RegisterPublic registers the browse endpoints.  Listings are read-mostly
// and go through the response cache.
func RegisterPublic(e *echo.Echo, d Deps) {
	cache := middleware.NewRedisCache(d.Config.Cache, d.Redis, d.Log)

	g := e.Group("/v1")
	g.GET("/artists", d.Browse.ListArtists, cache)
	g.GET("/artists/:id", d.Browse.GetArtist)
	g.GET("/artists/:id/events", d.Browse.ListArtistEvents, cache)
	g.GET("/event-types", d.Browse.ListEventTypes, cache)
}

// RegisterMembership registers login, customer and subscription routes.
// Login is rate limited; the member token it returns only identifies the
// caller in logs and limiter keys.
func RegisterMembership(e *echo.Echo, d Deps) {
	limiter := middleware.NewTokenBucket(d.Config.RateLimit, d.Redis, d.Log)

	g := e.Group("/v1")
	g.POST("/login", d.Customers.Login, limiter)

	g.POST("/customers", d.Customers.AddCustomer)
	g.GET("/customers/:id", d.Customers.GetCustomer)
	g.PUT("/customers/:id", d.Customers.EditCustomer)
	g.GET("/customers/:id/join", d.Customers.JoinForm)
	g.POST("/customers/:id/subscriptions", d.Subscriptions.Join)

	g.GET("/subscriptions/:id", d.Subscriptions.Preview)
	g.DELETE("/subscriptions/:id", d.Subscriptions.Cancel)
}
