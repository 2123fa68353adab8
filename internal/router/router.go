package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/pizza-order-service/internal/config"
	"github.com/iliyamo/pizza-order-service/internal/handler"
	"github.com/iliyamo/pizza-order-service/internal/middleware"
	"github.com/iliyamo/pizza-order-service/internal/repository"
)

// RegisterRoutes registers the routes that do not belong to an API
// area: the health check, the welcome root, the docs listing and the
// JSON 404 for everything unmatched.
func RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Welcome)
	e.GET("/api/docs", handler.Docs(cfg))
	e.RouteNotFound("/*", handler.NotFound)
}

// RegisterAuth registers the auth endpoints under /api/auth. Register
// and login are open; logout and user update require a live session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, secret string, sessions *repository.SessionRepo) {
	g := e.Group("/api/auth")
	g.POST("", a.Register)
	g.PUT("", a.Login)

	protected := g.Group("")
	protected.Use(middleware.JWTAuth(secret, sessions))
	protected.DELETE("", a.Logout)
	protected.PUT("/:userId", a.UpdateUser)
}

// RegisterFranchise registers franchise and store management under
// /api/franchise. The listing is public but picks up an identity when
// one is presented, so admins see the enriched shape.
func RegisterFranchise(e *echo.Echo, f *handler.FranchiseHandler, secret string, sessions *repository.SessionRepo,
	cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/api/franchise")
	g.GET("", f.List, middleware.ResponseCache(cacheCfg, rdb), middleware.OptionalJWTAuth(secret, sessions))

	protected := g.Group("")
	protected.Use(middleware.JWTAuth(secret, sessions))
	protected.GET("/:userId", f.ListForUser)
	protected.POST("", f.Create)
	protected.DELETE("/:franchiseId", f.Delete)
	protected.POST("/:franchiseId/store", f.CreateStore)
	protected.DELETE("/:franchiseId/store/:storeId", f.DeleteStore)
}

// RegisterOrder registers the menu and order endpoints under
// /api/order. The menu is public and cacheable; history and creation
// require a live session.
func RegisterOrder(e *echo.Echo, o *handler.OrderHandler, secret string, sessions *repository.SessionRepo,
	cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/api/order")
	g.GET("/menu", o.Menu, middleware.ResponseCache(cacheCfg, rdb))

	protected := g.Group("")
	protected.Use(middleware.JWTAuth(secret, sessions))
	protected.PUT("/menu", o.AddMenuItem)
	protected.GET("", o.History)
	protected.POST("", o.Create)
}
