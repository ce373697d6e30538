package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/sm227/TravelLight-sub000/internal/config"
    "github.com/sm227/TravelLight-sub000/internal/handler"
    "github.com/sm227/TravelLight-sub000/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring systems to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterStorage registers the staff-facing storage lifecycle routes under
// /v1.  Every route requires a valid bearer token issued by the marketplace
// backend with a PARTNER or ADMIN role, and sits behind the Redis token
// bucket.  The read-only dashboard routes additionally get the short-TTL
// response cache; the check-in/check-out mutations are never cached.
func RegisterStorage(e *echo.Echo, sh *handler.StorageHandler, lh *handler.LocationHandler, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("PARTNER", "ADMIN"))
    g.Use(middleware.NewTokenBucket(rlCfg, rdb))

    // Custody transitions and the pre-confirmation lookup.
    g.POST("/storage/check-in", sh.HandleCheckIn)
    g.GET("/storage/:code", sh.HandleLookup)
    g.POST("/storage/check-out", sh.HandleCheckOut)

    // Read-only dashboard views, cached briefly.
    cached := g.Group("", middleware.NewResponseCache(cacheCfg, rdb))
    cached.GET("/locations/:id/capacity", lh.HandleCapacity)
    cached.GET("/locations/:id/reservations", lh.HandleReservations)
    cached.GET("/locations/:id/storage", lh.HandleActiveStorage)
}
