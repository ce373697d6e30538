package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/sm227/TravelLight-sub000/internal/config"
    "github.com/sm227/TravelLight-sub000/internal/database"
    "github.com/sm227/TravelLight-sub000/internal/handler"
    "github.com/sm227/TravelLight-sub000/internal/queue"
    "github.com/sm227/TravelLight-sub000/internal/repository"
    "github.com/sm227/TravelLight-sub000/internal/router"
    "github.com/sm227/TravelLight-sub000/internal/service"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set the environment directly
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }

    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable: rate limiting and response caching disabled")
    }

    // Background consumer mirroring storage events into logs/storage.log.
    go func() {
        if err := queue.StartStorageConsumer(); err != nil {
            log.Printf("storage consumer stopped: %v", err)
        }
    }()

    reservationRepo := repository.NewReservationRepo(db)
    recordRepo := repository.NewStorageRecordRepo(db)
    locationRepo := repository.NewLocationRepo(db)
    store := repository.NewStorageStore(db, reservationRepo, recordRepo)
    publisher := queue.NewPublisher()

    checkIn := service.NewCheckInService(reservationRepo, store, publisher)
    checkOut := service.NewCheckOutService(recordRepo, store, reservationRepo, publisher)
    capacity := service.NewCapacityService(locationRepo, recordRepo)

    storageHandler := handler.NewStorageHandler(checkIn, checkOut)
    locationHandler := handler.NewLocationHandler(capacity, reservationRepo, recordRepo)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterStorage(e, storageHandler, locationHandler, cfg.JWTSecret, rdb,
        config.LoadCacheConfig(), config.LoadRateLimitConfig())

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
