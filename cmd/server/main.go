package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Simplextsd/grow-aura-engage/internal/backend"
	"github.com/Simplextsd/grow-aura-engage/internal/booking"
	"github.com/Simplextsd/grow-aura-engage/internal/config"
	"github.com/Simplextsd/grow-aura-engage/internal/database"
	"github.com/Simplextsd/grow-aura-engage/internal/handler"
	"github.com/Simplextsd/grow-aura-engage/internal/middleware"
	"github.com/Simplextsd/grow-aura-engage/internal/queue"
	"github.com/Simplextsd/grow-aura-engage/internal/repository"
	"github.com/Simplextsd/grow-aura-engage/internal/router"
	"github.com/Simplextsd/grow-aura-engage/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load() // Load environment config

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Params{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}
	submissions := repository.NewSubmissionRepo(db)

	rdb := config.NewRedisClient(config.LoadRedisConfig()) // nil when Redis is unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	publisher := service.NewPublisher(cfg.AMQPURL)
	drafts := booking.NewRegistry(
		backend.NewClient(cfg.BackendURL, cfg.BackendTimeout),
		booking.WithExchangeRate(cfg.ExchangeRate),
		booking.WithOnSubmitted(publisher.OnSubmitted),
	)

	go func() {
		if err := queue.StartSubmissionConsumer(ctx, cfg.AMQPURL, submissions); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("booking-consumer: stopped: %v", err)
		}
	}()
	go sweepDrafts(ctx, drafts, cfg.SweepInterval, cfg.DraftIdleTTL)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	router.RegisterRoutes(e, drafts.Len)
	router.RegisterDesk(e, router.Desk{
		Drafts:          handler.NewDraftHandler(drafts),
		Submissions:     handler.NewSubmissionHandler(submissions),
		JWTSecret:       cfg.JWTSecret,
		PNRLimit:        middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		SubmissionCache: middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := publisher.Wait(shutdownCtx); err != nil {
		log.Printf("shutdown: pending booking events: %v", err)
	}
}

// sweepDrafts discards drafts nobody has touched for idle, every interval.
func sweepDrafts(ctx context.Context, drafts *booking.Registry, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ids := drafts.Sweep(idle); len(ids) > 0 {
				log.Printf("drafts: swept %d idle draft(s)", len(ids))
			}
		}
	}
}
