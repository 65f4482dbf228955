package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/akarakus27/weather-telegram-bot/internal/api/http"
	"github.com/akarakus27/weather-telegram-bot/internal/config"
	"github.com/akarakus27/weather-telegram-bot/internal/notify"
	"github.com/akarakus27/weather-telegram-bot/internal/runner"
	"github.com/akarakus27/weather-telegram-bot/internal/scheduler"
	"github.com/akarakus27/weather-telegram-bot/internal/store"
	"github.com/akarakus27/weather-telegram-bot/internal/weather"
	"github.com/akarakus27/weather-telegram-bot/internal/weather/providers"
)

func main() {
	daemon := flag.Bool("daemon", false, "keep running and send the report daily at REPORT_AT instead of running once")
	flag.Parse()

	zl, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	log := zl.Sugar()
	defer func() { _ = zl.Sync() }()

	// Load configuration. This must fail before any network activity.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	primary := providers.NewOpenWeatherProvider(httpClient, cfg.WeatherAPIKey, log)
	fallback := providers.NewOpenMeteoProvider(httpClient, log)
	service := weather.NewService(primary, fallback, log)

	notifier := notify.NewTelegram(httpClient, cfg.BotToken, cfg.ChatID, log)

	// Keep roughly a month of nightly runs around for the daemon status API.
	memStore := store.NewMemoryStore(31, 31*24*time.Hour)

	run := runner.New(service, notifier, memStore, weather.DefaultLocations, log)

	if !*daemon {
		runOnce(run, log)
		return
	}

	runDaemon(cfg, run, memStore, log)
}

func runOnce(run *runner.Runner, log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

func runDaemon(cfg *config.AppConfig, run *runner.Runner, memStore *store.MemoryStore, log *zap.SugaredLogger) {
	tz, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		tz = time.FixedZone("UTC+3", 3*3600)
	}

	sched := scheduler.New(run, cfg.ReportAt, tz, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-telegram-bot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-telegram-bot",
		})
	})

	httpapi.RegisterRoutes(app, memStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	log.Infow("daemon started", "port", cfg.Port, "reportAt", cfg.ReportAt)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
