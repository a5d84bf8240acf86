package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "batepapo-uol/internal/api/http"
	"batepapo-uol/internal/config"
	"batepapo-uol/internal/repository"
	"batepapo-uol/internal/service"
	"batepapo-uol/lib/logger/sl"
	"batepapo-uol/lib/logger/slogpretty"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URL))
	if err != nil {
		log.Error("failed to connect database", sl.Err(err))
		os.Exit(1)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Error("failed to ping database", sl.Err(err))
		os.Exit(1)
	}
	log.Info("database connection established")

	db := client.Database(cfg.Database.Name)

	participantRepo, err := repository.NewMongoParticipantRepository(ctx, db)
	if err != nil {
		log.Error("failed to ensure participant index", sl.Err(err))
		os.Exit(1)
	}
	messageRepo := repository.NewMongoMessageRepository(db)

	presenceService := service.NewPresenceService(
		participantRepo, messageRepo, log,
		cfg.Presence.LivenessWindow, cfg.Presence.SweepPeriod,
	)
	messageService := service.NewMessageService(messageRepo, participantRepo, log)

	participantController := httpapi.NewParticipantController(presenceService)
	messageController := httpapi.NewMessageController(messageService)

	router := httpapi.SetupRouter(participantController, messageController)

	// The sweeper outlives individual requests; it stops with the server.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go presenceService.Run(sweepCtx)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	go func() {
		log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server stopped", sl.Err(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	stopSweep()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", sl.Err(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error("failed to disconnect database", sl.Err(err))
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
