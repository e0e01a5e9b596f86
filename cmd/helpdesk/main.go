package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/helpdesk/internal/app"
	"github.com/Skotchmaster/helpdesk/internal/config"
	"github.com/Skotchmaster/helpdesk/internal/migrate"
	"github.com/Skotchmaster/helpdesk/internal/search"
	"github.com/Skotchmaster/helpdesk/internal/service"
	pkgdb "github.com/Skotchmaster/helpdesk/pkg/db"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
	"github.com/Skotchmaster/helpdesk/pkg/tokens"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := migrate.AutoMigrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	if err := migrate.Seed(ctx, db, migrate.Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		AdminName:     "Administrador",
	}); err != nil {
		cancel()
		log.Fatalf("seed: %v", err)
	}

	var indexer search.TicketIndexer = search.Nop{}
	if cfg.Elastic.URL != "" {
		es, err := search.NewClient(ctx, search.ClientConfig{
			URL:      cfg.Elastic.URL,
			User:     cfg.Elastic.User,
			Password: cfg.Elastic.Password,
		})
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
		} else {
			indexer = &search.ElasticIndexer{Client: es, Index: cfg.Elastic.Index}
		}
	}
	cancel()

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	}

	a := app.New(app.Options{
		DB: db,
		Tokens: &tokens.Issuer{
			Key:      cfg.JWT.Key,
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
			TTL:      cfg.JWT.AccessTTL,
		},
		RefreshTTL:       cfg.JWT.RefreshTTL,
		SettingsCacheTTL: cfg.SettingsCacheTTL,
		Events:           publisher,
		Indexer:          indexer,
		Logger:           logger,
		CORSOrigins:      cfg.CORSOrigins,
	})

	sweeper, err := service.NewSessionSweeper(a.Repo, cfg.SessionSweepSchedule, cfg.SessionRetention, logger)
	if err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	sweeper.Start()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           a.Echo,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("helpdesk listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	sweeper.Stop(shutdownCtx)
	if err := publisher.Close(); err != nil {
		logger.Warn("event_publisher_close_error", "error", err)
	}
	pkgdb.Close(db)

	logger.Info("helpdesk stopped")
}
