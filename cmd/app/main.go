package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry/cmd"
	apihttp "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/kafka"
	"laundry/internal/adapters/out/postgres/batchrepo"
	"laundry/internal/adapters/out/postgres/branchrepo"
	"laundry/internal/adapters/out/postgres/driverrepo"
	"laundry/internal/adapters/out/postgres/feerulerepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/redis"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := newLogger(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(configs.DSN())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	integrations, closeIntegrations, err := connectIntegrations(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error connecting integrations: %v", err)
	}
	defer closeIntegrations()

	app, err := cmd.NewCompositionRoot(configs, db, integrations, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err = startWebServer(ctx, app, configs.HTTPPort, logger); err != nil {
		logger.Error("Web server stopped with error", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func openDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&branchrepo.BranchDTO{},
		&driverrepo.DriverDTO{},
		&batchrepo.BatchDTO{},
		&feerulerepo.FeeRuleDTO{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// connectIntegrations opens the optional Redis lock and Kafka publisher. The
// returned func closes whatever was opened.
func connectIntegrations(ctx context.Context, configs cmd.Config, logger *slog.Logger) (cmd.Integrations, func(), error) {
	var integrations cmd.Integrations
	var closers []func() error

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Error("Failed to close integration", "error", err)
			}
		}
	}

	if configs.RedisURL != "" {
		client, err := redis.Connect(ctx, configs.RedisURL)
		if err != nil {
			return cmd.Integrations{}, nil, err
		}
		closers = append(closers, client.Close)
		integrations.Locker = redis.NewOrderLocker(client, configs.TransitionLockTTL)
		logger.Info("Transition locking enabled")
	}

	if configs.KafkaBrokers != "" {
		publisher := kafka.NewStatusChangedPublisher(kafka.NewWriter(configs.KafkaBrokers, configs.KafkaOrderChangedTopic))
		closers = append(closers, publisher.Close)
		integrations.Publisher = publisher
		logger.Info("Status change events enabled", "topic", configs.KafkaOrderChangedTopic)
	}

	return integrations, closeAll, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	doc, err := apihttp.LoadSpec(ctx)
	if err != nil {
		return err
	}

	server := apihttp.NewServer(app.HTTPHandlers(), nil)
	e, err := apihttp.NewRouter(server, doc, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Web server started", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down web server")
	return e.Shutdown(shutdownCtx)
}
