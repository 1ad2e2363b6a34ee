package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectoinject/ectocontainer"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/Ramsey-B/protea/config"
	actionrepo "github.com/Ramsey-B/protea/internal/repositories/action"
	decisionrepo "github.com/Ramsey-B/protea/internal/repositories/decision"
	interventionrepo "github.com/Ramsey-B/protea/internal/repositories/intervention"
	outcomerepo "github.com/Ramsey-B/protea/internal/repositories/outcome"
	"github.com/Ramsey-B/protea/pkg/database"
	"github.com/Ramsey-B/protea/pkg/kafka"
	"github.com/Ramsey-B/protea/pkg/middleware"
	"github.com/Ramsey-B/protea/pkg/notify"
	"github.com/Ramsey-B/protea/pkg/redis"
	actionroutes "github.com/Ramsey-B/protea/pkg/routes/action"
	chainsroutes "github.com/Ramsey-B/protea/pkg/routes/chains"
	dashboardroutes "github.com/Ramsey-B/protea/pkg/routes/dashboard"
	decisionroutes "github.com/Ramsey-B/protea/pkg/routes/decision"
	exportroutes "github.com/Ramsey-B/protea/pkg/routes/export"
	"github.com/Ramsey-B/protea/pkg/routes/health"
	interventionroutes "github.com/Ramsey-B/protea/pkg/routes/intervention"
	lookupsroutes "github.com/Ramsey-B/protea/pkg/routes/lookups"
	outcomeroutes "github.com/Ramsey-B/protea/pkg/routes/outcome"
	"github.com/Ramsey-B/protea/pkg/snapshot"
	"github.com/Ramsey-B/protea/pkg/startup"
	"github.com/Ramsey-B/protea/pkg/tracing"
	"github.com/Ramsey-B/protea/pkg/tracing/exporters"
)

const version = "1.0.0"

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "protea",
		Short:         "Intervention tracking service for education programmes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())

	// Running the binary with no subcommand starts the server.
	if len(os.Args) == 1 {
		root.SetArgs([]string{"serve"})
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, snapshot refresher and CDC consumers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if err := run(cfg, logger); err != nil {
				logger.WithError(err).Error("service exited with error")
				return err
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			sqlxDB, err := connectDatabase(cfg)
			if err != nil {
				logger.WithError(err).Error("failed to connect to database")
				return err
			}
			defer sqlxDB.Close()

			if err := runMigrations(cfg, sqlxDB, logger); err != nil {
				logger.WithError(err).Error("failed to run migrations")
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func loadConfig() (config.Config, ectologger.Logger, error) {
	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return cfg, nil, err
	}

	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return cfg, nil, err
	}

	return cfg, zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}

func run(cfg config.Config, logger ectologger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
			Endpoint: cfg.TracingOTLPEndpoint,
			Protocol: cfg.TracingOTLPProtocol,
			Insecure: cfg.TracingOTLPInsecure,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		shutdown := tracing.InitProvider(cfg.AppName, exporter)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	sqlxDB, err := connectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db := database.NewDatabaseInstance(sqlxDB, logger)
	defer db.Close()

	if err := runMigrations(cfg, sqlxDB, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var redisClient *redis.Client
	var statsCache *redis.StatsCache
	if cfg.RedisEnabled {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		statsCache = redis.NewStatsCache(redisClient, cfg.StatsCacheTTL, logger)
	}

	// Repositories
	interventions := interventionrepo.NewRepository(db, logger)
	decisions := decisionrepo.NewRepository(db, logger)
	actions := actionrepo.NewRepository(db, logger)
	outcomes := outcomerepo.NewRepository(db, logger)

	// Snapshot pipeline
	loader := snapshot.NewLoader(interventions, decisions, actions, outcomes, logger)
	store := snapshot.NewStore()
	refresher := snapshot.NewRefresher(loader, store, snapshot.RefresherConfig{
		Debounce:    cfg.RefreshDebounce,
		MaxInterval: cfg.RefreshMaxInterval,
	}, logger)
	if statsCache != nil {
		refresher.OnRefresh(func(snap *snapshot.Snapshot) {
			invCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			statsCache.Invalidate(invCtx)
		})
	}

	var producer *kafka.Producer
	if cfg.KafkaProducerEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaOutputTopic,
		}, logger)
		defer producer.Close()
	}
	notifier := notify.NewNotifier(refresher, producer, logger)

	// Dependency container for the route handlers
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return fmt.Errorf("failed to create DI container: %w", err)
	}
	registrations := []error{
		ectoinject.RegisterInstance[*interventionrepo.Repository](container, interventions),
		ectoinject.RegisterInstance[*decisionrepo.Repository](container, decisions),
		ectoinject.RegisterInstance[*actionrepo.Repository](container, actions),
		ectoinject.RegisterInstance[*outcomerepo.Repository](container, outcomes),
		ectoinject.RegisterInstance[*snapshot.Store](container, store),
		ectoinject.RegisterInstance[*notify.Notifier](container, notifier),
	}
	if statsCache != nil {
		registrations = append(registrations,
			ectoinject.RegisterInstance[*redis.StatsCache](container, statsCache))
	}
	for _, regErr := range registrations {
		if regErr != nil {
			return fmt.Errorf("failed to register dependency: %w", regErr)
		}
	}

	e := newServer(cfg, logger, container)

	checker := health.NewChecker(db, redisClient, store, version)
	checker.RegisterRoutes(e)

	// Background dependencies: snapshot refresher, then the CDC consumers
	// that feed it.
	orchestrator := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	orchestrator.AddDependency(startup.Func{
		Name: "snapshot-refresher",
		StartFunc: func(ctx context.Context) error {
			if err := refresher.Start(ctx); err != nil {
				// The service still starts; derived-model routes return 503
				// until a refresh succeeds.
				logger.WithError(err).Error("initial dataset load failed")
			}
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			refresher.Stop()
			return nil
		},
	})
	if cfg.KafkaConsumerEnabled {
		handler := func(ctx context.Context, table string, payload *kafka.DebeziumPayload) error {
			logger.WithContext(ctx).WithFields(map[string]any{
				"table": table,
				"op":    payload.Op,
				"id":    payload.RecordID(),
			}).Debug("change event received")
			refresher.Trigger()
			return nil
		}
		topics := []string{
			cfg.KafkaInterventionsTopic,
			cfg.KafkaDecisionsTopic,
			cfg.KafkaActionsTopic,
			cfg.KafkaOutcomesTopic,
		}
		for _, topic := range topics {
			consumer := kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers:       cfg.KafkaBrokers,
				Topic:         topic,
				ConsumerGroup: cfg.KafkaConsumerGroup,
			}, logger, handler)
			orchestrator.AddDependency(startup.Func{
				Name:  "cdc-consumer:" + topic,
				Needs: []string{"snapshot-refresher"},
				StartFunc: func(ctx context.Context) error {
					return consumer.Start(ctx)
				},
				StopFunc: func(ctx context.Context) error {
					return consumer.Stop()
				},
			})
		}
	}

	if err := orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("failed to start background dependencies: %w", err)
	}
	checker.SetReady(true)

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	logger.Infof("%s listening on port %d", cfg.AppName, cfg.Port)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		return fmt.Errorf("server stopped: %w", err)
	}

	checker.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}

	return orchestrator.Stop(shutdownCtx)
}

func connectDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName,
		cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode)

	db, err := sqlx.Connect(cfg.DatabaseDriver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	db.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	return db, nil
}

func runMigrations(cfg config.Config, db *sqlx.DB, logger ectologger.Logger) error {
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	ms := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})

	return ms.Migrate(cfg.DatabaseName, driver)
}

func newServer(cfg config.Config, logger ectologger.Logger, container ectocontainer.DIContainer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx, err := ectoinject.SetActiveContainer(c.Request().Context(), container.GetContainerID())
			if err != nil {
				return err
			}
			c.SetRequest(c.Request().WithContext(reqCtx))
			return next(c)
		}
	})
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.HTTPErrorHandler = middleware.Error(logger)

	api := e.Group("/api/v1")
	interventionroutes.Register(api.Group("/interventions"))
	decisionroutes.Register(api.Group("/decisions"))
	actionroutes.Register(api.Group("/actions"))
	outcomeroutes.Register(api.Group("/outcomes"))
	dashboardroutes.Register(api.Group("/dashboard"))
	chainsroutes.Register(api.Group("/chains"))
	exportroutes.Register(api.Group("/export"))
	lookupsroutes.Register(api.Group("/lookups"))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
