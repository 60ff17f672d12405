package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/urfave/cli/v2"

	apiserver "historian/internal/api"
	configapp "historian/internal/config/application"
	configdomain "historian/internal/config/domain"
	"historian/internal/infrastructure/database"
	"historian/internal/infrastructure/logger"
	"historian/internal/schema"
	statsapp "historian/internal/statistics/application"
	statsdomain "historian/internal/statistics/domain"
	statsinfra "historian/internal/statistics/infrastructure"
)

const shutdownTimeout = 5 * time.Second

// runtimeEnv is everything a command needs, built from flags and config.
type runtimeEnv struct {
	logger     *logger.Logger
	runtimeCfg *configapp.RuntimeConfig
	statsCfg   configdomain.StatisticsConfig
	registry   metrics.Registry
	requests   *statsinfra.RequestStatistics
	source     *statsinfra.RuntimeSource
	repo       *statsapp.SampleRepository
	closers    []func() error
}

func (e *runtimeEnv) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.logger.Warn("Failed to close resource", "err", err)
		}
	}
}

func flags(c *cli.Context) configapp.Flags {
	return configapp.Flags{
		Store:         c.String("store"),
		DBPath:        c.String("db"),
		RedisAddr:     c.String("redis-addr"),
		RedisPassword: c.String("redis-password"),
		RedisDB:       c.Int("redis-db"),
		NodeID:        c.String("node-id"),
		ConfigPath:    c.String("config"),
		APIKey:        c.String("api-key"),
		APIPort:       c.String("port"),
		LogLevel:      c.String("log-level"),
		LogFormat:     c.String("log-format"),
		LogOutput:     c.String("log-output"),
		DevMode:       c.Bool("dev"),
	}
}

func bootstrap(ctx context.Context, c *cli.Context, serving bool) (*runtimeEnv, error) {
	// .env must be loaded before the environment is read
	configapp.LoadEnvFile(logger.DefaultLogger(), c.String("env-file"))

	runtimeCfg := configapp.LoadRuntimeConfig(flags(c))

	appLogger := logger.NewLoggerWithConfig(logger.Config{
		Level:  runtimeCfg.LogLevel,
		Format: runtimeCfg.LogFormat,
		Output: runtimeCfg.LogOutput,
	})
	logger.SetDefaultLogger(appLogger)

	validate := runtimeCfg.Validate
	if serving {
		validate = runtimeCfg.ValidateServe
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger.Debug("Loading statistics configuration", "path", runtimeCfg.ConfigPath)
	statsCfg, err := configapp.LoadStatisticsFile(ctx, runtimeCfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	env := &runtimeEnv{
		logger:     appLogger,
		runtimeCfg: runtimeCfg,
		statsCfg:   statsCfg,
		registry:   metrics.NewRegistry(),
	}

	store, err := env.openStore(ctx)
	if err != nil {
		env.Close()
		return nil, err
	}

	env.repo = statsapp.NewSampleRepository(store)
	env.requests, err = statsinfra.NewRequestStatistics(env.registry, statsCfg.Cuts)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to register request statistics: %w", err)
	}
	env.source = statsinfra.NewRuntimeSource(statsinfra.NewProcessReader(), env.requests, nil)

	return env, nil
}

func (e *runtimeEnv) openStore(ctx context.Context) (statsdomain.Store, error) {
	switch e.runtimeCfg.Store {
	case configapp.StoreRedis:
		e.logger.Debug("Connecting to redis", "addr", e.runtimeCfg.RedisAddr, "db", e.runtimeCfg.RedisDB)
		client, err := database.ConnectRedis(ctx, database.RedisConfig{
			Addr:     e.runtimeCfg.RedisAddr,
			Password: e.runtimeCfg.RedisPassword,
			DB:       e.runtimeCfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, client.Close)
		return statsinfra.NewRedisStore(client, ""), nil

	default:
		e.logger.Debug("Connecting to database", "file", e.runtimeCfg.DBPath)
		dbWrite, err := database.ConnectSQLite(e.runtimeCfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to write database: %w", err)
		}
		e.closers = append(e.closers, dbWrite.Close)

		// An in-memory database exists once per connection, so reads share it
		dbRead := dbWrite
		if e.runtimeCfg.DBPath != database.InMemory {
			dbWrite.SetMaxOpenConns(1)

			dbRead, err = database.ConnectSQLite(e.runtimeCfg.DBPath)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to read database: %w", err)
			}
			e.closers = append(e.closers, dbRead.Close)
			dbRead.SetMaxOpenConns(runtime.NumCPU())
		}

		e.logger.Debug("Initializing database schema")
		if _, err := dbWrite.ExecContext(ctx, schema.DDL); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}

		return statsinfra.NewSQLiteStore(dbRead, dbWrite), nil
	}
}

func (e *runtimeEnv) observer() statsapp.Observer {
	return statsapp.Observers{
		statsapp.NewLogObserver(e.logger.Named("historian")),
		statsapp.NewMetricsObserver(e.registry),
	}
}

func (e *runtimeEnv) historian() *statsapp.Historian {
	return statsapp.NewHistorian(e.repo, e.source, statsapp.HistorianConfig{
		NodeID:           e.runtimeCfg.NodeID,
		SamplingInterval: e.statsCfg.SamplingInterval,
		Cuts:             e.statsCfg.Cuts,
	}, e.observer())
}

func (e *runtimeEnv) historianAverage() *statsapp.HistorianAverage {
	return statsapp.NewHistorianAverage(e.repo, e.runtimeCfg.NodeID, e.statsCfg.WindowInterval, nil, e.observer())
}

func serve(c *cli.Context) error {
	sigCtx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env, err := bootstrap(sigCtx, c, true)
	if err != nil {
		return err
	}
	defer env.Close()

	appLogger := env.logger
	appLogger.Info("Starting historian",
		"store", env.runtimeCfg.Store,
		"node_id", env.runtimeCfg.NodeID,
		"sampling_interval", env.statsCfg.SamplingInterval,
		"window_interval", env.statsCfg.WindowInterval,
	)

	service := statsapp.NewService(env.logger.Named("scheduler"),
		env.historian(), env.statsCfg.SamplingInterval,
		env.historianAverage(), env.statsCfg.WindowInterval,
	)

	apiServer, err := apiserver.NewServer(env.logger, env.runtimeCfg, env.statsCfg, env.repo, env.requests, env.registry)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	service.Start()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	appLogger.Info("Historian started successfully, waiting for shutdown signal")

	var runErr error
	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutdown signal received, starting graceful shutdown")
	case runErr = <-serverErrChan:
		appLogger.Error("Server error received", "err", runErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("API server shutdown error: %w", err)
	}

	if err := service.Stop(shutdownCtx); err != nil {
		appLogger.Error("Scheduler shutdown error", "err", err)
		if runErr == nil {
			runErr = fmt.Errorf("scheduler shutdown error: %w", err)
		}
	}

	if runErr == nil {
		appLogger.Info("Graceful shutdown completed")
	}
	return runErr
}

func sample(c *cli.Context) error {
	return once(c, func(env *runtimeEnv) statsapp.Ticker { return env.historian() })
}

func average(c *cli.Context) error {
	return once(c, func(env *runtimeEnv) statsapp.Ticker { return env.historianAverage() })
}

// outcomeView is the printed form of an outcome
type outcomeView struct {
	Task     string  `json:"task"`
	Status   string  `json:"status"`
	Time     float64 `json:"time"`
	Reason   string  `json:"reason,omitempty"`
	Error    string  `json:"error,omitempty"`
	Duration string  `json:"duration"`
}

func once(c *cli.Context, task func(env *runtimeEnv) statsapp.Ticker) error {
	env, err := bootstrap(c.Context, c, false)
	if err != nil {
		return err
	}
	defer env.Close()

	outcome := task(env).Tick(c.Context)

	view := outcomeView{
		Task:     outcome.Task,
		Status:   string(outcome.Status),
		Time:     outcome.Time,
		Reason:   outcome.Reason,
		Duration: outcome.Duration.String(),
	}
	if outcome.Err != nil {
		view.Error = outcome.Err.Error()
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return err
	}

	if outcome.Status == statsdomain.StatusAbandoned {
		return cli.Exit(fmt.Sprintf("%s abandoned at %q", outcome.Task, outcome.Reason), 2)
	}
	return nil
}
