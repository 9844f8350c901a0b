package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/frzip09/absolute-time/internal/config"
	"github.com/frzip09/absolute-time/internal/httpserver"
	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/notify"
	"github.com/frzip09/absolute-time/internal/redis"
	"github.com/frzip09/absolute-time/internal/settings"
	"github.com/frzip09/absolute-time/internal/storage"
	"github.com/frzip09/absolute-time/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	backend     settings.Backend
	store       *settings.Store
	hub         *notify.Hub
	relay       *notify.Relay
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the settings backend once at startup; business logic only ever
	// sees the Backend capability.
	var (
		backend     settings.Backend
		redisClient *goredis.Client
	)
	switch {
	case cfg.RedisAddr != "":
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		backend = storage.NewRedisBackend(client, loggerClient)
		loggerClient.Info("settings backend: redis", logger.String("addr", cfg.RedisAddr))

	case cfg.SettingsFile != "":
		backend = storage.NewFileBackend(cfg.SettingsFile)
		loggerClient.Info("settings backend: file", logger.String("path", cfg.SettingsFile))

	default:
		backend = storage.NewMemoryBackend()
		loggerClient.Warn("no settings persistence configured, settings live in memory only")
	}

	store := settings.NewStore(backend, loggerClient)
	hub := notify.NewHub(loggerClient)
	relay := notify.NewRelay(store, hub, loggerClient)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		TimeNow:   time.Now,
		Store:     store,
		Hub:       hub,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		backend:     backend,
		store:       store,
		hub:         hub,
		relay:       relay,
	}
}

func (a *App) Run() error {
	a.logger.Infof("starting abstime %s (commit=%s, built=%s, go=%s) on %s",
		version.Version, version.Commit, version.BuildDate, version.GoVersion, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.relay.Start(ctx); err != nil {
		return fmt.Errorf("failed to start settings relay: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.relay.Stop()
	a.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Warnf("failed to close settings backend: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("redis closed cleanly")
		}
	}

	a.logger.Info("abstime stopped cleanly")
	return nil
}
