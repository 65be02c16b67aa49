package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/config"
	"github.com/iliyamo/fanclub-membership/internal/database"
	"github.com/iliyamo/fanclub-membership/internal/handler"
	"github.com/iliyamo/fanclub-membership/internal/logger"
	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/queue"
	"github.com/iliyamo/fanclub-membership/internal/repository"
	"github.com/iliyamo/fanclub-membership/internal/router"
	"github.com/iliyamo/fanclub-membership/internal/service"
)

func main() {
	boot := logger.New("info")
	if err := config.LoadDotEnv(); err != nil {
		boot.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := database.Open(ctx, database.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// Redis is optional; without it the cache and limiter pass through.
	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	policy, err := membership.ParsePolicy(cfg.CancelPolicy)
	if err != nil {
		return err
	}
	opts := []membership.Option{
		membership.WithPolicy(policy),
		membership.WithLogger(log),
	}
	if cfg.RabbitURL != "" {
		opts = append(opts, membership.WithNotifier(service.NewPublisher(cfg.RabbitURL, log)))
		consumer := &queue.Consumer{URL: cfg.RabbitURL, LogPath: queue.DefaultLogPath, Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("membership consumer stopped")
			}
		}()
	}
	svc := membership.NewService(repository.NewMembershipStore(db), opts...)

	artists := repository.NewArtistRepo(db)
	events := repository.NewEventRepo(db)
	e := router.New(router.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Browse: handler.NewBrowseHandler(artists, events, log),
		Customers: handler.NewCustomerHandler(handler.CustomerDeps{
			Service:       svc,
			Customers:     repository.NewCustomerRepo(db),
			Subscriptions: repository.NewSubscriptionRepo(db),
			Events:        events,
			Artists:       artists,
			Courses:       repository.NewCourseRepo(db),
			Token:         handler.TokenConfig{Secret: cfg.MemberTokenSecret, TTL: cfg.MemberTokenTTL},
			Log:           log,
		}),
		Subscriptions: handler.NewSubscriptionHandler(svc, log),
		Log:           log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Str("policy", string(policy)).Msg("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
