// Command api runs the lending portal HTTP server.
//
//	@title						Lending Portal API
//	@version					1.0
//	@description				Customer and admin API for the loan catalogue, applications, quotes and contact messages.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/api"
	"github.com/softsolution/lending-api/internal/core/service"
	"github.com/softsolution/lending-api/internal/infrastructure/config"
	mongodb "github.com/softsolution/lending-api/internal/infrastructure/db/mongo"
	redisdb "github.com/softsolution/lending-api/internal/infrastructure/db/redis"
	"github.com/softsolution/lending-api/internal/infrastructure/http/handlers"
	"github.com/softsolution/lending-api/internal/infrastructure/security"
	"github.com/softsolution/lending-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lending-api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "lending-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("close mongo")
		}
	}()

	users := mongodb.NewUserRepository(db)
	loans := mongodb.NewLoanRepository(db)
	apps := mongodb.NewApplicationRepository(db)
	quotes := mongodb.NewQuoteRepository(db)
	contacts := mongodb.NewContactRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, loans, apps, quotes, contacts); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}()

	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := security.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiresIn)
	if err != nil {
		return err
	}

	if _, err := service.EnsureAdmin(ctx, users, hasher, service.AdminSeed{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
		Phone:    cfg.Admin.Phone,
	}, log); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	e := api.NewRouter(api.Deps{
		Log:          log,
		Auth:         service.NewAuthService(users, hasher, tokens, log),
		Users:        service.NewUserService(users, log),
		Loans:        service.NewLoanService(loans, log),
		Applications: service.NewApplicationService(apps, users, loans, log),
		Quotes:       service.NewQuoteService(quotes, log),
		Contacts:     service.NewContactService(contacts, log),
		Tokens:       tokens,
		Identities:   users,
		LoginLimiter: redisdb.NewLoginLimiter(rdb, cfg.HTTP.LoginMaxAttempts, cfg.HTTP.LoginAttemptWindow),
		Pingers: map[string]handlers.PingFunc{
			"mongo": handlers.MongoPing(db),
			"redis": handlers.RedisPing(rdb),
		},
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		RateLimitRequests: cfg.HTTP.RateLimitRequests,
		RateLimitWindow:   cfg.HTTP.RateLimitWindow,
	})

	return serve(ctx, e, ":"+cfg.Port, cfg, log)
}

type server interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

func serve(ctx context.Context, srv server, addr string, cfg *config.Config, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server exited cleanly")
	return nil
}
