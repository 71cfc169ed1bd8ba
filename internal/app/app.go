package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	nats "github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/user-service/config"
	httpadapter "github.com/example/user-service/internal/adapters/http"
	"github.com/example/user-service/internal/adapters/http/handlers"
	authmw "github.com/example/user-service/internal/adapters/http/middleware"
	natsadapter "github.com/example/user-service/internal/adapters/nats"
	repo "github.com/example/user-service/internal/adapters/postgres"
	"github.com/example/user-service/internal/domain"
	"github.com/example/user-service/internal/usecase"
	pkglog "github.com/example/user-service/pkg/log"
)

type App struct {
	cfg      *config.Config
	logger   pkglog.Logger
	db       *gorm.DB
	natsConn *nats.Conn
	echo     *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	log := pkglog.New(cfg.AppEnv)

	db, err := dialPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.RefreshToken{}); err != nil {
		return nil, err
	}

	nc := dialNATS(ctx, cfg, log)

	userRepo := repo.NewUserRepository(db)
	refreshRepo := repo.NewRefreshTokenRepository(db)

	signer, err := usecase.NewJWTSigner(cfg)
	if err != nil {
		return nil, err
	}

	var events usecase.EventPublisher
	if nc != nil {
		events = natsadapter.NewEventsClient(nc, cfg.NATSUserCreatedSubject, cfg.NATSUserDeletedSubject)
	}

	authService := usecase.NewAuthService(cfg, log, userRepo, refreshRepo, events, signer)
	userService := usecase.NewUserService(log, userRepo, events)

	authHandler := handlers.NewAuthHandler(cfg, log, authService)
	userHandler := handlers.NewUserHandler(log, userService)
	authMW := authmw.NewAuthMiddleware(signer)
	router := httpadapter.NewRouter(cfg, authHandler, userHandler, authMW.Handler)

	if nc != nil {
		verifyHandler := natsadapter.NewVerifyHandler(signer)
		if err := verifyHandler.Subscribe(nc, cfg.NATSVerifySubject, cfg.AppName); err != nil {
			log.Warn().Err(err).Msg("verify subscription failed")
		}
	}

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: log, db: db, natsConn: nc, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// dialPostgres retries the initial connection so the service survives the
// database coming up after it in a compose/k8s rollout.
func dialPostgres(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	op := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
			Logger: loggerForGorm(cfg),
		})
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return db, nil
}

// dialNATS is best-effort: the service runs without messaging when the
// broker is not configured or unreachable.
func dialNATS(ctx context.Context, cfg *config.Config, log pkglog.Logger) *nats.Conn {
	if cfg.NATSURL == "" {
		return nil
	}
	var nc *nats.Conn
	op := func() error {
		var err error
		nc, err = nats.Connect(cfg.NATSURL)
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		log.Warn().Err(err).Msg("nats connect failed")
		return nil
	}
	return nc
}

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

func loggerForGorm(cfg *config.Config) logger.Interface {
	level := logger.Silent
	switch cfg.AppEnv {
	case "local":
		level = logger.Info
	default:
		level = logger.Warn
	}
	return logger.Default.LogMode(level)
}
