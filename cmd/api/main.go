package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	netmail "net/mail"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "oalass-backend/internal/adapter/http"
	mw "oalass-backend/internal/adapter/middleware"
	repo "oalass-backend/internal/adapter/repository/mysql"
	"oalass-backend/internal/config"
	"oalass-backend/internal/infrastructure/cache"
	"oalass-backend/internal/infrastructure/db"
	"oalass-backend/internal/infrastructure/logging"
	"oalass-backend/internal/infrastructure/mail"
	"oalass-backend/internal/notify"
	"oalass-backend/internal/usecase/account"
	"oalass-backend/internal/usecase/auth"
	"oalass-backend/internal/usecase/catalog"
	"oalass-backend/internal/usecase/dashboard"
	"oalass-backend/internal/usecase/leave"
	"oalass-backend/internal/usecase/period"
	"oalass-backend/internal/usecase/probation"
	"oalass-backend/internal/usecase/travel"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func newMailer(cfg *config.Config, log *zap.Logger) (mail.Mailer, error) {
	from := netmail.Address{Name: cfg.MailFromName, Address: cfg.MailFrom}
	switch cfg.MailDriver {
	case "console", "":
		return mail.NewConsoleMailer(from, log), nil
	case "sendgrid":
		return mail.NewSendgridMailer(cfg.SendgridAPIKey, from), nil
	}
	return nil, fmt.Errorf("unknown MAIL_DRIVER %q", cfg.MailDriver)
}

func run(cfg *config.Config, logger *zap.Logger) error {
	gdb, err := db.OpenGorm(cfg.MySQLDSN(), !cfg.IsProd())
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	rdb, err := cache.OpenRedis(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		return fmt.Errorf("open redis: %w", err)
	}
	defer func() { _ = rdb.Close() }()

	mailer, err := newMailer(cfg, logger)
	if err != nil {
		return err
	}
	notifier, err := notify.New(mailer, logger, notify.Options{
		AppName:         "OALASS",
		FrontendBaseURL: cfg.FrontendBaseURL,
		Async:           true,
	})
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	defer notifier.Wait()

	repos := repo.ReposFor(gdb)
	tx := repo.NewGormUoW(gdb)

	authUC := auth.NewUsecase(repos.Users, cfg.JWTSecret, cfg.JWTTTL)
	accounts := account.NewUsecase(repos.Users, repos.Catalog, notifier)
	leaves := leave.NewUsecase(repos, tx, notifier, logger)

	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Pinger{
			"mysql": httpadp.PingFunc(sqlDB.PingContext),
			"redis": httpadp.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		}),
		Auth:      httpadp.NewAuthHandler(authUC, accounts),
		Accounts:  httpadp.NewAccountHandler(accounts),
		Catalog:   httpadp.NewCatalogHandler(catalog.NewUsecase(repos.Catalog)),
		Periods:   httpadp.NewPeriodHandler(period.NewUsecase(repos.Periods, tx)),
		Leave:     httpadp.NewLeaveHandler(leaves),
		Travel:    httpadp.NewTravelHandler(travel.NewUsecase(repos.Travels, repos.Users, tx, notifier, logger)),
		Probation: httpadp.NewProbationHandler(probation.NewUsecase(repos.Probations, repos.Users, tx, notifier, logger)),
		Dashboard: httpadp.NewDashboardHandler(dashboard.NewUsecase(repos, leaves)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := mw.NewIPLimiter(cfg.LoginRPS, cfg.LoginBurst)
	limiter.StartJanitor(ctx, time.Minute)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,

		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}), middleware.Recover())

	httpadp.Register(e, handlers, httpadp.RouterConfig{
		Authenticator:  authUC,
		LoginLimiter:   limiter,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		Log:            logger,
	})

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
