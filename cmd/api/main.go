package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loan-calculator/internal/adapter/http"
	mw "loan-calculator/internal/adapter/middleware"
	"loan-calculator/internal/app"
	"loan-calculator/internal/config"
	"loan-calculator/internal/infrastructure/session"
)

func main() {
	cfg := config.Load()
	logger := app.NewLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if cfg.UsesDevSecret() {
		logger.Warn("JWT_SECRET not set, using the development signing key")
	}

	a, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatalf("startup: %v", err)
	}
	defer a.Close()

	issuer := session.NewIssuer(cfg.JWTSecret, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	routes := httpadp.Routes{
		Health: httpadp.NewHandler(func(ctx context.Context) error {
			_, err := a.Gate.IsConfigured(ctx)
			return err
		}),
		Pins:          httpadp.NewPinHandler(a.Gate, issuer),
		Loans:         httpadp.NewLoanHandler(a.Loans),
		Session:       mw.RequireSession(issuer, a.Gate),
		VerifyLimiter: mw.AttemptLimiter(cfg.VerifyRatePerMinute),
	}
	if a.Redis != nil {
		routes.Idempotency = mw.Idempotency(a.Redis, time.Duration(cfg.IdempTTLSecs)*time.Second, logger.WithField("component", "idempotency"))
	} else {
		logger.Info("REDIS_ADDR not set, idempotency disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	httpadp.Register(e, routes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		logger.WithField("store", cfg.StoreDriver).Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
}
