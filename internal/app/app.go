// Package app wires config into the stores and use cases shared by the HTTP
// server and the CLI.
package app

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loan-calculator/internal/adapter/repository/memory"
	sqlrepo "loan-calculator/internal/adapter/repository/mysql"
	redisrepo "loan-calculator/internal/adapter/repository/redis"
	"loan-calculator/internal/config"
	pinDomain "loan-calculator/internal/domain/pin"
	"loan-calculator/internal/infrastructure/cache"
	"loan-calculator/internal/infrastructure/db"
	"loan-calculator/internal/usecase/loan"
	"loan-calculator/internal/usecase/pin"
	"loan-calculator/pkg/amortize"
)

type App struct {
	Log   *logrus.Logger
	Store pinDomain.SecretStore
	Gate  *pin.Gate
	Loans *loan.Usecase

	// Redis is nil unless REDIS_ADDR is set.
	Redis *redis.Client

	closers []func() error
}

func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Build opens the configured store and assembles the use cases. The caller
// must Close the returned App.
func Build(cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Log: log}

	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.Redis = rdb
		a.closers = append(a.closers, rdb.Close)
	}

	store, err := a.openStore(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Store = store

	hasher, err := pin.NewHasher(cfg.PINHashScheme, cfg.PINSalt, cfg.PINHashEncoding, cfg.BcryptCost)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Gate = pin.NewGate(store, hasher, log.WithField("component", "pin"))
	a.Loans = loan.NewUsecase(
		amortize.NewCalculator(),
		loan.Formatter{PeriodPrecision: int32(cfg.PeriodPrecision)},
		log.WithField("component", "loan"),
	)
	return a, nil
}

func (a *App) openStore(cfg *config.Config) (pinDomain.SecretStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewSecretStore(), nil
	case config.DriverRedis:
		if a.Redis == nil {
			return nil, errors.New("redis store needs REDIS_ADDR")
		}
		return redisrepo.NewSecretRepository(a.Redis), nil
	case config.DriverSQLite:
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return a.sqlStore(gdb)
	case config.DriverMySQL:
		gdb, err := db.OpenGorm(cfg.MySQLDSN())
		if err != nil {
			return nil, fmt.Errorf("mysql: %w", err)
		}
		return a.sqlStore(gdb)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) sqlStore(gdb *gorm.DB) (pinDomain.SecretStore, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, sqlDB.Close)
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return sqlrepo.NewSecretRepository(gdb), nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
