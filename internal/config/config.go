package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"

	devJWTSecret = "loancalc-dev-secret"
)

type Config struct {
	AppPort  string
	LogLevel string

	StoreDriver string
	SQLitePath  string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	PINHashScheme   string
	PINSalt         string
	PINHashEncoding string
	BcryptCost      int

	JWTSecret         string
	SessionTTLMinutes int

	PeriodPrecision     int
	VerifyRatePerMinute int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// process environment. Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load(getenv("ENV_FILE", ".env"))

	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		StoreDriver: getenv("STORE_DRIVER", DriverSQLite),
		SQLitePath:  getenv("SQLITE_PATH", "loancalc.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loancalc"),
		MySQLUser: getenv("MYSQL_USER", "loancalc"),
		MySQLPass: getenv("MYSQL_PASS", "loancalc"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		PINHashScheme:   getenv("PIN_HASH_SCHEME", "sha256"),
		PINSalt:         getenv("PIN_SALT", "LoanCalcSalt"),
		PINHashEncoding: getenv("PIN_HASH_ENCODING", "hex"),
		BcryptCost:      getint("BCRYPT_COST", 0),

		JWTSecret:         getenv("JWT_SECRET", devJWTSecret),
		SessionTTLMinutes: getint("SESSION_TTL_MINUTES", 60),

		PeriodPrecision:     getint("PERIOD_PRECISION", 2),
		VerifyRatePerMinute: getint("VERIFY_RATE_PER_MINUTE", 10),
	}
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("STORE_DRIVER=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == DriverSQLite && c.SQLitePath == "" {
		return errors.New("missing SQLITE_PATH")
	}

	switch c.PINHashScheme {
	case "sha256", "bcrypt":
	default:
		return fmt.Errorf("unknown PIN_HASH_SCHEME %q", c.PINHashScheme)
	}
	switch c.PINHashEncoding {
	case "hex", "base64":
	default:
		return fmt.Errorf("unknown PIN_HASH_ENCODING %q", c.PINHashEncoding)
	}

	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMinutes)
	}
	if c.PeriodPrecision < 0 || c.PeriodPrecision > 6 {
		return fmt.Errorf("PERIOD_PRECISION must be in 0..6, got %d", c.PeriodPrecision)
	}
	if c.VerifyRatePerMinute <= 0 {
		return fmt.Errorf("VERIFY_RATE_PER_MINUTE must be positive, got %d", c.VerifyRatePerMinute)
	}
	return nil
}

// UsesDevSecret reports whether the built-in development signing key is in use.
func (c *Config) UsesDevSecret() bool { return c.JWTSecret == devJWTSecret }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
