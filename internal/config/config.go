package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	AppEnv  string
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs int

	JWTSecret string
	JWTTTL    time.Duration

	LoginRPS   float64
	LoginBurst int

	MailDriver      string // console | sendgrid
	MailFrom        string
	MailFromName    string
	SendgridAPIKey  string
	FrontendBaseURL string
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

func getfloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the environment.
// Variables already set in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load(getenv("ENV_FILE", ".env"))

	return &Config{
		AppEnv:    getenv("APP_ENV", "dev"),
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "oalass"),
		MySQLUser: getenv("MYSQL_USER", "oalass"),
		MySQLPass: getenv("MYSQL_PASS", "oalass"),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),
		IdempTTLSecs:  getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret: getenv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:    time.Duration(getint("JWT_TTL_MINUTES", 8*60)) * time.Minute,

		LoginRPS:   getfloat("LOGIN_RPS", 1),
		LoginBurst: getint("LOGIN_BURST", 5),

		MailDriver:      getenv("MAIL_DRIVER", "console"),
		MailFrom:        getenv("MAIL_FROM", "noreply@oalass.local"),
		MailFromName:    getenv("MAIL_FROM_NAME", "OALASS"),
		SendgridAPIKey:  getenv("SENDGRID_API_KEY", ""),
		FrontendBaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
	}
}

func (c *Config) IsProd() bool { return c.AppEnv == "prod" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" || (c.AppEnv != "dev" && c.JWTSecret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set outside dev")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_MINUTES must be positive")
	}
	switch c.MailDriver {
	case "console":
	case "sendgrid":
		if c.SendgridAPIKey == "" {
			return errors.New("MAIL_DRIVER=sendgrid requires SENDGRID_API_KEY")
		}
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
