package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string
	Storage StorageConfig
	Admin   AdminConfig
	Session SessionConfig
	Login   LoginConfig
	Ticket  TicketConfig
	Console ConsoleConfig
	Log     LogConfig
}

type StorageConfig struct {
	DataDir              string
	UsersFile            string
	EventsFile           string
	BookingsFile         string
	ResetBookingsOnStart bool
}

type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
	BcryptCost   int
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type LoginConfig struct {
	RateInterval time.Duration
	RateBurst    int
}

type TicketConfig struct {
	MaxAttempts int
}

type ConsoleConfig struct {
	Width       int
	ClearScreen bool
}

type LogConfig struct {
	Level    string
	Mode     string
	Encoding string
	Output   string
}

// Load reads configuration from the environment. envFiles are loaded first
// when present; a missing default .env is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		// Load .env file if exists
		_ = godotenv.Load()
	}

	dataDir := getEnv("DATA_DIR", ".")

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Storage: StorageConfig{
			DataDir:              dataDir,
			UsersFile:            getEnv("USERS_FILE", "user_info.txt"),
			EventsFile:           getEnv("EVENTS_FILE", "events.txt"),
			BookingsFile:         getEnv("BOOKINGS_FILE", "bookings.txt"),
			ResetBookingsOnStart: getEnvAsBool("RESET_BOOKINGS_ON_START", false),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", "password"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			BcryptCost:   getEnvAsInt("BCRYPT_COST", 10),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "eventease-session-secret"),
			TTL:    getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		},
		Login: LoginConfig{
			RateInterval: getEnvAsDuration("LOGIN_RATE_INTERVAL", 2*time.Second),
			RateBurst:    getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		Ticket: TicketConfig{
			MaxAttempts: getEnvAsInt("TICKET_MAX_ATTEMPTS", 1000),
		},
		Console: ConsoleConfig{
			Width:       getEnvAsInt("CONSOLE_WIDTH", 0),
			ClearScreen: getEnvAsBool("CONSOLE_CLEAR", true),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Mode:     getEnv("LOG_MODE", "development"),
			Encoding: getEnv("LOG_ENCODING", "console"),
			Output:   getEnv("LOG_OUTPUT", filepath.Join(dataDir, "eventease.log")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}

	for _, name := range []string{c.Storage.UsersFile, c.Storage.EventsFile, c.Storage.BookingsFile} {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid store file name: %q", name)
		}
	}

	if c.Admin.Username == "" {
		return fmt.Errorf("admin username is required")
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin password or password hash is required")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl: %s", c.Session.TTL)
	}

	if c.Session.Secret == "" || c.Session.Secret == "eventease-session-secret" {
		if c.Env == "production" {
			return fmt.Errorf("session secret must be set in production")
		}
	}

	if c.Login.RateBurst <= 0 {
		return fmt.Errorf("invalid login rate burst: %d", c.Login.RateBurst)
	}

	if c.Ticket.MaxAttempts <= 0 {
		return fmt.Errorf("invalid ticket max attempts: %d", c.Ticket.MaxAttempts)
	}

	return nil
}

// UsersPath returns the full path of the user store file.
func (s StorageConfig) UsersPath() string {
	return filepath.Join(s.DataDir, s.UsersFile)
}

func (s StorageConfig) EventsPath() string {
	return filepath.Join(s.DataDir, s.EventsFile)
}

func (s StorageConfig) BookingsPath() string {
	return filepath.Join(s.DataDir, s.BookingsFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
