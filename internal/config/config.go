package config

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_HOST         string
	APP_PORT         int
	SHUTDOWN_TIMEOUT time.Duration
	// storage config
	DATA_FILE_PATH     string
	REPORT_CONFIG_PATH string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

// LoadEnvConfig reads .env files when present and fills DefaultEnvConfig from
// the environment. With no arguments it looks for ".env" in the working
// directory; a missing file is not an error.
func LoadEnvConfig(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	DefaultEnvConfig = &envConfig{
		APP_HOST:           getEnvString("APP_HOST", "127.0.0.1"),
		APP_PORT:           getEnvInt("APP_PORT", 8080),
		SHUTDOWN_TIMEOUT:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DATA_FILE_PATH:     getEnvString("DATA_FILE_PATH", "Data/Employments.csv"),
		REPORT_CONFIG_PATH: getEnvString("REPORT_CONFIG_PATH", "report_config.yaml"),
		LOG_FILE_PATH:      getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:          getEnvString("LOG_LEVEL", "info"),
	}
	return nil
}

// Address is the host:port the HTTP server listens on.
func (c *envConfig) Address() string {
	return net.JoinHostPort(c.APP_HOST, strconv.Itoa(c.APP_PORT))
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
