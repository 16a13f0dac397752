package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	LogLevel      string
	AdminUsername string
	AdminPassword string
	PublishDelay  time.Duration
	LoginDelay    time.Duration
	MaxImageBytes int64
}

const (
	defaultPublishDelay  = time.Second
	defaultLoginDelay    = 800 * time.Millisecond
	defaultMaxImageBytes = 2 << 20
)

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := getenv("PORT", "8080")

	listenAddr := getenv("LISTEN_ADDR", "")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  getenv("DATABASE_PATH", "guardstation.db"),
		SessionSecret: getenv("SESSION_SECRET", "guardstation-dev-secret"),
		GinMode:       getenv("GIN_MODE", "release"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin"),
		PublishDelay:  getDuration("PUBLISH_DELAY", defaultPublishDelay),
		LoginDelay:    getDuration("LOGIN_DELAY", defaultLoginDelay),
		MaxImageBytes: getInt64("MAX_IMAGE_BYTES", defaultMaxImageBytes),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getDuration accepts Go duration strings ("1s", "250ms"); malformed or
// negative values fall back.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getenv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	raw := getenv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
