package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	RedisAddr string

	GeminiAPIKey string
	GeminiModel  string

	// 快照有效期与后台轮询周期
	Staleness time.Duration
	PollSpec  string

	BasicAuthUser string
	BasicAuthPass string
}

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		Staleness:     time.Duration(getEnvInt("STALENESS_HOURS", 8)) * time.Hour,
		PollSpec:      getEnv("POLL_SPEC", "@every 1m"),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	log.Printf("config loaded: port=%s poll=%s staleness=%s model=%s",
		cfg.AppPort, cfg.PollSpec, cfg.Staleness, cfg.GeminiModel)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
