package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	WorkDir        string
	CleanupTimeout time.Duration
	NLPBaseURL     string
	NLPAPIKey      string
	RulesPath      string
	NumKeywords    int
	Workers        int
	MaxUploadMB    int64
}

// LoadConfig loads the environment variables and returns config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		WorkDir:        getEnv("WORK_DIR", "/tmp/jobs"),
		CleanupTimeout: getEnvDuration("CLEANUP_TIMEOUT", time.Hour),
		NLPBaseURL:     getEnv("NLP_URL", "http://localhost:8090"),
		NLPAPIKey:      getEnv("NLP_API_KEY", ""),
		RulesPath:      getEnv("RULES_PATH", ""),
		NumKeywords:    getEnvInt("NUM_KEYWORDS", 7),
		Workers:        getEnvInt("WORKERS", 2),
		MaxUploadMB:    int64(getEnvInt("MAX_UPLOAD_MB", 52)),
	}

	if cfg.NLPBaseURL == "" {
		log.Fatal("NLP_URL not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a duration, using default %s", key, v, def)
		return def
	}
	return d
}
