package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerAddr        string
	BackendURL        string
	MaxDimension      int
	WebPQuality       int
	RasterScale       float64
	MaxFileBytes      int64
	MaxRequestBytes   int64
	RateLimitPerMin   int
	TrustedProxyCIDRs string
}

func Load() *Config {
	return &Config{
		ServerAddr:        getEnv("SERVER_ADDR", ":8080"),
		BackendURL:        getEnv("PYTHON_BACKEND_URL", "http://localhost:8000"),
		MaxDimension:      getEnvInt("MAX_DIMENSION", 1600),
		WebPQuality:       getEnvInt("WEBP_QUALITY", 80),
		RasterScale:       getEnvFloat("RASTER_SCALE", 2.0),
		MaxFileBytes:      int64(getEnvInt("MAX_FILE_BYTES", 25<<20)),
		MaxRequestBytes:   int64(getEnvInt("MAX_REQUEST_BYTES", 100<<20)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
		TrustedProxyCIDRs: getEnv("TRUSTED_PROXY_CIDRS", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
