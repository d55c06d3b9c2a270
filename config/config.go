package config

import (
	"os"
	"strconv"

	"github.com/prasetyowira/qrgen/constant"
)

type Config struct {
	OutputDir   string
	DatabaseURL string
	LogLevel    string
	Port        int
	AuthUser    string
	AuthPass    string
	CacheSize   int
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "128"))

	return Config{
		OutputDir:   getEnv("OUTPUT_DIR", constant.DefaultOutputDir),
		DatabaseURL: getEnv("DATABASE_URL", "qrgen.db"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		Port:        port,
		AuthUser:    getEnv("AUTH_USER", "admin"),
		AuthPass:    getEnv("AUTH_PASS", "password"),
		CacheSize:   cacheSize,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
