package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath      string
	FoodDatabasePath  string
	WatchFoodDatabase bool
	AllowedOrigins    []string
	LogLevel          slog.Level
	Port              string
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	config := Config{
		DatabasePath:     envOrDefault("DATABASE_PATH", "./data/nutrition-hub.db"),
		FoodDatabasePath: os.Getenv("FOOD_DATABASE_PATH"),
		AllowedOrigins:   splitList(envOrDefault("ALLOWED_ORIGINS", "*")),
		Port:             envOrDefault("PORT", "8080"),
	}

	watch, err := strconv.ParseBool(envOrDefault("WATCH_FOOD_DATABASE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("WATCH_FOOD_DATABASE must be a boolean: %w", err)
	}
	config.WatchFoodDatabase = watch

	if err := config.LogLevel.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if port, err := strconv.Atoi(config.Port); err != nil || port < 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a number between 0 and 65535, got %q", config.Port)
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
