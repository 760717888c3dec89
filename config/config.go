package config

import (
	"os"
)

type Config struct {
	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Source tables
	OrdersTable      string
	GeolocationTable string

	// Server
	Port string
	Host string
}

func Load() *Config {
	return &Config{
		DBUser:           getEnv("DB_USER", "server"),
		DBPassword:       getEnv("DB_PASSWORD", "secret_app"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBName:           getEnv("DB_NAME", "ecommerce"),
		OrdersTable:      getEnv("ORDERS_TABLE", "main_data"),
		GeolocationTable: getEnv("GEOLOCATION_TABLE", "geolocation"),
		Port:             getEnv("PORT", "8080"),
		Host:             getEnv("HOST", "0.0.0.0"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
