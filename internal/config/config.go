package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI string
	DBName   string
	Port     string

	// Base URL the scheduled jobs use to reach the API.
	APIURL      string
	HTTPTimeout time.Duration

	LowStockThreshold int
	RestockAmount     int

	LowStockLog       string
	OrderRemindersLog string
	LogMaxSizeBytes   int64
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnvOrDefault("DB_NAME", "crm"),
		Port:              getEnvOrDefault("PORT", "8000"),
		APIURL:            getEnvOrDefault("CRM_API_URL", "http://localhost:8000"),
		HTTPTimeout:       getDurationEnv("HTTP_TIMEOUT_SECONDS", 10, time.Second),
		LowStockThreshold: getPositiveIntEnv("LOW_STOCK_THRESHOLD", 10),
		RestockAmount:     getPositiveIntEnv("RESTOCK_AMOUNT", 10),
		LowStockLog:       getEnvOrDefault("LOW_STOCK_LOG", "/tmp/low_stock_updates_log.txt"),
		OrderRemindersLog: getEnvOrDefault("ORDER_REMINDERS_LOG", "/tmp/order_reminders_log.txt"),
		LogMaxSizeBytes:   getInt64Env("LOG_MAX_SIZE_BYTES", 10*1024*1024),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("%s=%q ignored, using default %d", key, value, defaultValue)
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("%s=%q ignored, using default %d", key, value, defaultValue)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
