package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Environment
	Environment string `mapstructure:"ENV"`

	// Server Configuration
	ServerHost string `mapstructure:"SERVER_HOST"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	// Database Configuration
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// Redis Configuration
	RedisHost string `mapstructure:"REDIS_HOST"`
	RedisPort string `mapstructure:"REDIS_PORT"`
	RedisDB   int    `mapstructure:"REDIS_DB"`

	// Gemini Configuration
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Diagnosis tuning. These mirror the confidence values the product
	// shipped with; they are configuration, not derived quantities.
	ParseFallbackConfidence   float64 `mapstructure:"DIAGNOSIS_PARSE_FALLBACK_CONFIDENCE"`
	ServiceFallbackConfidence float64 `mapstructure:"DIAGNOSIS_SERVICE_FALLBACK_CONFIDENCE"`
	OfflineConfidenceMin      float64 `mapstructure:"DIAGNOSIS_OFFLINE_CONFIDENCE_MIN"`
	OfflineConfidenceSpan     float64 `mapstructure:"DIAGNOSIS_OFFLINE_CONFIDENCE_SPAN"`
	CatalogBroadenLimit       int     `mapstructure:"DIAGNOSIS_CATALOG_BROADEN_LIMIT"`

	// Storage
	StoragePath    string `mapstructure:"STORAGE_PATH"`
	MaxUploadSize  int64  `mapstructure:"MAX_UPLOAD_SIZE_MB"`
	UploadMaxAgeH  int    `mapstructure:"UPLOAD_MAX_AGE_HOURS"`
	CleanupEnabled bool   `mapstructure:"UPLOAD_CLEANUP_ENABLED"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using environment variables only")
		}
	}

	config := &Config{}

	// Set defaults
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")

	// Database defaults
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "farmassist")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SQLITE_PATH", "farmassist.db")

	// Redis defaults
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)

	// Gemini defaults
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")

	// Diagnosis defaults
	viper.SetDefault("DIAGNOSIS_PARSE_FALLBACK_CONFIDENCE", 0.7)
	viper.SetDefault("DIAGNOSIS_SERVICE_FALLBACK_CONFIDENCE", 0.6)
	viper.SetDefault("DIAGNOSIS_OFFLINE_CONFIDENCE_MIN", 0.5)
	viper.SetDefault("DIAGNOSIS_OFFLINE_CONFIDENCE_SPAN", 0.3)
	viper.SetDefault("DIAGNOSIS_CATALOG_BROADEN_LIMIT", 10)

	// Storage defaults
	viper.SetDefault("STORAGE_PATH", "./data")
	viper.SetDefault("MAX_UPLOAD_SIZE_MB", 10)
	viper.SetDefault("UPLOAD_MAX_AGE_HOURS", 720)
	viper.SetDefault("UPLOAD_CLEANUP_ENABLED", true)

	// Bind environment variables
	viper.AutomaticEnv()

	config.Environment = viper.GetString("ENV")
	config.ServerHost = viper.GetString("SERVER_HOST")
	config.ServerPort = viper.GetString("SERVER_PORT")

	// Database
	config.DBDriver = viper.GetString("DB_DRIVER")
	config.DBHost = viper.GetString("DB_HOST")
	config.DBPort = viper.GetString("DB_PORT")
	config.DBUser = viper.GetString("DB_USER")
	config.DBPassword = viper.GetString("DB_PASSWORD")
	config.DBName = viper.GetString("DB_NAME")
	config.DBSSLMode = viper.GetString("DB_SSLMODE")
	config.SQLitePath = viper.GetString("SQLITE_PATH")

	// Redis
	config.RedisHost = viper.GetString("REDIS_HOST")
	config.RedisPort = viper.GetString("REDIS_PORT")
	config.RedisDB = viper.GetInt("REDIS_DB")

	// Gemini
	config.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	config.GeminiModel = viper.GetString("GEMINI_MODEL")

	// Diagnosis tuning
	config.ParseFallbackConfidence = viper.GetFloat64("DIAGNOSIS_PARSE_FALLBACK_CONFIDENCE")
	config.ServiceFallbackConfidence = viper.GetFloat64("DIAGNOSIS_SERVICE_FALLBACK_CONFIDENCE")
	config.OfflineConfidenceMin = viper.GetFloat64("DIAGNOSIS_OFFLINE_CONFIDENCE_MIN")
	config.OfflineConfidenceSpan = viper.GetFloat64("DIAGNOSIS_OFFLINE_CONFIDENCE_SPAN")
	config.CatalogBroadenLimit = viper.GetInt("DIAGNOSIS_CATALOG_BROADEN_LIMIT")

	// Storage
	config.StoragePath = viper.GetString("STORAGE_PATH")
	config.MaxUploadSize = viper.GetInt64("MAX_UPLOAD_SIZE_MB")
	config.UploadMaxAgeH = viper.GetInt("UPLOAD_MAX_AGE_HOURS")
	config.CleanupEnabled = viper.GetBool("UPLOAD_CLEANUP_ENABLED")

	// Validate required fields
	if config.DBDriver != "postgres" && config.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", config.DBDriver)
	}
	if config.DBDriver == "postgres" {
		if config.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required")
		}
		if config.DBPassword == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	}
	if config.IsProduction() && config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required in production")
	}

	return config, nil
}

// GetDatabaseURL constructs the PostgreSQL connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// GetRedisURL constructs the Redis connection string
func (c *Config) GetRedisURL() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LogConfig logs the configuration (hiding sensitive data)
func (c *Config) LogConfig() {
	log.Printf("Configuration loaded:")
	log.Printf("  Environment: %s", c.Environment)
	log.Printf("  Server: %s:%s", c.ServerHost, c.ServerPort)
	if c.DBDriver == "sqlite" {
		log.Printf("  Database: sqlite %s", c.SQLitePath)
	} else {
		log.Printf("  Database: %s:%s/%s", c.DBHost, c.DBPort, c.DBName)
	}
	log.Printf("  Redis: %s:%s (DB: %d)", c.RedisHost, c.RedisPort, c.RedisDB)
	log.Printf("  Gemini Model: %s", c.GeminiModel)
	log.Printf("  Storage Path: %s", c.StoragePath)

	if c.GeminiAPIKey != "" {
		log.Printf("  Gemini API Key: [CONFIGURED]")
	} else {
		log.Printf("  Gemini API Key: [NOT SET]")
	}
}
