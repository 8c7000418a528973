package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configurations
	Server ServerConfig

	// Database configurations
	Database DatabaseConfig

	// Object store (MinIO) configurations
	Storage StorageConfig

	// OCR engine configurations
	OCR OCRConfig

	// Translation engine configurations
	Translator TranslatorConfig

	// Redis configurations
	MemoryDBRedisURL      string
	MemoryDBRedisUsername string
	MemoryDBRedisPassword string
	TranslationCacheTTL   time.Duration

	// MCP tool server
	MCPAddr      string
	MCPTransport string

	// Application configurations
	AppEnv   string
	LogLevel string
}

// ServerConfig holds server-related configurations
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds, 0 disables
	IdleTimeout  int // seconds
	MaxUploadMB  int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

type StorageConfig struct {
	Host      string
	AccessKey string
	SecretKey string
	Secure    bool
	Bucket    string
	Region    string
}

type OCRConfig struct {
	Language       string
	TessdataPrefix string
	PageSegMode    int
	MaxSide        int   // larger images are downscaled before OCR, 0 disables
	MaxPixels      int64 // uploads declaring more pixels are rejected before decoding, 0 disables
}

type TranslatorConfig struct {
	URL        string
	Token      string
	SourceLang string
	TargetLang string
	Timeout    time.Duration // 0 means no client-side timeout
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_READ_TIMEOUT", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 0) // OCR + translation can run long
	viper.SetDefault("SERVER_IDLE_TIMEOUT", 60)
	viper.SetDefault("MAX_UPLOAD_MB", 32)

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "ocr_translate")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)

	viper.SetDefault("MINIO_HOST", "minio:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECURE", "False")
	viper.SetDefault("MINIO_BUCKET", "ocr-images")
	viper.SetDefault("MINIO_REGION", "us-east-1")

	viper.SetDefault("OCR_LANG", "eng")
	viper.SetDefault("OCR_PSM", 3)
	viper.SetDefault("OCR_MAX_SIDE", 4096)
	viper.SetDefault("OCR_MAX_PIXELS", 178956970)

	viper.SetDefault("TRANSLATOR_URL", "http://translator:8080/translate")
	viper.SetDefault("TRANSLATOR_SOURCE_LANG", "eng_Latn")
	viper.SetDefault("TRANSLATOR_TARGET_LANG", "vie_Latn")
	viper.SetDefault("TRANSLATOR_TIMEOUT", 0)

	viper.SetDefault("TRANSLATION_CACHE_TTL", 24) // hours

	viper.SetDefault("MCP_ADDR", ":8081")
	viper.SetDefault("MCP_TRANSPORT", "sse")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")

	return &Config{
		// Server configurations
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			ReadTimeout:  viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetInt("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetInt("SERVER_IDLE_TIMEOUT"),
			MaxUploadMB:  viper.GetInt64("MAX_UPLOAD_MB"),
		},

		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},

		Storage: StorageConfig{
			Host:      viper.GetString("MINIO_HOST"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Secure:    parseBoolFlag(viper.GetString("MINIO_SECURE")),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			Region:    viper.GetString("MINIO_REGION"),
		},

		OCR: OCRConfig{
			Language:       viper.GetString("OCR_LANG"),
			TessdataPrefix: viper.GetString("TESSDATA_PREFIX"),
			PageSegMode:    viper.GetInt("OCR_PSM"),
			MaxSide:        viper.GetInt("OCR_MAX_SIDE"),
			MaxPixels:      viper.GetInt64("OCR_MAX_PIXELS"),
		},

		Translator: TranslatorConfig{
			URL:        viper.GetString("TRANSLATOR_URL"),
			Token:      viper.GetString("TRANSLATOR_TOKEN"),
			SourceLang: viper.GetString("TRANSLATOR_SOURCE_LANG"),
			TargetLang: viper.GetString("TRANSLATOR_TARGET_LANG"),
			Timeout:    time.Duration(viper.GetInt("TRANSLATOR_TIMEOUT")) * time.Second,
		},

		// Redis configurations
		MemoryDBRedisURL:      viper.GetString("REDIS_URL"),
		MemoryDBRedisUsername: viper.GetString("REDIS_USERNAME"),
		MemoryDBRedisPassword: viper.GetString("REDIS_PASSWORD"),
		TranslationCacheTTL:   time.Duration(viper.GetInt("TRANSLATION_CACHE_TTL")) * time.Hour,

		MCPAddr:      viper.GetString("MCP_ADDR"),
		MCPTransport: viper.GetString("MCP_TRANSPORT"),

		// Application configurations
		AppEnv:   viper.GetString("APP_ENV"),
		LogLevel: viper.GetString("LOG_LEVEL"),
	}
}

// parseBoolFlag accepts "true" and "1" in any case, everything else is false.
func parseBoolFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true
	}
	return false
}
