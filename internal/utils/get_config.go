package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort   string `yaml:"APP_PORT"`
	AppURL    string `yaml:"APP_URL"`
	LogFile   string `yaml:"LOG_FILE"`
	RateLimit string `yaml:"RATE_LIMIT"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`
	DBTimezone string `yaml:"DB_TIMEZONE"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Image storage: local, s3 or minio
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	MediaRoot     string `yaml:"MEDIA_ROOT"`
	MediaURL      string `yaml:"MEDIA_URL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// MinIO configuration
	MinioEndpoint  string `yaml:"MINIO_ENDPOINT"`
	MinioAccessKey string `yaml:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `yaml:"MINIO_SECRET_KEY"`
	MinioBucket    string `yaml:"MINIO_BUCKET"`
	MinioUseSSL    bool   `yaml:"MINIO_USE_SSL"`
	MinioPublicURL string `yaml:"MINIO_PUBLIC_URL"`
}

var config Config

func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetConfig returns the value loaded from config.yaml, falling back to the
// environment variable of the same name when the file left it empty.
func GetConfig(key string) string {
	if v := fromFile(key); v != "" {
		return v
	}
	return os.Getenv(key)
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT":
		return config.RateLimit
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "DB_TIMEZONE":
		return config.DBTimezone
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "MEDIA_ROOT":
		return config.MediaRoot
	case "MEDIA_URL":
		return config.MediaURL
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "MINIO_ENDPOINT":
		return config.MinioEndpoint
	case "MINIO_ACCESS_KEY":
		return config.MinioAccessKey
	case "MINIO_SECRET_KEY":
		return config.MinioSecretKey
	case "MINIO_BUCKET":
		return config.MinioBucket
	case "MINIO_USE_SSL":
		if !config.MinioUseSSL {
			return ""
		}
		return getBoolString(config.MinioUseSSL)
	case "MINIO_PUBLIC_URL":
		return config.MinioPublicURL
	default:
		return ""
	}
}

func GetConfigOr(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}
