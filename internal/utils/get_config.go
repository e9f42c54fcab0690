package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort      string `yaml:"APP_PORT"`
	LogFile      string `yaml:"LOG_FILE"`
	RateLimitMax int    `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DatabaseURL string `yaml:"DATABASE_URL"`
	DBUser      string `yaml:"DB_USER"`
	DBName      string `yaml:"DB_NAME"`
	DBPassword  string `yaml:"DB_PASSWORD"`
	DBPort      string `yaml:"DB_PORT"`
	DBHost      string `yaml:"DB_HOST"`

	// JWT signing key
	JWTSecret string `yaml:"JWT_SECRET"`

	// CORS allowlist
	FrontendURL    string `yaml:"FRONTEND_URL"`
	PostmanURL     string `yaml:"POSTMAN_URL"`
	AllowedOrigins string `yaml:"ALLOWED_ORIGINS"`

	// Redis backs the rate limiter when set
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads config.yaml (or the file named by CONFIG_PATH) once and
// lets environment variables override any key. Later calls are no-ops.
func LoadConfig() {
	configOnce.Do(func() {
		config = readConfig(configPath())
	})
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func readConfig(path string) Config {
	cfg := Config{
		AppPort:      "8080",
		LogFile:      "./logs/app.log",
		RateLimitMax: 10,
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &cfg); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	overrideFromEnv(&cfg)
	return cfg
}

func overrideFromEnv(cfg *Config) {
	strs := map[string]*string{
		"APP_PORT":        &cfg.AppPort,
		"LOG_FILE":        &cfg.LogFile,
		"DATABASE_URL":    &cfg.DatabaseURL,
		"DB_USER":         &cfg.DBUser,
		"DB_NAME":         &cfg.DBName,
		"DB_PASSWORD":     &cfg.DBPassword,
		"DB_PORT":         &cfg.DBPort,
		"DB_HOST":         &cfg.DBHost,
		"JWT_SECRET":      &cfg.JWTSecret,
		"FRONTEND_URL":    &cfg.FrontendURL,
		"POSTMAN_URL":     &cfg.PostmanURL,
		"ALLOWED_ORIGINS": &cfg.AllowedOrigins,
		"REDIS_ADDR":      &cfg.RedisAddr,
		"REDIS_PASSWORD":  &cfg.RedisPassword,
		"AWS_S3_BUCKET":   &cfg.AWSS3Bucket,
		"AWS_S3_REGION":   &cfg.AWSS3Region,
		"AWS_ACCESS_KEY":  &cfg.AWSAccessKey,
		"AWS_SECRET_KEY":  &cfg.AWSSecretKey,
	}
	for key, field := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("RATE_LIMIT_MAX"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Ignoring invalid RATE_LIMIT_MAX %q\n", v)
		} else {
			cfg.RateLimitMax = n
		}
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT_MAX":
		return strconv.Itoa(config.RateLimitMax)
	case "DATABASE_URL":
		return config.DatabaseURL
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
	case "FRONTEND_URL":
		return config.FrontendURL
	case "POSTMAN_URL":
		return config.PostmanURL
	case "ALLOWED_ORIGINS":
		return config.AllowedOrigins
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetRateLimitMax returns the per-second request budget per client; zero or
// less disables the limiter.
func GetRateLimitMax() int {
	return config.RateLimitMax
}

// GetAllowedOrigins returns every configured CORS origin plus the local
// development origins.
func GetAllowedOrigins() []string {
	origins := []string{
		config.FrontendURL,
		config.PostmanURL,
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	for _, o := range strings.Split(config.AllowedOrigins, ",") {
		origins = append(origins, strings.TrimSpace(o))
	}
	return origins
}
