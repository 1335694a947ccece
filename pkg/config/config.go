package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Finder   FinderConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	PoolSize      int
	MinIdleConns  int
}

// FinderConfig holds the environment overrides for the game finder engine.
// Zero values mean "keep the engine default".
type FinderConfig struct {
	Profile             string
	TotalRounds         int
	BudgetThreshold     float64
	PremiumThreshold    float64
	RecommendationCount int
	SecondaryCount      int
	Jitter              bool
	Seed                int64
	SessionTTL          time.Duration
	// memory, redis or postgres
	SessionStore string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	redisPool, err := getEnvInt("REDIS_POOL_SIZE", 10)
	if err != nil || redisPool <= 0 {
		return nil, errors.New("invalid redis pool size")
	}

	totalRounds, err := getEnvInt("FINDER_TOTAL_ROUNDS", 0)
	if err != nil {
		return nil, errors.New("invalid finder total rounds")
	}

	budget, err := getEnvFloat("FINDER_BUDGET_THRESHOLD", 0)
	if err != nil {
		return nil, errors.New("invalid finder budget threshold")
	}

	premium, err := getEnvFloat("FINDER_PREMIUM_THRESHOLD", 0)
	if err != nil {
		return nil, errors.New("invalid finder premium threshold")
	}

	recoCount, err := getEnvInt("FINDER_RECOMMENDATION_COUNT", 0)
	if err != nil {
		return nil, errors.New("invalid finder recommendation count")
	}

	secondaryCount, err := getEnvInt("FINDER_SECONDARY_COUNT", 0)
	if err != nil {
		return nil, errors.New("invalid finder secondary count")
	}

	seed, err := strconv.ParseInt(getEnv("FINDER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid finder seed")
	}

	sessionTTL, err := time.ParseDuration(getEnv("FINDER_SESSION_TTL", "30m"))
	if err != nil {
		return nil, errors.New("invalid finder session ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Retro Game Finder API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "retro_finder"),
			SSLMode:     getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnvBool("REDIS_ENABLED", false),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			PoolSize:      redisPool,
			MinIdleConns:  redisPool / 2,
		},
		Finder: FinderConfig{
			Profile:             getEnv("FINDER_PROFILE", "default"),
			TotalRounds:         totalRounds,
			BudgetThreshold:     budget,
			PremiumThreshold:    premium,
			RecommendationCount: recoCount,
			SecondaryCount:      secondaryCount,
			Jitter:              getEnvBool("FINDER_JITTER", true),
			Seed:                seed,
			SessionTTL:          sessionTTL,
			SessionStore:        strings.ToLower(getEnv("FINDER_SESSION_STORE", "memory")),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	switch cfg.Finder.SessionStore {
	case "memory", "postgres":
	case "redis":
		cfg.Redis.Enabled = true
	default:
		return nil, errors.New("invalid finder session store")
	}

	if cfg.Finder.TotalRounds < 0 {
		return nil, errors.New("finder total rounds cannot be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.ParseFloat(val, 64)
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}
