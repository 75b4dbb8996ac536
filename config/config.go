package config

import (
	"net/url"
	"time"

	"emoshown/internal/analytics"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion          string `mapstructure:"GENERAL_VERSION"`
	Environment             string `mapstructure:"ENVIRONMENT"`
	ServerPort              int    `mapstructure:"SERVER_PORT"`
	DatabaseHost            string `mapstructure:"DB_HOST"`
	DatabasePort            int    `mapstructure:"DB_PORT"`
	DatabaseName            string `mapstructure:"DB_NAME"`
	DatabaseUser            string `mapstructure:"DB_USER"`
	DatabasePassword        string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress    string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort       int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset      int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins        string `mapstructure:"CORS_ALLOW_ORIGINS"`
	AuthJWTSecret           string `mapstructure:"AUTH_JWT_SECRET"`
	AuthJWTIssuer           string `mapstructure:"AUTH_JWT_ISSUER"`
	SentimentServiceURL     string `mapstructure:"SENTIMENT_SERVICE_URL"`
	SentimentTimeoutSeconds int    `mapstructure:"SENTIMENT_TIMEOUT_SECONDS"`
	RecommendationStrategy  string `mapstructure:"RECOMMENDATION_STRATEGY"`
	SchedulerEnabled        bool   `mapstructure:"SCHEDULER_ENABLED"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"AUTH_JWT_SECRET", "AUTH_JWT_ISSUER",
	"SENTIMENT_SERVICE_URL", "SENTIMENT_TIMEOUT_SECONDS",
	"RECOMMENDATION_STRATEGY", "SCHEDULER_ENABLED",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()
	setDefaults()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"strategy", config.RecommendationStrategy,
		"scheduler", config.SchedulerEnabled,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("SENTIMENT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RECOMMENDATION_STRATEGY", string(analytics.StrategyWeighted))
	viper.SetDefault("SCHEDULER_ENABLED", false)
}

func (c Config) SentimentTimeout() time.Duration {
	return time.Duration(c.SentimentTimeoutSeconds) * time.Second
}

func (c Config) DefaultStrategy() analytics.StrategyName {
	name, err := analytics.ParseStrategyName(c.RecommendationStrategy)
	if err != nil {
		return analytics.StrategyWeighted
	}
	return name
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.AuthJWTSecret == "" {
		return log.ErrMsg("Fatal error: AUTH_JWT_SECRET is required")
	}

	if config.SentimentServiceURL == "" {
		return log.ErrMsg("Fatal error: SENTIMENT_SERVICE_URL is required")
	}

	parsed, err := url.Parse(config.SentimentServiceURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return log.Error(
			"Fatal error: invalid SENTIMENT_SERVICE_URL",
			"url", config.SentimentServiceURL,
		)
	}

	if config.SentimentTimeoutSeconds <= 0 {
		return log.Error(
			"Fatal error: invalid SENTIMENT_TIMEOUT_SECONDS",
			"seconds", config.SentimentTimeoutSeconds,
		)
	}

	if _, err := analytics.ParseStrategyName(config.RecommendationStrategy); err != nil {
		return log.Err(
			"Fatal error: invalid RECOMMENDATION_STRATEGY",
			err,
			"strategy", config.RecommendationStrategy,
		)
	}

	ConfigInstance = config
	return nil
}
