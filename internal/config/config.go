package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	OTP struct {
		TTLMinutes      int `mapstructure:"ttl_minutes"`
		CooldownSeconds int `mapstructure:"cooldown_seconds"`
		MaxAttempts     int `mapstructure:"max_attempts"`
		MaxPerWindow    int `mapstructure:"max_per_window"`
		WindowMinutes   int `mapstructure:"window_minutes"`
	} `mapstructure:"otp"`

	SMS struct {
		Fast2SMSKey string `mapstructure:"fast2sms_key"`
		Route       string `mapstructure:"route"`
		SenderID    string `mapstructure:"sender_id"`
		TemplateID  string `mapstructure:"template_id"`
	} `mapstructure:"sms"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "stockgyan-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "stockgyan_db")
	v.SetDefault("otp.ttl_minutes", 5)
	v.SetDefault("otp.cooldown_seconds", 30)
	v.SetDefault("otp.max_attempts", 5)
	v.SetDefault("otp.max_per_window", 5)
	v.SetDefault("otp.window_minutes", 60)
	v.SetDefault("sms.route", "q")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not found in config or environment")
		}
	}

	// The SMS delivery credential is read from the environment only. Provider
	// selection happens once at startup: key present = real delivery, key
	// absent = test-mode provider with the fixed fallback code. There is no
	// runtime toggle between the two.
	if key := os.Getenv("FAST2SMS_API_KEY"); key != "" {
		cfg.SMS.Fast2SMSKey = key
	}

	return &cfg
}
