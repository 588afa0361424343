package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Goals   GoalsConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// GatewayConfig points at the Supabase-style backend (PostgREST rows + GoTrue auth).
type GatewayConfig struct {
	ProjectURL string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	OTPEndpoint string
	OTPTTL      time.Duration
	AllowDevOTP bool
	DevOTPCode  string
}

type GoalsConfig struct {
	Source      string // "webhook" or "ollama"
	Endpoint    string
	OllamaURL   string
	OllamaModel string
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 15)
	viper.SetDefault("gateway.timeout", 30)
	viper.SetDefault("auth.token_ttl", 1440)
	viper.SetDefault("auth.otp_ttl", 5)
	viper.SetDefault("auth.allow_dev_otp", false)
	viper.SetDefault("goals.source", "webhook")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Gateway: GatewayConfig{
			ProjectURL: viper.GetString("gateway.project_url"),
			AnonKey:    viper.GetString("gateway.anon_key"),
			ServiceKey: viper.GetString("gateway.service_key"),
			Timeout:    viper.GetDuration("gateway.timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Auth: AuthConfig{
			JWTSecret:   viper.GetString("auth.jwt_secret"),
			TokenTTL:    viper.GetDuration("auth.token_ttl") * time.Minute,
			OTPEndpoint: viper.GetString("auth.otp_endpoint"),
			OTPTTL:      viper.GetDuration("auth.otp_ttl") * time.Minute,
			AllowDevOTP: viper.GetBool("auth.allow_dev_otp"),
			DevOTPCode:  viper.GetString("auth.dev_otp_code"),
		},
		Goals: GoalsConfig{
			Source:      viper.GetString("goals.source"),
			Endpoint:    viper.GetString("goals.endpoint"),
			OllamaURL:   viper.GetString("goals.ollama_url"),
			OllamaModel: viper.GetString("goals.ollama_model"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Env overrides for deploy targets that do not mount a config file.
	if url := os.Getenv("GATEWAY_PROJECT_URL"); url != "" {
		config.Gateway.ProjectURL = url
	}
	if key := os.Getenv("GATEWAY_ANON_KEY"); key != "" {
		config.Gateway.AnonKey = key
	}
	if key := os.Getenv("GATEWAY_SERVICE_KEY"); key != "" {
		config.Gateway.ServiceKey = key
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	if config.Gateway.ProjectURL == "" {
		return nil, fmt.Errorf("gateway.project_url is required")
	}
	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if config.Auth.AllowDevOTP && config.Auth.DevOTPCode == "" {
		return nil, fmt.Errorf("auth.dev_otp_code is required when auth.allow_dev_otp is set")
	}

	return config, nil
}
