package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	LiveKit LiveKitConfig
	Doctors DoctorsConfig
}

type AppConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// LiveKitConfig holds the credentials used to mint voice-room access tokens.
type LiveKitConfig struct {
	URL       string
	APIKey    string
	APISecret string
}

// DoctorsConfig carries the doctor allow-list as raw "email:Name:Department"
// entries separated by semicolons. Parsing happens in the doctor directory.
type DoctorsConfig struct {
	Allowlist string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine when everything comes from the environment.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	tokenExpiry, err := time.ParseDuration(viper.GetString("JWT_TOKEN_EXPIRY"))
	if err != nil {
		tokenExpiry = 24 * time.Hour
	}

	port := viper.GetString("APP_PORT")
	if port == "" {
		port = "8000"
	}

	config := &Config{
		App: AppConfig{
			Port:        port,
			Env:         viper.GetString("APP_ENV"),
			CORSOrigins: viper.GetStringSlice("CORS_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			TokenExpiry: tokenExpiry,
		},
		LiveKit: LiveKitConfig{
			URL:       viper.GetString("LIVEKIT_URL"),
			APIKey:    viper.GetString("LIVEKIT_API_KEY"),
			APISecret: viper.GetString("LIVEKIT_API_SECRET"),
		},
		Doctors: DoctorsConfig{
			Allowlist: viper.GetString("DOCTOR_ALLOWLIST"),
		},
	}

	return config, nil
}
