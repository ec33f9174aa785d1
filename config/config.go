package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	EmailHost     string
	EmailPort     int
	EmailUser     string
	EmailPassword string

	Port string
}

func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	emailPort := 587
	if v := os.Getenv("EMAIL_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EMAIL_PORT: %v", err)
		}
		emailPort = p
	}

	return &Config{
		DBHost:        getEnv("PGHOST", "localhost"),
		DBPort:        getEnv("PGPORT", "5432"),
		DBUser:        getEnv("PGUSER", "postgres"),
		DBPassword:    os.Getenv("PGPASSWORD"),
		DBName:        getEnv("PGDATABASE", "finku"),
		JWTSecret:     jwtSecret,
		EmailHost:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:     emailPort,
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		Port:          getEnv("PORT", "5000"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// MailEnabled сообщает, заданы ли SMTP-учётные данные
func (c *Config) MailEnabled() bool {
	return c.EmailUser != "" && c.EmailPassword != ""
}
