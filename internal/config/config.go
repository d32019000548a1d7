package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Email  EmailConfig
	Event  EventConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmailConfig struct {
	// ResendAPIKey may be empty: email sending is then skipped and
	// reported as not delivered, never failing a reservation.
	ResendAPIKey string
	From         string
}

type EventConfig struct {
	// Date is the event day in YYYY-MM-DD form.
	Date     string
	Location string
}

const (
	defaultEventDate     = "2025-09-12"
	defaultEventLocation = "Escola Estadual Exemplo - Ginásio / Stand B"
	defaultEmailFrom     = "Cookite JEPP <noreply@resend.dev>"
)

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		redisDB, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
		}
	}

	emailFrom := os.Getenv("EMAIL_FROM")
	if emailFrom == "" {
		emailFrom = defaultEmailFrom
	}

	eventDate := os.Getenv("EVENT_DATE")
	if eventDate == "" {
		eventDate = defaultEventDate
	}

	if _, err := time.Parse("2006-01-02", eventDate); err != nil {
		return nil, fmt.Errorf("%s: invalid EVENT_DATE: %w", op, err)
	}

	eventLocation := os.Getenv("EVENT_LOCATION")
	if eventLocation == "" {
		eventLocation = defaultEventLocation
	}

	return &Config{
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		Redis: RedisConfig{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         emailFrom,
		},
		Event: EventConfig{
			Date:     eventDate,
			Location: eventLocation,
		},
	}, nil
}
