package cmd

import (
	"fmt"
	"time"
)

// Config carries the environment configuration of the fulfillment service.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL         string
	PlatformBaseURL string

	LogLevel string

	// HandlerTimeout bounds the processing of a single consumed event.
	HandlerTimeout time.Duration

	// RatingPromptDelay is how long after delivery the customer is asked to
	// rate the purchase.
	RatingPromptDelay time.Duration
}

// DBConnectionString builds the postgres DSN.
func (c Config) DBConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
