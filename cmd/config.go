package cmd

import "time"

// Config carries the process configuration loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// LockAcquireTimeout bounds how long a request waits for a contended
	// order or partner before failing with a retryable error.
	LockAcquireTimeout time.Duration
}
