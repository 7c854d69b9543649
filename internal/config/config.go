// apps/solver/internal/config/config.go
//
// Environment configuration.
// Values come from the process environment; a .env file in the working
// directory is loaded first when present (development convenience).
//
// Environment variables:
//   PORT=5175
//   LOG_LEVEL=info
//   WORDS_ANSWERS_FILE=/path/to/answers.txt   (embedded corpus when empty)
//   ENTROPY_FILE=/path/to/initial_entropy.csv (optional round-0 cache)
//   DB_PATH=./data/solver.db
//   JWT_SECRET=dev_secret_change_me
//   JWT_EXPIRES_DAYS=14
//   ADMIN_PASSWORD_HASH=<bcrypt hash>         (admin login disabled when empty)
//   CLIENT_ORIGIN=http://localhost:5173
//   SIM_WORKERS=0                             (0 = GOMAXPROCS)

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the resolved runtime configuration.
type Config struct {
	Port              string
	LogLevel          string
	AnswersFile       string
	EntropyFile       string
	DBPath            string
	JWTSecret         string
	JWTExpiresDays    int
	AdminPasswordHash string
	ClientOrigin      string
	SimWorkers        int
}

// Load reads .env (if any) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment without touching .env.
func FromEnv() Config {
	return Config{
		Port:              getEnv("PORT", "5175"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AnswersFile:       os.Getenv("WORDS_ANSWERS_FILE"),
		EntropyFile:       os.Getenv("ENTROPY_FILE"),
		DBPath:            getEnv("DB_PATH", "./data/solver.db"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays:    getEnvInt("JWT_EXPIRES_DAYS", 14),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SimWorkers:        getEnvInt("SIM_WORKERS", 0),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses k as an int, falling back to def when unset or malformed.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
