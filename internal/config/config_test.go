package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "WORDS_ANSWERS_FILE", "DB_PATH", "JWT_EXPIRES_DAYS", "SIM_WORKERS"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.AnswersFile)
	assert.Equal(t, "./data/solver.db", c.DBPath)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Zero(t, c.SimWorkers)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRES_DAYS", "3")
	t.Setenv("SIM_WORKERS", "not-a-number")
	c := FromEnv()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 3, c.JWTExpiresDays)
	assert.Zero(t, c.SimWorkers)
}
