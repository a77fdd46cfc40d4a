package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, StoreDriverPostgres, cfg.Trivia.StoreDriver)
	assert.Equal(t, 10, cfg.Trivia.QuestionsPerPage)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("QUESTIONS_PER_PAGE", "25")
	t.Setenv("QUIZ_SEED", "42")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Trivia.StoreDriver)
	assert.Equal(t, 25, cfg.Trivia.QuestionsPerPage)
	assert.Equal(t, uint64(42), cfg.Trivia.QuizSeed)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoadRejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("QUESTIONS_PER_PAGE", "0")
	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "QUESTIONS_PER_PAGE")
}

func TestPostgresDSN(t *testing.T) {
	pg := Postgres{Host: "db", Port: 5433, User: "u", Password: "p", Database: "trivia", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=trivia sslmode=disable", pg.DSN())
}
