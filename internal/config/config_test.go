package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 250, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 8081, cfg.API.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_PAGE_SIZE", "20")
	t.Setenv("PAGINATION_MAX_PAGE_SIZE", "100")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_RejectsInconsistentPageSizes(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_PAGE_SIZE", "100")
	t.Setenv("PAGINATION_MAX_PAGE_SIZE", "10")

	_, err := Load()
	assert.Error(t, err)
}

func TestPaginationConfig_Validate(t *testing.T) {
	assert.Error(t, PaginationConfig{DefaultPageSize: 0, MaxPageSize: 10}.Validate())
	assert.NoError(t, PaginationConfig{DefaultPageSize: 10, MaxPageSize: 10}.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		Name:     "n",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", c.DSN())
}
