package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
)

func TestLoad_DefaultsWithoutConfigDir(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())

	cfg := config.Load()

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3000, cfg.Services.RequestServicePort)
	assert.Equal(t, 3001, cfg.Services.DonorServicePort)
	assert.Equal(t, 3004, cfg.Services.AdminServicePort)
	assert.Equal(t, 50.0, cfg.Matching.SearchRadiusKm)
	assert.Equal(t, 5, cfg.Matching.TopDonors)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("MATCHING_RADIUS_KM", "25.5")
	t.Setenv("MATCHING_TOP_DONORS", "10")
	t.Setenv("JWT_EXPIRY_MINUTES", "120")

	cfg := config.Load()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, 25.5, cfg.Matching.SearchRadiusKm)
	assert.Equal(t, 10, cfg.Matching.TopDonors)
	assert.Equal(t, 120, cfg.JWT.ExpiryMinutes)
}
