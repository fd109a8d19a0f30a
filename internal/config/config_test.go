package config_test

import (
	"testing"

	"ecadmin/internal/config"
	"ecadmin/internal/domain/orderview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SANITY_PROJECT_ID", "abc123")
	t.Setenv("SANITY_TOKEN", "sk-test")
	t.Setenv("AUTH_JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "production", cfg.Sanity.Dataset)
	assert.Equal(t, "2023-01-01", cfg.Sanity.APIVersion)
	assert.False(t, cfg.Sanity.UseCDN)
	assert.Equal(t, "/", cfg.AuthRedirectURL)
	assert.Equal(t, orderview.CountByCustomer, cfg.CustomerCountMode)
	assert.True(t, cfg.DeleteCustomerWithOrder)
	assert.Empty(t, cfg.AdminEmail)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GO_ENV", "prod")
	t.Setenv("ADMIN_EMAIL", "owner@shop.test")
	t.Setenv("SANITY_USE_CDN", "true")
	t.Setenv("CUSTOMER_COUNT_MODE", "order")
	t.Setenv("DELETE_CUSTOMER_WITH_ORDER", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "owner@shop.test", cfg.AdminEmail)
	assert.True(t, cfg.Sanity.UseCDN)
	assert.Equal(t, orderview.CountByRecord, cfg.CustomerCountMode)
	assert.False(t, cfg.DeleteCustomerWithOrder)
}

func TestLoad_RequiredErrors(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{name: "project", unset: "SANITY_PROJECT_ID", wantErr: "SANITY_PROJECT_ID is required"},
		{name: "token", unset: "SANITY_TOKEN", wantErr: "SANITY_TOKEN is required"},
		{name: "jwt", unset: "AUTH_JWT_SECRET", wantErr: "AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_BaseURLReplacesProjectID(t *testing.T) {
	setRequired(t)
	t.Setenv("SANITY_PROJECT_ID", "")
	t.Setenv("SANITY_BASE_URL", "http://localhost:4000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", cfg.Sanity.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("CUSTOMER_COUNT_MODE", "email")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CUSTOMER_COUNT_MODE")

	t.Setenv("CUSTOMER_COUNT_MODE", "")
	t.Setenv("GO_ENV", "staging")
	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GO_ENV")
}
