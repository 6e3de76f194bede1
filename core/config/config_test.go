package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofi/sdk-go/core/presale"
	"github.com/robofi/sdk-go/core/types"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, types.DefaultPriceBoundaries, cfg.Buckets.Price)
	assert.Equal(t, types.DefaultRevenueBoundaries, cfg.Buckets.Revenue)

	buckets, err := cfg.Buckets.BucketTables()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultBuckets().Price.Keys(), buckets.Price.Keys())
	assert.Equal(t, types.DefaultBuckets().Revenue.Keys(), buckets.Revenue.Keys())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robofi.yaml")
	content := `
server:
  http_addr: ":9090"
  shutdown_timeout: 3s
log:
  level: debug
  encoding: json
catalog:
  path: /srv/robots.yaml
  watch: false
buckets:
  unit: USDC
  price: ["1000", "5000"]
  revenue: ["50"]
presale:
  end: "2026-12-31T12:00:00"
  token_price: 2 ETH
  supply: 100
  sold: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Equal(t, "/srv/robots.yaml", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.Watch)

	buckets, err := cfg.Buckets.BucketTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"0-1000", "1000-5000", "5000+"}, buckets.Price.Keys())
	assert.Equal(t, []string{"0-50", "50+"}, buckets.Revenue.Keys())
	assert.Equal(t, "Up to 1000 USDC", buckets.Price.Buckets[0].Label)

	terms, err := cfg.Presale.Terms(time.Now())
	require.NoError(t, err)
	assert.True(t, terms.EndTime().Equal(time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2 ETH", terms.TokenPrice.Raw)
	assert.Equal(t, "0.15 ETH", terms.MonthlyRevenue.Raw)
	assert.Equal(t, "95%", terms.Utilization.Raw)
	assert.Equal(t, 100, terms.Supply)
	assert.Equal(t, 60, terms.Available())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ROBOFI_SERVER_HTTP_ADDR", "127.0.0.1:7000")
	t.Setenv("ROBOFI_CATALOG_PATH", "robots.json")
	t.Setenv("ROBOFI_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.HTTPAddr)
	assert.Equal(t, "robots.json", cfg.Catalog.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestBucketTables_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BucketsConfig
		wantErr string
	}{
		{
			name:    "not increasing",
			cfg:     BucketsConfig{Price: []string{"2", "1"}, Revenue: []string{"1"}},
			wantErr: "price buckets",
		},
		{
			name:    "not a number",
			cfg:     BucketsConfig{Price: []string{"1"}, Revenue: []string{"lots"}},
			wantErr: "revenue buckets",
		},
		{
			name:    "empty",
			cfg:     BucketsConfig{Revenue: []string{"1"}},
			wantErr: "price buckets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.BucketTables()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBucketTables_DefaultUnit(t *testing.T) {
	buckets, err := BucketsConfig{Price: []string{"1"}, Revenue: []string{"1"}}.BucketTables()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultUnit, buckets.Price.Unit)
}

func TestPresaleTerms(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		terms, err := PresaleConfig{}.Terms(now)
		require.NoError(t, err)
		assert.Equal(t, presale.DefaultTerms(now), terms)
	})

	t.Run("invalid end", func(t *testing.T) {
		_, err := PresaleConfig{End: "soon"}.Terms(now)
		require.Error(t, err)
	})

	t.Run("invalid token price", func(t *testing.T) {
		_, err := PresaleConfig{TokenPrice: "free"}.Terms(now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token price")
	})

	t.Run("token counts", func(t *testing.T) {
		supply, sold := 20, 5
		terms, err := PresaleConfig{OwnershipShare: "5%", Supply: &supply, Sold: &sold}.Terms(now)
		require.NoError(t, err)
		assert.Equal(t, "5%", terms.OwnershipShare.Raw)
		assert.Equal(t, 15, terms.Available())
	})

	t.Run("oversold", func(t *testing.T) {
		sold := 51
		_, err := PresaleConfig{Sold: &sold}.Terms(now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "presale sold")
	})

	t.Run("invalid utilization", func(t *testing.T) {
		_, err := PresaleConfig{Utilization: "high"}.Terms(now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "utilization")
	})

	t.Run("invalid monthly revenue", func(t *testing.T) {
		_, err := PresaleConfig{MonthlyRevenue: "n/a"}.Terms(now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "monthly revenue")
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROBOFI_SERVER_MODE=debug\nROBOFI_CATALOG_WATCH=false\n"), 0o644))
	t.Setenv("ROBOFI_SERVER_MODE", "")
	os.Unsetenv("ROBOFI_SERVER_MODE")
	t.Setenv("ROBOFI_CATALOG_WATCH", "true")

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.True(t, cfg.Catalog.Watch, "variables already set win over the file")
}
