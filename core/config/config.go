package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/robofi/sdk-go/core/logging"
	"github.com/robofi/sdk-go/core/presale"
	"github.com/robofi/sdk-go/core/types"
)

type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Log     logging.Config `mapstructure:"log"`
	Catalog CatalogConfig  `mapstructure:"catalog"`
	Buckets BucketsConfig  `mapstructure:"buckets"`
	Presale PresaleConfig  `mapstructure:"presale"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mode            string        `mapstructure:"mode"`
}

type CatalogConfig struct {
	// Path to a YAML or JSON catalog. Empty serves the built-in mock robots.
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

type BucketsConfig struct {
	Unit    string   `mapstructure:"unit"`
	Price   []string `mapstructure:"price"`
	Revenue []string `mapstructure:"revenue"`
}

type PresaleConfig struct {
	// End is a UTC date-time such as "2026-12-31T12:00:00". Empty starts a
	// default-length presale at process start.
	End            string `mapstructure:"end"`
	TokenPrice     string `mapstructure:"token_price"`
	MonthlyRevenue string `mapstructure:"monthly_revenue"`
	Utilization    string `mapstructure:"utilization"`
	OwnershipShare string `mapstructure:"ownership_share"`
	// Token counts; nil keeps the default sale.
	Supply *int `mapstructure:"supply"`
	Sold   *int `mapstructure:"sold"`
}

// LoadDotEnv copies variables from .env style files into the environment
// without overriding ones already set. Missing files are ignored; with no
// paths ".env" in the working directory is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "load %s", path)
		}
	}
	return nil
}

// Load reads path (if non-empty) and ROBOFI_* environment variables.
// Nested keys map to env names with "." replaced by "_", e.g.
// ROBOFI_SERVER_HTTP_ADDR.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ROBOFI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", true)
	v.SetDefault("buckets.unit", types.DefaultUnit)
	v.SetDefault("buckets.price", types.DefaultPriceBoundaries)
	v.SetDefault("buckets.revenue", types.DefaultRevenueBoundaries)
	v.SetDefault("presale.end", "")
	v.SetDefault("presale.token_price", "1.5 ETH")
	v.SetDefault("presale.monthly_revenue", "0.15 ETH")
	v.SetDefault("presale.utilization", "95%")
	v.SetDefault("presale.ownership_share", "10%")
	v.SetDefault("presale.supply", 50)
	v.SetDefault("presale.sold", 15)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// BucketTables builds the price and revenue tables from the configured
// boundaries
func (c BucketsConfig) BucketTables() (types.Buckets, error) {
	unit := c.Unit
	if unit == "" {
		unit = types.DefaultUnit
	}

	price, err := types.NewBucketTable(unit, c.Price...)
	if err != nil {
		return types.Buckets{}, errors.Wrap(err, "price buckets")
	}
	revenue, err := types.NewBucketTable(unit, c.Revenue...)
	if err != nil {
		return types.Buckets{}, errors.Wrap(err, "revenue buckets")
	}
	return types.Buckets{Price: price, Revenue: revenue}, nil
}

// Terms resolves the presale section. Unlike catalog amounts, prices that do
// not parse are an error.
func (c PresaleConfig) Terms(now time.Time) (presale.Terms, error) {
	terms := presale.DefaultTerms(now)
	if c.End != "" {
		end, err := presale.ParseEnd(c.End)
		if err != nil {
			return presale.Terms{}, errors.WithStack(err)
		}
		terms.End = end
	}
	for _, f := range []struct {
		name   string
		raw    string
		target *types.Amount
	}{
		{"token price", c.TokenPrice, &terms.TokenPrice},
		{"monthly revenue", c.MonthlyRevenue, &terms.MonthlyRevenue},
		{"utilization", c.Utilization, &terms.Utilization},
		{"ownership share", c.OwnershipShare, &terms.OwnershipShare},
	} {
		if f.raw == "" {
			continue
		}
		*f.target = types.ParseAmount(f.raw)
		if !f.target.Valid() {
			return presale.Terms{}, errors.Errorf("invalid presale %s %q", f.name, f.raw)
		}
	}
	if c.Supply != nil {
		terms.Supply = *c.Supply
	}
	if c.Sold != nil {
		terms.Sold = *c.Sold
	}
	if err := terms.Validate(); err != nil {
		return presale.Terms{}, errors.WithStack(err)
	}
	return terms, nil
}
