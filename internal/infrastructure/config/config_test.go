package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sales-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "Asia/Seoul", cfg.App.Timezone)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "sales", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, time.Hour, cfg.Geo.CacheTTL)
		assert.Equal(t, []string{"KR"}, cfg.Geo.AllowedCountries)
		assert.Equal(t, "memory", cfg.Geo.CacheBackend)
		assert.Equal(t, "admin", cfg.Admin.Username)
		assert.False(t, cfg.Admin.Create)
	})

	t.Run("loads values from environment variables with SALES prefix", func(t *testing.T) {
		t.Setenv("SALES_APP_NAME", "test-app")
		t.Setenv("SALES_APP_PORT", "9000")
		t.Setenv("SALES_APP_TIMEZONE", "UTC")
		t.Setenv("SALES_DATABASE_HOST", "testdb.local")
		t.Setenv("SALES_DATABASE_PASSWORD", "testpass")
		t.Setenv("SALES_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("SALES_ADMIN_USERNAME", "root")
		t.Setenv("SALES_ADMIN_PASSWORD", "secret")
		t.Setenv("SALES_ADMIN_CREATE", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "UTC", cfg.App.Timezone)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, AdminConfig{Username: "root", Password: "secret", Create: true}, cfg.Admin)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("SALES_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("SALES_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown time zone", func(t *testing.T) {
		t.Setenv("SALES_APP_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.timezone")
	})
}

func TestFromViper(t *testing.T) {
	t.Run("report and geo lists", func(t *testing.T) {
		v := viper.New()
		v.Set("report.company_order", []string{"영현아이앤씨", "마이씨앤에스"})
		v.Set("report.excluded_companies", []string{"캐논"})
		v.Set("geo.allowed_countries", []string{"KR", "JP"})
		v.Set("geo.cache_ttl", "30m")

		cfg, err := fromViper(v)
		require.NoError(t, err)

		assert.Equal(t, []string{"영현아이앤씨", "마이씨앤에스"}, cfg.Report.CompanyOrder)
		assert.Equal(t, []string{"캐논"}, cfg.Report.ExcludedCompanies)
		assert.Equal(t, []string{"KR", "JP"}, cfg.Geo.AllowedCountries)
		assert.Equal(t, 30*time.Minute, cfg.Geo.CacheTTL)
	})

	t.Run("redis geo cache requires redis", func(t *testing.T) {
		v := viper.New()
		v.Set("geo.cache_backend", "redis")

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis.enabled")
	})

	t.Run("storage requires a bucket", func(t *testing.T) {
		v := viper.New()
		v.Set("storage.enabled", true)

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})
}

func TestValidate_Production(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "jwt.secret is required",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "short" },
			wantErr: "at least 32 characters",
		},
		{
			name:    "missing database password",
			mutate:  func(c *Config) { c.Database.Password = "" },
			wantErr: "database.password",
		},
		{
			name:    "wildcard cors",
			mutate:  func(c *Config) { c.HTTP.CORSAllowOrigins = []string{"*"} },
			wantErr: "cors_allow_origins",
		},
		{
			name:    "full sql in traces",
			mutate:  func(c *Config) { c.Telemetry.DBLogFullSQL = true },
			wantErr: "db_log_full_sql",
		},
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			cfg.App.Env = "production"
			cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
			cfg.Database.Password = "pw"
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "sales",
		Password: "p@ss/word",
		DBName:   "sales",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://sales:p%40ss%2Fword@db:5432/sales")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "timezone=UTC")
}
