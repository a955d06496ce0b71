package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_HOST", "localhost")
	v.Set("DB_USER", "datepoint")
	v.Set("DB_NAME", "datepoint")
	v.Set("JWT_ACCESS_SECRET", "0123456789abcdef0123456789abcdef")
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(testViper(nil))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Rules.MaxActiveMatches)
	assert.Equal(t, 3, cfg.Rules.InitialMessageLimit)
	assert.Equal(t, 10, cfg.Rules.DateSuggestionThreshold)
	assert.Equal(t, 3, cfg.Rules.MaxVenueSuggestions)
	assert.Equal(t, 20, cfg.Rules.DiscoverPageSize)
	assert.Equal(t, 30, cfg.Rules.PhotoExpirationDays)
	assert.Equal(t, "UTC", cfg.Rules.DefaultTimezone)
	assert.Equal(t, 5*time.Minute, cfg.Redis.VenueCacheTTL)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
	}{
		{"short secret", map[string]any{"JWT_ACCESS_SECRET": "short"}, "at least 32"},
		{"missing db host", map[string]any{"DB_HOST": ""}, "database host"},
		{"memory needs no db", map[string]any{"DB_DRIVER": DriverMemory, "DB_HOST": ""}, ""},
		{"unknown driver", map[string]any{"DB_DRIVER": "mysql"}, "unknown database driver"},
		{"s3 without bucket", map[string]any{"STORAGE_TYPE": StorageS3}, "S3 bucket"},
		{"odd threshold", map[string]any{"RULES_DATE_SUGGESTION_THRESHOLD": 7}, "even number"},
		{"bad timezone", map[string]any{"RULES_DEFAULT_TIMEZONE": "Mars/Olympus"}, "timezone"},
		{"zero match cap", map[string]any{"RULES_MAX_ACTIVE_MATCHES": 0}, "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fromViper(testViper(tt.overrides)).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDSN())
}
