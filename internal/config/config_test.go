package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
http:
  addr: ":9000"
db:
  driver: postgres
  dsn: "host=db user=app dbname=groups"
jwt:
  access_secret: a
  refresh_secret: b
  access_ttl: 5m
kafka:
  brokers: ["k1:9092"]
`), 0o600))

	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("JWT_REFRESH_TTL", "48h")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	// 文件里没写的保留默认值
	assert.Equal(t, "groups.events", cfg.Kafka.Topic)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	env := map[string]string{"REDIS_DB": "x", "JWT_ACCESS_TTL": "soon"}
	err := cfg.applyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "JWT_ACCESS_TTL")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "secrets missing")

	cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret = "same", "same"
	assert.Error(t, cfg.Validate())

	cfg.JWT.RefreshSecret = "other"
	assert.NoError(t, cfg.Validate())

	cfg.DB.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.DB.Driver, cfg.DB.DSN = "memory", ""
	assert.NoError(t, cfg.Validate())
}
