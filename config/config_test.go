package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_DRIVER", "STORAGE_DRIVER", "KAFKA_LOG_ONLY"} {
		t.Setenv(key, "")
	}

	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "5002", config.Server.Port)
	assert.Equal(t, "mysql", config.Database.Driver)
	assert.Equal(t, "disk", config.Storage.Driver)
	assert.Equal(t, 5, config.Storage.MaxImages)
	assert.Equal(t, int64(5<<20), config.Storage.MaxImageSize)
	assert.False(t, config.Kafka.LogOnly)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
database:
  driver: postgres
  host: db
  port: "5432"
  username: shop
  password: pw
  database: store
redis:
  addr: cache:6379
  ttl: 30s
admins:
  - adminname: root
    adminpass: secret
`)
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_LOG_ONLY", "true")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "postgres", config.Database.Driver)
	assert.Equal(t, "cache:6379", config.Redis.Addr)
	assert.Equal(t, 30*time.Second, config.Redis.TTL)
	assert.Equal(t, 2, config.Redis.Database)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, config.Kafka.Brokers)
	assert.True(t, config.Kafka.LogOnly)
	assert.Equal(t, []AdminSeed{{Adminname: "root", Adminpass: "secret"}}, config.Admins)

	dsn, err := config.Database.DatabaseDSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db user=shop password=pw dbname=store port=5432 sslmode=disable", dsn)
}

func TestLoadConfigBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "two")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	mysqlDSN, err := DatabaseConfig{Driver: "mysql", Username: "root", Password: "pw", Host: "h", Port: "3306", Database: "d"}.DatabaseDSN()
	require.NoError(t, err)
	assert.Equal(t, "root:pw@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local", mysqlDSN)

	dsn, err := DatabaseConfig{Driver: "oracle", DSN: "explicit"}.DatabaseDSN()
	require.NoError(t, err)
	assert.Equal(t, "explicit", dsn)

	_, err = DatabaseConfig{Driver: "oracle"}.DatabaseDSN()
	assert.Error(t, err)
}
