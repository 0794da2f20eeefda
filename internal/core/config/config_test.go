package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	p := writeConfig(t, `
db:
  dsn: "file::memory:"
jwt:
  secret: s3cret
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "gorm", c.DB.Migrations)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 8081, c.App.Admin.Port)
	assert.Equal(t, "go-gin-blog", c.JWT.Issuer)
	assert.Equal(t, 2*time.Hour, c.JWT.TTL())
	assert.Equal(t, time.Minute, c.Cache.TTL())
	assert.Equal(t, 10*time.Second, c.Limits.Timeout())
	assert.EqualValues(t, 1<<20, c.Limits.MaxBodyBytes)
}

func TestLoadReadsFileValues(t *testing.T) {
	p := writeConfig(t, `
app:
  name: blog
  http:
    port: 9000
db:
  driver: postgres
  dsn: postgres://blog:pw@localhost/blog
  migrations: sql
cache:
  enabled: true
  ttlSec: 5
redis:
  addr: localhost:6379
limits:
  rps: 10
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9000, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "sql", c.DB.Migrations)
	assert.True(t, c.Cache.Enabled)
	assert.Equal(t, 5*time.Second, c.Cache.TTL())
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
	assert.Equal(t, 10.0, c.Limits.RPS)
	assert.Equal(t, "blog", c.JWT.Issuer)
}

func TestLoadEnvOverride(t *testing.T) {
	p := writeConfig(t, `
db:
  dsn: "file::memory:"
`)
	t.Setenv("APP_DB_DSN", "blog.db")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "blog.db", c.DB.DSN)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "db:\n  driver: oracle\n  dsn: x\n"))
	assert.ErrorContains(t, err, "db.driver")

	_, err = Load(writeConfig(t, "db:\n  dsn: x\n  migrations: flyway\n"))
	assert.ErrorContains(t, err, "db.migrations")

	_, err = Load(writeConfig(t, "app:\n  name: blog\n"))
	assert.ErrorContains(t, err, "db.dsn")
}
