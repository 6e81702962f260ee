package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaizChishtie/vemcache/codec"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "0.0.0.0:7070", cfg.Addr())
	assert.Empty(t, cfg.Secret)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, ".", cfg.SnapshotDir)
	assert.Equal(t, "json", cfg.Codec)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VEMCACHE_HOST", "127.0.0.1")
	t.Setenv("VEMCACHE_PORT", "9000")
	t.Setenv("VEMCACHE_SECRET", "hunter2")
	t.Setenv("VEMCACHE_RATE_LIMIT", "100")
	t.Setenv("VEMCACHE_SNAPSHOT_DIR", "/var/lib/vemcache")
	t.Setenv("VEMCACHE_RESTORE_FILE", "dump.json")
	t.Setenv("VEMCACHE_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "hunter2", cfg.Secret)
	assert.Equal(t, 100.0, cfg.RateLimit)
	assert.Equal(t, "/var/lib/vemcache", cfg.SnapshotDir)
	assert.Equal(t, "dump.json", cfg.RestoreFile)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestCodecName(t *testing.T) {
	t.Setenv("VEMCACHE_CODEC", "go-json")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "go-json", cfg.Codec)

	c, ok := codec.ByName(cfg.Codec)
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	t.Setenv("VEMCACHE_CODEC", "msgpack")
	_, err = Load()
	require.Error(t, err)
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("VEMCACHE_PORT", "-1")
	_, err := Load()
	require.Error(t, err)
}

func TestS3RequiresBucket(t *testing.T) {
	t.Setenv("VEMCACHE_S3_ENDPOINT", "localhost:9000")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("VEMCACHE_S3_BUCKET", "snapshots")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "snapshots", cfg.S3Bucket)
}
