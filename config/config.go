// Package config loads server configuration from VEMCACHE_* environment
// variables. The core never produces configuration; it only consumes these
// values at process start.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/FaizChishtie/vemcache/codec"
)

// Config is the process configuration.
type Config struct {
	Host   string
	Port   int
	Secret string

	// RateLimit paces each connection in commands per second; zero
	// disables pacing.
	RateLimit float64
	RateBurst int

	// SnapshotDir is the root the dump command writes under when no
	// object store is configured.
	SnapshotDir string
	// RestoreFile, when set, names a snapshot loaded into the store at
	// startup.
	RestoreFile string
	// Codec names the snapshot encoding, resolved through codec.ByName.
	Codec string

	// S3-compatible snapshot storage. When Endpoint is set it replaces
	// the local snapshot directory.
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
	S3Secure    bool

	// LogFormat is "text" or "json"; LogLevel is "debug", "info", "warn"
	// or "error".
	LogFormat string
	LogLevel  string
}

// Load reads the VEMCACHE_* environment through viper.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VEMCACHE")
	v.AutomaticEnv()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 7070)
	v.SetDefault("secret", "")
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 16)
	v.SetDefault("snapshot_dir", ".")
	v.SetDefault("restore_file", "")
	v.SetDefault("codec", "json")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_prefix", "")
	v.SetDefault("s3_secure", true)
	v.SetDefault("log_format", "text")
	v.SetDefault("log_level", "info")

	cfg := &Config{
		Host:        v.GetString("host"),
		Port:        v.GetInt("port"),
		Secret:      v.GetString("secret"),
		RateLimit:   v.GetFloat64("rate_limit"),
		RateBurst:   v.GetInt("rate_burst"),
		SnapshotDir: v.GetString("snapshot_dir"),
		RestoreFile: v.GetString("restore_file"),
		Codec:       v.GetString("codec"),
		S3Endpoint:  v.GetString("s3_endpoint"),
		S3Bucket:    v.GetString("s3_bucket"),
		S3AccessKey: v.GetString("s3_access_key"),
		S3SecretKey: v.GetString("s3_secret_key"),
		S3Prefix:    v.GetString("s3_prefix"),
		S3Secure:    v.GetBool("s3_secure"),
		LogFormat:   v.GetString("log_format"),
		LogLevel:    v.GetString("log_level"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.S3Endpoint != "" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 endpoint configured without a bucket")
	}
	if _, ok := codec.ByName(cfg.Codec); !ok {
		return nil, fmt.Errorf("unknown codec %q", cfg.Codec)
	}

	return cfg, nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
