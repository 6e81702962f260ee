package vemcache

import (
	"log/slog"

	"github.com/FaizChishtie/vemcache/codec"
	"github.com/FaizChishtie/vemcache/snapshot"
)

type options struct {
	codec   codec.Codec
	logger  *Logger
	storage snapshot.Storage
}

// Option configures DB construction.
type Option func(*options)

// WithCodec configures the codec used for snapshot encoding.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSnapshotStorage configures where dump writes and restore reads go.
// Without it, Dump and Restore fail with ErrNoSnapshotStorage.
func WithSnapshotStorage(s snapshot.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to keep the noop logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:  codec.Default,
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
