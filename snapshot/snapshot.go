// Package snapshot serializes a point-in-time view of the store to a
// pluggable sink and restores one at startup.
//
// A dump is a single JSON object mapping each id to its component array,
// produced through codec.Codec. Targets whose name ends in ".zst" are
// transparently zstd-compressed.
package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/FaizChishtie/vemcache/codec"
	"github.com/FaizChishtie/vemcache/store"
	"github.com/FaizChishtie/vemcache/vector"
)

// Sink receives finished dumps. Implementations must write atomically: a
// partially written dump must never be observable under its final name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Source reads dumps back for restore.
type Source interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Storage combines Sink and Source for backends that support both
// directions. LocalSink and MinioSink do.
type Storage interface {
	Sink
	Source
}

// Encode renders entries as the dump wire format.
func Encode(entries []store.Entry, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	m := make(map[string]vector.Vector, len(entries))
	for _, e := range entries {
		m[e.ID] = e.Vector
	}
	return c.Marshal(m)
}

// Decode parses a dump back into id→vector form.
func Decode(data []byte, c codec.Codec) (map[string]vector.Vector, error) {
	if c == nil {
		c = codec.Default
	}
	var m map[string]vector.Vector
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return m, nil
}

// Writer dumps store snapshots to a sink.
type Writer struct {
	sink  Sink
	codec codec.Codec
}

// NewWriter creates a Writer. A nil codec falls back to codec.Default.
func NewWriter(sink Sink, c codec.Codec) *Writer {
	if c == nil {
		c = codec.Default
	}
	return &Writer{sink: sink, codec: c}
}

// Dump encodes entries and writes them to the sink under name,
// zstd-compressing when the name carries a ".zst" suffix.
func (w *Writer) Dump(ctx context.Context, name string, entries []store.Entry) error {
	data, err := Encode(entries, w.codec)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if compressed(name) {
		data, err = compress(data)
		if err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
	}
	if err := w.sink.Put(ctx, name, data); err != nil {
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	return nil
}

// Restore reads the dump stored under name and loads every vector into st
// via NamedInsert. Existing keys are overwritten.
func Restore(ctx context.Context, src Source, name string, c codec.Codec, st *store.Store) error {
	data, err := src.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("read snapshot %q: %w", name, err)
	}
	if compressed(name) {
		data, err = decompress(data)
		if err != nil {
			return fmt.Errorf("decompress snapshot %q: %w", name, err)
		}
	}
	m, err := Decode(data, c)
	if err != nil {
		return err
	}
	for id, v := range m {
		if len(v) == 0 {
			return fmt.Errorf("snapshot %q: empty vector for id %q", name, id)
		}
	}
	for id, v := range m {
		st.NamedInsert(id, v)
	}
	return nil
}

func compressed(name string) bool {
	return strings.HasSuffix(name, ".zst")
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
