package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalSink writes dumps to the local filesystem. The protocol's dump
// command names a path relative to the sink's root; an empty root resolves
// against the process working directory.
//
// Writes go through a temp file plus rename so a crash mid-dump never leaves
// a truncated file under the final name.
type LocalSink struct {
	root string
}

// NewLocalSink creates a LocalSink rooted at the given directory.
func NewLocalSink(root string) *LocalSink {
	return &LocalSink{root: root}
}

// Put atomically writes data to name under the sink root.
func (s *LocalSink) Put(_ context.Context, name string, data []byte) error {
	path := filepath.Join(s.root, name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Get reads a dump back from the sink root.
func (s *LocalSink) Get(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	return data, nil
}
