package flush

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

// SchemaVersion is the manifest format version. Increment it when Manifest
// changes incompatibly.
const SchemaVersion uint16 = 1

// Extension is the file extension of flushed manifests.
const Extension = ".tpm"

// ProxyEntry names one generated proxy type and the type it was generated
// for.
type ProxyEntry struct {
	Name          string
	RequestedType string
}

// Manifest describes one flushed assembly.
type Manifest struct {
	Schema          uint16
	ConfigurationID string
	ProxyTypes      []ProxyEntry
	AdditionalTypes []string
}

// Empty reports whether the manifest names no types.
func (m *Manifest) Empty() bool {
	return len(m.ProxyTypes) == 0 && len(m.AdditionalTypes) == 0
}

// Write encodes m to path. The file is replaced atomically.
func Write(path string, m *Manifest) (err error) {
	if m == nil {
		return ErrNilManifest
	}
	if m.Schema == 0 {
		m.Schema = SchemaVersion
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("flush: create directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("flush: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("flush: encode manifest: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("flush: close manifest: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("flush: rename manifest: %w", err)
	}
	return nil
}

// Read decodes the manifest at path.
func Read(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("flush: open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	var m Manifest
	if err := msgpack.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("flush: decode %s: %w", filepath.Base(path), err)
	}
	if m.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %s has schema %d, want %d", ErrSchemaMismatch, filepath.Base(path), m.Schema, SchemaVersion)
	}
	return &m, nil
}

// ReadDir decodes every manifest in dir in parallel. Results are ordered by
// file name. A missing directory yields no manifests.
func ReadDir(ctx context.Context, dir string) ([]*Manifest, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]*Manifest, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := Read(path)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// List returns the manifest paths in dir sorted by file name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("flush: read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
