package flush

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonwraymond/typepipe/assembler"
	"github.com/jonwraymond/typepipe/typemodel"
)

// Recorder is a typemodel.Materializer that remembers every type the wrapped
// materializer produces until it is flushed.
type Recorder struct {
	inner    typemodel.Materializer
	configID string

	mu         sync.Mutex
	proxies    []ProxyEntry
	additional []string
	seq        int
}

// NewRecorder wraps inner. configID is stamped on every flushed manifest.
func NewRecorder(inner typemodel.Materializer, configID string) *Recorder {
	return &Recorder{inner: inner, configID: configID}
}

// Materialize implements typemodel.Materializer.
func (r *Recorder) Materialize(proxy typemodel.MutableType, additional []typemodel.MutableType) (typemodel.Type, []typemodel.Type, error) {
	generated, extra, err := r.inner.Materialize(proxy, additional)
	if err != nil {
		return nil, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.proxies = append(r.proxies, ProxyEntry{
		Name:          generated.Name(),
		RequestedType: typemodel.NameOf(assembler.RequestedTypeOf(generated)),
	})
	for _, t := range extra {
		r.additional = append(r.additional, t.Name())
	}
	return generated, extra, nil
}

// Pending returns how many types were generated since the last flush.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.proxies) + len(r.additional)
}

// Manifest returns a snapshot of the types generated since the last flush.
func (r *Recorder) Manifest() *Manifest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() *Manifest {
	return &Manifest{
		Schema:          SchemaVersion,
		ConfigurationID: r.configID,
		ProxyTypes:      append([]ProxyEntry(nil), r.proxies...),
		AdditionalTypes: append([]string(nil), r.additional...),
	}
}

// Flush writes the pending types to a new manifest in dir and returns its
// path. The recording is reset only when the write succeeds. When nothing is
// pending no file is written and "" is returned.
func (r *Recorder) Flush(dir string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.snapshotLocked()
	if m.Empty() {
		return "", nil
	}

	r.seq++
	name := fmt.Sprintf("assembly-%s-%04d%s", time.Now().UTC().Format("20060102T150405"), r.seq, Extension)
	path := filepath.Join(dir, name)
	if err := Write(path, m); err != nil {
		return "", err
	}

	r.proxies = nil
	r.additional = nil
	return path, nil
}

var _ typemodel.Materializer = (*Recorder)(nil)
