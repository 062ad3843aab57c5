package flush

import (
	"errors"
	"testing"

	"github.com/jonwraymond/typepipe/typemodel"
)

type failingMaterializer struct{ err error }

func (f failingMaterializer) Materialize(typemodel.MutableType, []typemodel.MutableType) (typemodel.Type, []typemodel.Type, error) {
	return nil, nil, f.err
}

func TestRecorder_RecordsAndFlushes(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(typemodel.NewMaterializer(), "config-1")
	customer := typemodel.NewType("Customer", nil)

	proxy := typemodel.NewMutableType("Customer_Proxy_1", customer)
	mixin := typemodel.NewMutableType("CustomerMixin", nil)
	if _, _, err := r.Materialize(proxy, []typemodel.MutableType{mixin}); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if r.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", r.Pending())
	}

	m := r.Manifest()
	if m.ConfigurationID != "config-1" || len(m.ProxyTypes) != 1 || m.ProxyTypes[0].RequestedType != "Customer" {
		t.Errorf("Manifest() = %+v", m)
	}

	path, err := r.Flush(dir)
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if path == "" {
		t.Fatal("expected a manifest path")
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() after flush = %d, want 0", r.Pending())
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.AdditionalTypes) != 1 || got.AdditionalTypes[0] != "CustomerMixin" {
		t.Errorf("AdditionalTypes = %v", got.AdditionalTypes)
	}

	path, err = r.Flush(dir)
	if err != nil || path != "" {
		t.Errorf("empty Flush() = %q, %v, want \"\", nil", path, err)
	}
}

func TestRecorder_SuccessiveFlushesCarryOnlyNewTypes(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(typemodel.NewMaterializer(), "config-1")
	customer := typemodel.NewType("Customer", nil)
	order := typemodel.NewType("Order", nil)

	_, _, _ = r.Materialize(typemodel.NewMutableType("Customer_Proxy_1", customer), nil)
	first, err := r.Flush(dir)
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	_, _, _ = r.Materialize(typemodel.NewMutableType("Order_Proxy_2", order), nil)
	second, err := r.Flush(dir)
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if first == second {
		t.Fatal("flushes should produce distinct files")
	}

	m, err := Read(second)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(m.ProxyTypes) != 1 || m.ProxyTypes[0].Name != "Order_Proxy_2" {
		t.Errorf("second manifest = %+v", m.ProxyTypes)
	}

	paths, _ := List(dir)
	if len(paths) != 2 || paths[0] != first {
		t.Errorf("List() = %v, want first flush sorted first", paths)
	}
}

func TestRecorder_FailuresNotRecorded(t *testing.T) {
	boom := errors.New("generator failed")
	r := NewRecorder(failingMaterializer{err: boom}, "config-1")

	_, _, err := r.Materialize(typemodel.NewMutableType("X", typemodel.NewType("Y", nil)), nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want generator error", err)
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", r.Pending())
	}
}
