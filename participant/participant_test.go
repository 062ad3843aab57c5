package participant

import (
	"errors"
	"testing"

	"github.com/jonwraymond/typepipe/cachekey"
	"github.com/jonwraymond/typepipe/typemodel"
)

func TestConstantProvider(t *testing.T) {
	p := ConstantProvider(cachekey.String("v1"))
	a := p.CacheKey(typemodel.NewType("A", nil))
	b := p.CacheKey(typemodel.NewType("B", nil))
	if !cachekey.Equal(a, b) {
		t.Errorf("CacheKey() = %v and %v, want equal", a, b)
	}
}

func TestFunc_NilHooks(t *testing.T) {
	f := &Func{}
	if f.CacheKeyProvider() != nil {
		t.Error("CacheKeyProvider() should be nil")
	}
	if err := f.ModifyType(nil); err != nil {
		t.Errorf("ModifyType() error = %v", err)
	}
	if err := f.RebuildState(nil); err != nil {
		t.Errorf("RebuildState() error = %v", err)
	}
}

func TestProxyTypeContext_AdditionalTypes(t *testing.T) {
	customer := typemodel.NewType("Customer", nil)
	factory := typemodel.NewDefaultFactory()
	proxy, _ := factory.CreateProxy(customer)
	state := NewState()

	ctx := NewProxyTypeContext(customer, proxy, state, factory)
	if ctx.RequestedType() != customer || ctx.ProxyType() != proxy || ctx.State() != state {
		t.Fatal("context accessors return wrong values")
	}

	if _, err := ctx.CreateAdditionalType("Helper", nil); err != nil {
		t.Fatalf("CreateAdditionalType() error = %v", err)
	}
	if _, err := ctx.CreateAdditionalType("", nil); !errors.Is(err, typemodel.ErrEmptyTypeName) {
		t.Errorf("CreateAdditionalType(\"\") error = %v, want ErrEmptyTypeName", err)
	}
	if got := len(ctx.AdditionalTypes()); got != 1 {
		t.Errorf("len(AdditionalTypes()) = %d, want 1", got)
	}
}
