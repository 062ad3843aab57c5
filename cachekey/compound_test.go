package cachekey

import (
	"strings"
	"testing"

	"github.com/jonwraymond/typepipe/typemodel"
)

func TestCompound_Equal(t *testing.T) {
	customer := typemodel.NewType("Customer", nil)
	order := typemodel.NewType("Order", nil)
	// Same name, different identity.
	customer2 := typemodel.NewType("Customer", nil)

	tests := []struct {
		name string
		a, b Compound
		want bool
	}{
		{"empty", Of(), Of(), true},
		{"same parts", Of(TypePart(customer), KeyPart(String("v1"))), Of(TypePart(customer), KeyPart(String("v1"))), true},
		{"different key", Of(TypePart(customer), KeyPart(String("v1"))), Of(TypePart(customer), KeyPart(String("v2"))), false},
		{"different type", Of(TypePart(customer)), Of(TypePart(order)), false},
		{"same name different identity", Of(TypePart(customer)), Of(TypePart(customer2)), false},
		{"different length", Of(TypePart(customer)), Of(TypePart(customer), None()), false},
		{"order matters", Of(KeyPart(String("a")), KeyPart(String("b"))), Of(KeyPart(String("b")), KeyPart(String("a"))), false},
		{"none vs key", Of(None()), Of(KeyPart(String(""))), false},
		{"nil key is none", Of(KeyPart(nil)), Of(None()), true},
		{"bool slots", Of(BoolPart(true)), Of(BoolPart(false)), false},
		{"string vs int", Of(KeyPart(String("1"))), Of(KeyPart(Int(1))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v (a=%s b=%s)", got, tt.want, tt.a, tt.b)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal() not symmetric")
			}
			if tt.want && tt.a.Hash() != tt.b.Hash() {
				t.Errorf("equal keys must hash equally: %d != %d", tt.a.Hash(), tt.b.Hash())
			}
		})
	}
}

func TestCompound_FillAndSuffix(t *testing.T) {
	customer := typemodel.NewType("Customer", nil)
	shape := typemodel.NewType("Func", nil)

	typeKey := NewBuilder(3).Set(2, TypePart(customer)).Build()
	ctorKey := typeKey.Fill(TypePart(shape), BoolPart(true))

	if ctorKey.Equal(typeKey) {
		t.Fatal("filled key should differ from source")
	}
	if typeKey.At(0).Kind() != KindNone {
		t.Error("Fill must not mutate the source key")
	}

	base := Of(TypePart(customer))
	if got := ctorKey.Suffix(2); !got.Equal(base) {
		t.Errorf("Suffix(2) = %s, want %s", got, base)
	}
}

func TestCompound_With(t *testing.T) {
	k := Of(None(), None())
	w := k.With(1, KeyPart(Int(7)))
	if k.At(1).Kind() != KindNone {
		t.Error("With must copy")
	}
	if w.At(1).Kind() != KindKey {
		t.Errorf("At(1).Kind() = %v, want key", w.At(1).Kind())
	}
}

func TestCompound_String(t *testing.T) {
	customer := typemodel.NewType("Customer", nil)
	k := Of(TypePart(customer), BoolPart(false), KeyPart(String("v1")), None())
	got := k.String()
	for _, want := range []string{"Customer", "false", `"v1"`, "-"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestValueKey(t *testing.T) {
	type mode struct {
		name  string
		level int
	}
	a := Value(mode{"audit", 1})
	b := Value(mode{"audit", 1})
	c := Value(mode{"audit", 2})

	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("equal values should produce equal keys")
	}
	if a.Equal(c) {
		t.Error("different values should not be equal")
	}
	if a.Equal(String("audit")) {
		t.Error("keys of different kinds should not be equal")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Error("Equal nil handling broken")
	}
}

// slicedType is a Type whose dynamic value cannot be compared with ==.
type slicedType []string

func (s slicedType) Name() string             { return "sliced" }
func (s slicedType) BaseType() typemodel.Type { return nil }

func TestPart_EqualNonComparableType(t *testing.T) {
	a := TypePart(slicedType{"x"})
	b := TypePart(slicedType{"x"})
	c := TypePart(slicedType{"y"})

	if !a.Equal(b) {
		t.Error("equal non-comparable types should be equal parts")
	}
	if a.Equal(c) {
		t.Error("different non-comparable types should not be equal parts")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal parts must hash equally")
	}
}
