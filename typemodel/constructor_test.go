package typemodel

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConstructorFinder(t *testing.T) {
	str := NewType("string", nil)
	num := NewType("int", nil)
	customer := NewType("Customer", nil,
		WithConstructor(true, nil, str),
		WithConstructor(false, nil, num),
	)

	tests := []struct {
		name           string
		params         []Type
		allowNonPublic bool
		wantKind       MissingMemberKind
		wantErr        bool
	}{
		{"public match", []Type{str}, false, 0, false},
		{"non-public allowed", []Type{num}, true, 0, false},
		{"non-public rejected", []Type{num}, false, ConstructorNotPublic, true},
		{"no match", []Type{str, num}, true, NoMatchingConstructor, true},
		{"no params", nil, true, NoMatchingConstructor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctor, err := DefaultConstructorFinder{}.GetConstructor(customer, tt.params, tt.allowNonPublic, customer, tt.params)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("GetConstructor() error = %v", err)
				}
				if ctor.DeclaringType() != customer {
					t.Errorf("DeclaringType() = %v, want %v", ctor.DeclaringType(), customer)
				}
				return
			}

			var mm *MissingMemberError
			if !errors.As(err, &mm) {
				t.Fatalf("GetConstructor() error = %v, want *MissingMemberError", err)
			}
			if mm.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", mm.Kind, tt.wantKind)
			}
			if !errors.Is(err, ErrMissingMember) {
				t.Error("errors.Is(err, ErrMissingMember) = false, want true")
			}
		})
	}
}

func TestMissingMemberError_Messages(t *testing.T) {
	str := NewType("string", nil)
	customer := NewType("Customer", nil)

	noMatch := &MissingMemberError{Kind: NoMatchingConstructor, RequestedType: customer, RequestedParams: []Type{str}}
	notPublic := &MissingMemberError{Kind: ConstructorNotPublic, RequestedType: customer, RequestedParams: []Type{str}}

	if !strings.Contains(noMatch.Error(), "(string)") {
		t.Errorf("Error() = %q, want signature (string)", noMatch.Error())
	}
	if !strings.Contains(notPublic.Error(), "not public") {
		t.Errorf("Error() = %q, want mention of non-public constructor", notPublic.Error())
	}
	if noMatch.Error() == notPublic.Error() {
		t.Error("the two missing-member kinds must have distinct messages")
	}
}

func TestFormatSignature(t *testing.T) {
	a := NewType("A", nil)
	b := NewType("B", nil)

	tests := []struct {
		params []Type
		want   string
	}{
		{nil, "()"},
		{[]Type{a}, "(A)"},
		{[]Type{a, b, nil}, "(A, B, <nil>)"},
	}
	for _, tt := range tests {
		if got := FormatSignature(tt.params); got != tt.want {
			t.Errorf("FormatSignature(%v) = %q, want %q", tt.params, got, tt.want)
		}
	}
}
