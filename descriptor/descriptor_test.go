package descriptor

import "testing"

func TestStringRendersCompositeShapes(t *testing.T) {
	cases := []struct {
		desc *Descriptor
		want string
	}{
		{U8(), "U8"},
		{I128(), "I128"},
		{Opt(U32()), "Opt(U32)"},
		{Seq(Str()), "Seq(Str)"},
		{SetOf(U8()), "Set(U8)"},
		{Map(Str(), U64()), "Map(Str, U64)"},
		{Tup(U8(), Bool()), "Tup[U8 Bool]"},
		{UserRef("IpAddr"), "UserRef(IpAddr)"},
	}
	for _, tc := range cases {
		if got := tc.desc.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestIsVarintExempt(t *testing.T) {
	exempt := []*Descriptor{U8(), I8()}
	for _, d := range exempt {
		if !d.IsVarintExempt() {
			t.Errorf("%s: expected varint-exempt", d)
		}
	}
	notExempt := []*Descriptor{U16(), I16(), U32(), U64(), Bool(), Str()}
	for _, d := range notExempt {
		if d.IsVarintExempt() {
			t.Errorf("%s: expected NOT varint-exempt", d)
		}
	}
}

func TestConstructorsSetKind(t *testing.T) {
	if Opt(U8()).Kind != KindOpt {
		t.Error("Opt did not set KindOpt")
	}
	if Seq(U8()).Elem.Kind != KindU8 {
		t.Error("Seq did not thread through Elem")
	}
	tup := Tup(U8(), U16(), U32())
	if len(tup.Elems) != 3 {
		t.Errorf("Tup arity = %d, want 3", len(tup.Elems))
	}
}
