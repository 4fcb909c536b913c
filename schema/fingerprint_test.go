package schema

import (
	"testing"

	"github.com/binwire/bincode/descriptor"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStableUnderDeclarationOrder(t *testing.T) {
	a := NewRegistry()
	a.RegisterStruct("Point", []FieldDef{{Name: "x", Type: descriptor.U16()}})
	a.RegisterEnum("IpAddr", []VariantDef{{Name: "V4", Fields: nil}})

	b := NewRegistry()
	b.RegisterEnum("IpAddr", []VariantDef{{Name: "V4", Fields: nil}})
	b.RegisterStruct("Point", []FieldDef{{Name: "x", Type: descriptor.U16()}})

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintChangesWithDeclaredNames(t *testing.T) {
	a := NewRegistry()
	a.RegisterStruct("Point", []FieldDef{{Name: "x", Type: descriptor.U16()}})

	b := NewRegistry()
	b.RegisterStruct("Point3D", []FieldDef{{Name: "x", Type: descriptor.U16()}})

	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
