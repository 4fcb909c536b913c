package schema

import (
	"testing"

	"github.com/binwire/bincode/descriptor"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookupStruct(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterStruct("Point", []FieldDef{
		{Name: "x", Type: descriptor.U16()},
		{Name: "y", Type: descriptor.U16()},
	})

	def, ok := reg.LookupStruct("Point")
	require.True(t, ok)
	require.Len(t, def.Fields, 2)
	require.Equal(t, "x", def.Fields[0].Name)
}

func TestLookupStructMissing(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.LookupStruct("Nope")
	require.False(t, ok)
}

func TestRegisterStructReplacesPriorDefinition(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterStruct("Point", []FieldDef{{Name: "x", Type: descriptor.U16()}})
	reg.RegisterStruct("Point", []FieldDef{{Name: "x", Type: descriptor.U32()}, {Name: "y", Type: descriptor.U32()}})

	def, ok := reg.LookupStruct("Point")
	require.True(t, ok)
	require.Len(t, def.Fields, 2)
}

func TestEnumVariantByIndexAndName(t *testing.T) {
	reg := NewRegistry()
	enum := reg.RegisterEnum("IpAddr", []VariantDef{
		{Name: "V4", Fields: []FieldDef{{Name: "octets", Type: descriptor.Tup(descriptor.U8(), descriptor.U8(), descriptor.U8(), descriptor.U8())}}},
		{Name: "V6", Fields: []FieldDef{{Name: "segments", Type: descriptor.Seq(descriptor.U16())}}},
	})

	v, err := enum.VariantByIndex(1)
	require.NoError(t, err)
	require.Equal(t, "V6", v.Name)

	idx, ok := enum.VariantIndex("V4")
	require.True(t, ok)
	require.Equal(t, 0, idx)

	_, ok = enum.VariantIndex("V9")
	require.False(t, ok)

	_, err = enum.VariantByIndex(5)
	require.Error(t, err)
}

func TestRegistryConcurrentReadsDoNotRace(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterStruct("Point", []FieldDef{{Name: "x", Type: descriptor.U16()}})

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_, _ = reg.LookupStruct("Point")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
