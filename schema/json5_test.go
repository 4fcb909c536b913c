package schema

import (
	"testing"

	"github.com/binwire/bincode/descriptor"
	"github.com/stretchr/testify/require"
)

const ipAddrDoc = `{
	config: { max_tuple_size: 8 },
	types: {
		Point: { kind: "struct", fields: [
			{ name: "x", type: "u16" },
			{ name: "y", type: "u16" },
		]},
		IpAddr: { kind: "enum", variants: [
			{ name: "V4", fields: [{ name: "octets", type: { kind: "tup", elems: ["u8","u8","u8","u8"] } }] },
			{ name: "V6", fields: [{ name: "segments", type: { kind: "seq", elem: "u16" } }] },
		]},
		Frame: { kind: "struct", fields: [
			{ name: "source", type: "IpAddr" },
			{ name: "payload", type: { kind: "opt", elem: "str" } },
		]},
	},
}`

func TestLoadRegistersStructsAndEnums(t *testing.T) {
	reg := NewRegistry()
	maxTupleSize, err := Load(reg, []byte(ipAddrDoc))
	require.NoError(t, err)
	require.Equal(t, 8, maxTupleSize)

	point, ok := reg.LookupStruct("Point")
	require.True(t, ok)
	require.Len(t, point.Fields, 2)
	require.Equal(t, descriptor.KindU16, point.Fields[0].Type.Kind)

	ipAddr, ok := reg.LookupEnum("IpAddr")
	require.True(t, ok)
	require.Len(t, ipAddr.Variants, 2)
	require.Equal(t, descriptor.KindTup, ipAddr.Variants[0].Fields[0].Type.Kind)
}

func TestLoadResolvesForwardReferenceByName(t *testing.T) {
	reg := NewRegistry()
	_, err := Load(reg, []byte(ipAddrDoc))
	require.NoError(t, err)

	frame, ok := reg.LookupStruct("Frame")
	require.True(t, ok)
	require.Equal(t, descriptor.KindUserRef, frame.Fields[0].Type.Kind)
	require.Equal(t, "IpAddr", frame.Fields[0].Type.Name)
	require.Equal(t, descriptor.KindOpt, frame.Fields[1].Type.Kind)
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	reg := NewRegistry()
	_, err := Load(reg, []byte(`{ types: { Bad: { kind: "mystery" } } }`))
	require.Error(t, err)
}

func TestParseDescriptorPrimitivesAndComposites(t *testing.T) {
	d, err := ParseDescriptor("u128")
	require.NoError(t, err)
	require.Equal(t, descriptor.KindU128, d.Kind)

	d, err = ParseDescriptor(map[string]interface{}{
		"kind": "map",
		"key":  "str",
		"value": map[string]interface{}{
			"kind": "seq",
			"elem": "f64",
		},
	})
	require.NoError(t, err)
	require.Equal(t, descriptor.KindMap, d.Kind)
	require.Equal(t, descriptor.KindStr, d.Key.Kind)
	require.Equal(t, descriptor.KindSeq, d.Value.Kind)
	require.Equal(t, descriptor.KindF64, d.Value.Elem.Kind)
}
