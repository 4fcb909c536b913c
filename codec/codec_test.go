// ABOUTME: End-to-end scenarios lifted from the wire-format literal table
// ABOUTME: Exercises primitives, composites and a user-defined enum through the public dispatcher
package codec

import (
	"testing"

	"github.com/binwire/bincode/descriptor"
	"github.com/binwire/bincode/schema"
	"github.com/stretchr/testify/require"
)

func TestScenarioU8(t *testing.T) {
	bytes, err := Encode(nil, 255, descriptor.U8(), Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{255}, bytes)
}

func TestScenarioU64Default(t *testing.T) {
	bytes, err := Encode(nil, 12, descriptor.U64(), Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{12, 0, 0, 0, 0, 0, 0, 0}, bytes)
}

func TestScenarioU64Varint(t *testing.T) {
	bytes, err := Encode(nil, 12, descriptor.U64(), Options{Varint: true})
	require.NoError(t, err)
	require.Equal(t, []byte{12}, bytes)
}

func TestScenarioU16VarintWide(t *testing.T) {
	bytes, err := Encode(nil, 34561, descriptor.U16(), Options{Varint: true})
	require.NoError(t, err)
	require.Equal(t, []byte{0xFB, 0x01, 0x87}, bytes)
}

func TestScenarioStrDefault(t *testing.T) {
	bytes, err := Encode(nil, "Bincode", descriptor.Str(), Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0, 'B', 'i', 'n', 'c', 'o', 'd', 'e'}, bytes)
}

func TestScenarioTuple(t *testing.T) {
	desc := descriptor.Tup(descriptor.U16(), descriptor.Bool())
	bytes, err := Encode(nil, []interface{}{144, false}, desc, Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{144, 0, 0}, bytes)
}

func TestScenarioSeq(t *testing.T) {
	desc := descriptor.Seq(descriptor.U8())
	bytes, err := Encode(nil, []interface{}{1, 2, 3, 4}, desc, Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{4, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4}, bytes)
}

func TestScenarioMap(t *testing.T) {
	desc := descriptor.Map(descriptor.Str(), descriptor.U64())
	value := map[interface{}]interface{}{"some string key": uint64(429876423428)}
	bytes, err := Encode(nil, value, desc, Options{})
	require.NoError(t, err)

	expected := []byte{1, 0, 0, 0, 0, 0, 0, 0}                // map length
	expected = append(expected, 15, 0, 0, 0, 0, 0, 0, 0)       // key length
	expected = append(expected, []byte("some string key")...) // key bytes
	expected = append(expected, 4, 171, 161, 22, 100, 0, 0, 0) // value bytes
	require.Equal(t, expected, bytes)
}

func ipAddrRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	octet := descriptor.U8()
	reg.RegisterEnum("IpAddr", []schema.VariantDef{
		{Name: "V4", Fields: []schema.FieldDef{
			{Name: "a", Type: octet}, {Name: "b", Type: octet},
			{Name: "c", Type: octet}, {Name: "d", Type: octet},
		}},
		{Name: "V6", Fields: []schema.FieldDef{
			{Name: "segments", Type: descriptor.Seq(descriptor.U16())},
		}},
	})
	return reg
}

func TestScenarioEnumDefault(t *testing.T) {
	reg := ipAddrRegistry()
	desc := descriptor.UserRef("IpAddr")
	value := schema.EnumValue{Variant: "V4", Fields: schema.StructValue{"a": 127, "b": 0, "c": 0, "d": 1}}

	bytes, err := Encode(reg, value, desc, Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 127, 0, 0, 1}, bytes)

	decoded, rest, err := Decode(reg, bytes, desc, Options{})
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, schema.EnumValue{Variant: "V4", Fields: schema.StructValue{"a": uint8(127), "b": uint8(0), "c": uint8(0), "d": uint8(1)}}, decoded)
}

func TestScenarioEnumVarint(t *testing.T) {
	reg := ipAddrRegistry()
	desc := descriptor.UserRef("IpAddr")
	value := schema.EnumValue{Variant: "V4", Fields: schema.StructValue{"a": 127, "b": 0, "c": 0, "d": 1}}

	bytes, err := Encode(reg, value, desc, Options{Varint: true})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 127, 0, 0, 1}, bytes)

	decoded, rest, err := Decode(reg, bytes, desc, Options{Varint: true})
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, schema.EnumValue{Variant: "V4", Fields: schema.StructValue{"a": uint8(127), "b": uint8(0), "c": uint8(0), "d": uint8(1)}}, decoded)
}

func TestUnknownVariantFails(t *testing.T) {
	reg := ipAddrRegistry()
	desc := descriptor.UserRef("IpAddr")
	_, _, err := Decode(reg, []byte{9, 0, 0, 0}, desc, Options{})
	require.Error(t, err)
}

func TestNegativeIntoUnsignedFails(t *testing.T) {
	_, err := Encode(nil, -1, descriptor.U32(), Options{})
	require.Error(t, err)
}

func TestOptAbsentIsSingleZeroByte(t *testing.T) {
	bytes, err := Encode(nil, nil, descriptor.Opt(descriptor.U32()), Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, bytes)
}

func TestOptPresentRoundTrip(t *testing.T) {
	desc := descriptor.Opt(descriptor.U32())
	bytes, err := Encode(nil, 7, desc, Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 7, 0, 0, 0}, bytes)

	decoded, rest, err := Decode(nil, bytes, desc, Options{})
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, uint32(7), decoded)
}

func TestInvalidOptionTagByte(t *testing.T) {
	_, _, err := Decode(nil, []byte{0x02}, descriptor.Opt(descriptor.U8()), Options{})
	require.Error(t, err)
}

func TestEmptySeqEncodesLengthPrefixZero(t *testing.T) {
	bytes, err := Encode(nil, []interface{}{}, descriptor.Seq(descriptor.U8()), Options{})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, bytes)
}

func TestConcatenationLeavesSuffixUntouched(t *testing.T) {
	desc := descriptor.U16()
	bytes, err := Encode(nil, 500, desc, Options{})
	require.NoError(t, err)

	suffix := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	decoded, rest, err := Decode(nil, append(bytes, suffix...), desc, Options{})
	require.NoError(t, err)
	require.Equal(t, uint16(500), decoded)
	require.Equal(t, suffix, rest)
}

func TestSetCollapsesDuplicates(t *testing.T) {
	desc := descriptor.SetOf(descriptor.U8())
	bytes, err := Encode(nil, []interface{}{1, 2, 2, 3}, desc, Options{})
	require.NoError(t, err)

	decoded, rest, err := Decode(nil, bytes, desc, Options{})
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, []interface{}{uint8(1), uint8(2), uint8(3)}, decoded)
}

func TestTupleArityMismatch(t *testing.T) {
	desc := descriptor.Tup(descriptor.U8(), descriptor.U8())
	_, err := Encode(nil, []interface{}{1}, desc, Options{})
	require.Error(t, err)
}

func TestU8I8InvariantUnderVarint(t *testing.T) {
	fixed, err := Encode(nil, 200, descriptor.U8(), Options{})
	require.NoError(t, err)
	varint, err := Encode(nil, 200, descriptor.U8(), Options{Varint: true})
	require.NoError(t, err)
	require.Equal(t, fixed, varint)

	fixedI8, err := Encode(nil, -100, descriptor.I8(), Options{})
	require.NoError(t, err)
	varintI8, err := Encode(nil, -100, descriptor.I8(), Options{Varint: true})
	require.NoError(t, err)
	require.Equal(t, fixedI8, varintI8)
}
