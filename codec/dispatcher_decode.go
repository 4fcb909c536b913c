// ABOUTME: Decode half of the type-directed dispatcher, symmetric with dispatcher.go
// ABOUTME: The enum decode state machine (ReadTag -> DispatchVariant -> DecodeBody -> Done) lives here
package codec

import (
	"fmt"
	"reflect"

	"github.com/binwire/bincode/descriptor"
	"github.com/binwire/bincode/runtime"
	"github.com/binwire/bincode/schema"
)

func decodeValue(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	switch desc.Kind {
	case descriptor.KindU8:
		v, err := d.ReadUint8()
		return v, err
	case descriptor.KindU16:
		if opts.Varint {
			u, err := d.ReadVarint()
			return uint16(u), err
		}
		return d.ReadUint16()
	case descriptor.KindU32:
		if opts.Varint {
			u, err := d.ReadVarint()
			return uint32(u), err
		}
		return d.ReadUint32()
	case descriptor.KindU64:
		if opts.Varint {
			return d.ReadVarint()
		}
		return d.ReadUint64()
	case descriptor.KindU128:
		if opts.Varint {
			return d.ReadVarint128()
		}
		return d.ReadUint128()
	case descriptor.KindI8:
		return d.ReadInt8()
	case descriptor.KindI16:
		if opts.Varint {
			u, err := d.ReadVarint()
			if err != nil {
				return nil, err
			}
			return int16(runtime.ZigZagDecode(u)), nil
		}
		return d.ReadInt16()
	case descriptor.KindI32:
		if opts.Varint {
			u, err := d.ReadVarint()
			if err != nil {
				return nil, err
			}
			return int32(runtime.ZigZagDecode(u)), nil
		}
		return d.ReadInt32()
	case descriptor.KindI64:
		if opts.Varint {
			u, err := d.ReadVarint()
			if err != nil {
				return nil, err
			}
			return runtime.ZigZagDecode(u), nil
		}
		return d.ReadInt64()
	case descriptor.KindI128:
		if opts.Varint {
			u, err := d.ReadVarint128()
			if err != nil {
				return nil, err
			}
			return runtime.ZigZagDecode128(u), nil
		}
		return d.ReadInt128()
	case descriptor.KindF32:
		return d.ReadFloat32()
	case descriptor.KindF64:
		return d.ReadFloat64()
	case descriptor.KindBool:
		return d.ReadBool()
	case descriptor.KindStr:
		n, err := readLength(d, opts)
		if err != nil {
			return nil, err
		}
		b, err := d.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case descriptor.KindOpt:
		return decodeOpt(d, reg, desc, opts)
	case descriptor.KindSeq:
		return decodeSeq(d, reg, desc, opts)
	case descriptor.KindSet:
		return decodeSet(d, reg, desc, opts)
	case descriptor.KindMap:
		return decodeMap(d, reg, desc, opts)
	case descriptor.KindTup:
		return decodeTup(d, reg, desc, opts)
	case descriptor.KindUserRef:
		return decodeUserRef(d, reg, desc, opts)
	default:
		return nil, fmt.Errorf("unhandled descriptor kind %v", desc.Kind)
	}
}

func decodeOpt(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0x00:
		return nil, nil
	case 0x01:
		return decodeValue(d, reg, desc.Elem, opts)
	default:
		return nil, runtime.Newf(runtime.InvalidOption, "tag byte 0x%02x is neither 0x00 nor 0x01", tag)
	}
}

func decodeSeq(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	n, err := readLength(d, opts)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		v, err := decodeValue(d, reg, desc.Elem, opts)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// decodeSet reads exactly like decodeSeq, then collapses duplicates using
// structural equality, preserving first-occurrence order.
func decodeSet(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	n, err := readLength(d, opts)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		v, err := decodeValue(d, reg, desc.Elem, opts)
		if err != nil {
			return nil, err
		}
		out = appendUnique(out, v)
	}
	return out, nil
}

func appendUnique(set []interface{}, v interface{}) []interface{} {
	for _, existing := range set {
		if reflect.DeepEqual(existing, v) {
			return set
		}
	}
	return append(set, v)
}

// decodeMap reads length-then-pairs and folds them into a Go map. On
// duplicate keys the later value wins, which is exactly what repeated map
// assignment gives us for free.
func decodeMap(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	n, err := readLength(d, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[interface{}]interface{}, n)
	for i := 0; i < n; i++ {
		k, err := decodeValue(d, reg, desc.Key, opts)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(d, reg, desc.Value, opts)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func decodeTup(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	if len(desc.Elems) > opts.maxTupleSize() {
		return nil, runtime.Newf(runtime.ArityMismatch, "tuple arity %d exceeds max_tuple_size %d", len(desc.Elems), opts.maxTupleSize())
	}
	out := make([]interface{}, len(desc.Elems))
	for i, elem := range desc.Elems {
		v, err := decodeValue(d, reg, elem, opts)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// decodeUserRef is the enum decoder's state machine:
// ReadTag -> DispatchVariant -> DecodeBody -> Done, any step failing instead.
func decodeUserRef(d *runtime.Decoder, reg *schema.Registry, desc *descriptor.Descriptor, opts Options) (interface{}, error) {
	if structDef, ok := reg.LookupStruct(desc.Name); ok {
		fields, err := decodeFields(d, reg, structDef.Fields, opts)
		if err != nil {
			return nil, err
		}
		return fields, nil
	}
	enumDef, ok := reg.LookupEnum(desc.Name)
	if !ok {
		return nil, runtime.Newf(runtime.UnknownType, "no struct or enum registered under name %q", desc.Name)
	}

	// ReadTag
	index, err := readDiscriminant(d, opts)
	if err != nil {
		return nil, err
	}

	// DispatchVariant
	variant, err := enumDef.VariantByIndex(index)
	if err != nil {
		return nil, runtime.Newf(runtime.UnknownVariant, "enum %s has no variant at index %d", desc.Name, index)
	}

	// DecodeBody
	fields, err := decodeFields(d, reg, variant.Fields, opts)
	if err != nil {
		return nil, err
	}

	// Done
	return schema.EnumValue{Variant: variant.Name, Fields: fields}, nil
}

func decodeFields(d *runtime.Decoder, reg *schema.Registry, fields []schema.FieldDef, opts Options) (schema.StructValue, error) {
	out := make(schema.StructValue, len(fields))
	for _, field := range fields {
		v, err := decodeValue(d, reg, field.Type, opts)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		out[field.Name] = v
	}
	return out, nil
}
