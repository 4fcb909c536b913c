// ABOUTME: The type-directed dispatcher: one recursive interpreter over the descriptor grammar
// ABOUTME: Primitive cases delegate to runtime, composite cases recurse, UserRef routes through the registry
package codec

import (
	"fmt"
	"reflect"

	"github.com/binwire/bincode/descriptor"
	"github.com/binwire/bincode/runtime"
	"github.com/binwire/bincode/schema"
)

// Encode walks value against desc and returns its wire image. It is the
// single choke point where Options reach every primitive and composite case;
// nothing below this call reads configuration from ambient state.
func Encode(reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) ([]byte, error) {
	e := runtime.NewEncoder()
	if err := encodeValue(e, reg, value, desc, opts); err != nil {
		return nil, err
	}
	return e.Finish(), nil
}

// Decode reconstructs a value of shape desc from the front of data and
// returns it alongside whatever bytes follow it.
func Decode(reg *schema.Registry, data []byte, desc *descriptor.Descriptor, opts Options) (interface{}, []byte, error) {
	d := runtime.NewDecoder(data)
	value, err := decodeValue(d, reg, desc, opts)
	if err != nil {
		return nil, nil, err
	}
	return value, d.Remaining(), nil
}

func encodeValue(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	switch desc.Kind {
	case descriptor.KindU8:
		u, err := coerceUint(value, 8, "U8")
		if err != nil {
			return err
		}
		e.WriteUint8(uint8(u))
	case descriptor.KindU16:
		u, err := coerceUint(value, 16, "U16")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint(u)
		} else {
			e.WriteUint16(uint16(u))
		}
	case descriptor.KindU32:
		u, err := coerceUint(value, 32, "U32")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint(u)
		} else {
			e.WriteUint32(uint32(u))
		}
	case descriptor.KindU64:
		u, err := coerceUint(value, 64, "U64")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint(u)
		} else {
			e.WriteUint64(u)
		}
	case descriptor.KindU128:
		u, err := coerceBigUint(value, "U128")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint128(u)
		} else {
			e.WriteUint128(u)
		}
	case descriptor.KindI8:
		i, err := coerceInt(value, 8, "I8")
		if err != nil {
			return err
		}
		e.WriteInt8(int8(i))
	case descriptor.KindI16:
		i, err := coerceInt(value, 16, "I16")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint(runtime.ZigZagEncode(i))
		} else {
			e.WriteInt16(int16(i))
		}
	case descriptor.KindI32:
		i, err := coerceInt(value, 32, "I32")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint(runtime.ZigZagEncode(i))
		} else {
			e.WriteInt32(int32(i))
		}
	case descriptor.KindI64:
		i, err := coerceInt(value, 64, "I64")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint(runtime.ZigZagEncode(i))
		} else {
			e.WriteInt64(i)
		}
	case descriptor.KindI128:
		i, err := coerceBigInt(value, "I128")
		if err != nil {
			return err
		}
		if opts.Varint {
			e.WriteVarint128(runtime.ZigZagEncode128(i))
		} else {
			e.WriteInt128(i)
		}
	case descriptor.KindF32:
		f, err := coerceFloat32(value, "F32")
		if err != nil {
			return err
		}
		e.WriteFloat32(f)
	case descriptor.KindF64:
		f, err := coerceFloat64(value, "F64")
		if err != nil {
			return err
		}
		e.WriteFloat64(f)
	case descriptor.KindBool:
		b, ok := value.(bool)
		if !ok {
			return typeMismatch("Bool", value)
		}
		e.WriteBool(b)
	case descriptor.KindStr:
		s, ok := value.(string)
		if !ok {
			return typeMismatch("Str", value)
		}
		writeLength(e, opts, len(s))
		e.WriteBytes([]byte(s))
	case descriptor.KindOpt:
		return encodeOpt(e, reg, value, desc, opts)
	case descriptor.KindSeq:
		return encodeSeq(e, reg, value, desc, opts)
	case descriptor.KindSet:
		return encodeSet(e, reg, value, desc, opts)
	case descriptor.KindMap:
		return encodeMap(e, reg, value, desc, opts)
	case descriptor.KindTup:
		return encodeTup(e, reg, value, desc, opts)
	case descriptor.KindUserRef:
		return encodeUserRef(e, reg, value, desc, opts)
	default:
		return fmt.Errorf("unhandled descriptor kind %v", desc.Kind)
	}
	return nil
}

func encodeOpt(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	if value == nil || isNilPointer(value) {
		e.WriteUint8(0x00)
		return nil
	}
	e.WriteUint8(0x01)
	return encodeValue(e, reg, value, desc.Elem, opts)
}

func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func encodeSeq(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	items, err := asIterable(value, "Seq")
	if err != nil {
		return err
	}
	writeLength(e, opts, len(items))
	for _, item := range items {
		if err := encodeValue(e, reg, item, desc.Elem, opts); err != nil {
			return err
		}
	}
	return nil
}

// encodeSet emits exactly like encodeSeq, per §4.4: "encoded exactly like Seq(T)".
func encodeSet(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	items, err := asIterable(value, "Set")
	if err != nil {
		return err
	}
	writeLength(e, opts, len(items))
	for _, item := range items {
		if err := encodeValue(e, reg, item, desc.Elem, opts); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	entries, err := asMapEntries(value, "Map")
	if err != nil {
		return err
	}
	writeLength(e, opts, len(entries))
	for _, entry := range entries {
		if err := encodeValue(e, reg, entry.Key, desc.Key, opts); err != nil {
			return err
		}
		if err := encodeValue(e, reg, entry.Value, desc.Value, opts); err != nil {
			return err
		}
	}
	return nil
}

func encodeTup(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	if len(desc.Elems) > opts.maxTupleSize() {
		return runtime.Newf(runtime.ArityMismatch, "tuple arity %d exceeds max_tuple_size %d", len(desc.Elems), opts.maxTupleSize())
	}
	items, err := asIterable(value, "Tup")
	if err != nil {
		return err
	}
	if len(items) != len(desc.Elems) {
		return runtime.Newf(runtime.ArityMismatch, "tuple value has %d element(s), descriptor wants %d", len(items), len(desc.Elems))
	}
	for i, item := range items {
		if err := encodeValue(e, reg, item, desc.Elems[i], opts); err != nil {
			return err
		}
	}
	return nil
}

func encodeUserRef(e *runtime.Encoder, reg *schema.Registry, value interface{}, desc *descriptor.Descriptor, opts Options) error {
	if structDef, ok := reg.LookupStruct(desc.Name); ok {
		sv, ok := value.(schema.StructValue)
		if !ok {
			return runtime.Newf(runtime.SchemaMismatch, "value %#v is not a StructValue for struct %s", value, desc.Name)
		}
		return encodeFields(e, reg, sv, structDef.Fields, opts)
	}
	if enumDef, ok := reg.LookupEnum(desc.Name); ok {
		ev, ok := value.(schema.EnumValue)
		if !ok {
			return runtime.Newf(runtime.SchemaMismatch, "value %#v is not an EnumValue for enum %s", value, desc.Name)
		}
		index, ok := enumDef.VariantIndex(ev.Variant)
		if !ok {
			return runtime.Newf(runtime.SchemaMismatch, "%q is not a declared variant of enum %s", ev.Variant, desc.Name)
		}
		writeDiscriminant(e, opts, index)
		return encodeFields(e, reg, ev.Fields, enumDef.Variants[index].Fields, opts)
	}
	return runtime.Newf(runtime.UnknownType, "no struct or enum registered under name %q", desc.Name)
}

func encodeFields(e *runtime.Encoder, reg *schema.Registry, values schema.StructValue, fields []schema.FieldDef, opts Options) error {
	for _, field := range fields {
		fv, ok := values[field.Name]
		if !ok {
			return runtime.Newf(runtime.SchemaMismatch, "missing field %q", field.Name)
		}
		if err := encodeValue(e, reg, fv, field.Type, opts); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
	}
	return nil
}
