// ABOUTME: Defines the compositional type-descriptor grammar the codec is driven by
// ABOUTME: Descriptors are data, not Go types, so one recursive interpreter can walk them
package descriptor

import "fmt"

// Kind identifies which shape of the descriptor grammar a Descriptor carries.
type Kind int

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindF32
	KindF64
	KindBool
	KindStr
	KindOpt
	KindSeq
	KindMap
	KindSet
	KindTup
	KindUserRef
)

// DefaultMaxTupleSize is MAX_TUPLE_SIZE when the host does not override it.
const DefaultMaxTupleSize = 12

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindU128:
		return "U128"
	case KindI8:
		return "I8"
	case KindI16:
		return "I16"
	case KindI32:
		return "I32"
	case KindI64:
		return "I64"
	case KindI128:
		return "I128"
	case KindF32:
		return "F32"
	case KindF64:
		return "F64"
	case KindBool:
		return "Bool"
	case KindStr:
		return "Str"
	case KindOpt:
		return "Opt"
	case KindSeq:
		return "Seq"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	case KindTup:
		return "Tup"
	case KindUserRef:
		return "UserRef"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Descriptor is one node of the type grammar described in the data model: a
// primitive, a composite wrapping one or two inner descriptors, a fixed-arity
// tuple, or a reference to a user-defined type by name. It is a plain value,
// not an interface, so dispatch stays a single switch over Kind rather than a
// method-per-shape hierarchy.
type Descriptor struct {
	Kind Kind

	// Elem is the inner descriptor for Opt, Seq and Set.
	Elem *Descriptor

	// Key and Value are the inner descriptors for Map.
	Key   *Descriptor
	Value *Descriptor

	// Elems holds the component descriptors for Tup, in order.
	Elems []*Descriptor

	// Name is the registry key for UserRef.
	Name string
}

func U8() *Descriptor   { return &Descriptor{Kind: KindU8} }
func U16() *Descriptor  { return &Descriptor{Kind: KindU16} }
func U32() *Descriptor  { return &Descriptor{Kind: KindU32} }
func U64() *Descriptor  { return &Descriptor{Kind: KindU64} }
func U128() *Descriptor { return &Descriptor{Kind: KindU128} }
func I8() *Descriptor   { return &Descriptor{Kind: KindI8} }
func I16() *Descriptor  { return &Descriptor{Kind: KindI16} }
func I32() *Descriptor  { return &Descriptor{Kind: KindI32} }
func I64() *Descriptor  { return &Descriptor{Kind: KindI64} }
func I128() *Descriptor { return &Descriptor{Kind: KindI128} }
func F32() *Descriptor  { return &Descriptor{Kind: KindF32} }
func F64() *Descriptor  { return &Descriptor{Kind: KindF64} }
func Bool() *Descriptor { return &Descriptor{Kind: KindBool} }
func Str() *Descriptor  { return &Descriptor{Kind: KindStr} }

// Opt builds an optional-of-T descriptor.
func Opt(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindOpt, Elem: elem}
}

// Seq builds an ordered-sequence-of-T descriptor.
func Seq(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindSeq, Elem: elem}
}

// SetOf builds a set-of-T descriptor. Named SetOf to avoid colliding with the
// Set verb a mutable registry would otherwise want.
func SetOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindSet, Elem: elem}
}

// Map builds a mapping-from-K-to-V descriptor.
func Map(key, value *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindMap, Key: key, Value: value}
}

// Tup builds a fixed-arity heterogeneous tuple descriptor. The caller is
// responsible for keeping arity within whatever MaxTupleSize the codec
// Options carry; Tup itself does not enforce it since the limit is
// configurable per call.
func Tup(elems ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: KindTup, Elems: elems}
}

// UserRef builds a reference to a struct or enum registered under name.
func UserRef(name string) *Descriptor {
	return &Descriptor{Kind: KindUserRef, Name: name}
}

// IsVarintExempt reports whether a descriptor is always one byte regardless
// of varint mode (U8/I8 per the length & discriminant policy).
func (d *Descriptor) IsVarintExempt() bool {
	return d.Kind == KindU8 || d.Kind == KindI8
}

func (d *Descriptor) String() string {
	switch d.Kind {
	case KindOpt:
		return fmt.Sprintf("Opt(%s)", d.Elem)
	case KindSeq:
		return fmt.Sprintf("Seq(%s)", d.Elem)
	case KindSet:
		return fmt.Sprintf("Set(%s)", d.Elem)
	case KindMap:
		return fmt.Sprintf("Map(%s, %s)", d.Key, d.Value)
	case KindTup:
		parts := make([]string, len(d.Elems))
		for i, e := range d.Elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("Tup%v", parts)
	case KindUserRef:
		return fmt.Sprintf("UserRef(%s)", d.Name)
	default:
		return d.Kind.String()
	}
}
