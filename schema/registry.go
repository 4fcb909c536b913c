// ABOUTME: Declarative registry of user-defined struct and enum types
// ABOUTME: Write-once at startup, read-only thereafter; forward references resolve by name at codec time
package schema

import (
	"fmt"
	"sync"

	"github.com/binwire/bincode/descriptor"
)

// FieldDef names one field of a struct body: an ordered (name, descriptor) pair.
type FieldDef struct {
	Name string
	Type *descriptor.Descriptor
}

// StructDef is a registered product type: an ordered (name, descriptor)
// field list. Its wire image is the concatenation of fields in declaration
// order. Enum variant bodies reuse this same shape; the codec emits their
// discriminant prefix itself rather than threading it through StructDef.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

// VariantDef names one arm of a sum type: a variant name plus its field list.
type VariantDef struct {
	Name   string
	Fields []FieldDef
}

// EnumDef is a registered sum type: an ordered variant list. The discriminant
// for variant i is its zero-based index in this slice.
type EnumDef struct {
	Name     string
	Variants []VariantDef
}

// StructValue is the value shape a host supplies (or receives) for a
// registered struct: fields keyed by name. The wire emission order is NOT
// this map's iteration order — it is the declaration order recorded in the
// matching StructDef — so map iteration order never leaks onto the wire.
type StructValue map[string]interface{}

// EnumValue is the value shape a host supplies (or receives) for a
// registered enum: the chosen variant name plus that variant's fields.
type EnumValue struct {
	Variant string
	Fields  StructValue
}

// Registry holds every struct and enum a host has declared. The zero value
// is an empty registry ready for use; NewRegistry returns the same.
type Registry struct {
	mu      sync.RWMutex
	structs map[string]*StructDef
	enums   map[string]*EnumDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		structs: make(map[string]*StructDef),
		enums:   make(map[string]*EnumDef),
	}
}

// RegisterStruct declares a product type. Re-registering the same name
// replaces the previous definition; the registry does not otherwise
// serialize registration against concurrent encode/decode calls, matching
// the write-once-at-startup lifecycle the codec assumes.
func (r *Registry) RegisterStruct(name string, fields []FieldDef) *StructDef {
	def := &StructDef{Name: name, Fields: fields}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.structs == nil {
		r.structs = make(map[string]*StructDef)
	}
	r.structs[name] = def
	return def
}

// RegisterEnum declares a sum type. Each variant's implicit prefix is a U32
// discriminant by default; the actual wire width is resolved by the length &
// discriminant policy at encode/decode time, not fixed here.
func (r *Registry) RegisterEnum(name string, variants []VariantDef) *EnumDef {
	def := &EnumDef{Name: name, Variants: variants}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enums == nil {
		r.enums = make(map[string]*EnumDef)
	}
	r.enums[name] = def
	return def
}

// LookupStruct resolves a registered struct by name.
func (r *Registry) LookupStruct(name string) (*StructDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.structs[name]
	return def, ok
}

// LookupEnum resolves a registered enum by name.
func (r *Registry) LookupEnum(name string) (*EnumDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.enums[name]
	return def, ok
}

// VariantByIndex returns the i-th declared variant, or an error if i is out
// of range — the enum-decode UnknownVariant(i) case.
func (e *EnumDef) VariantByIndex(i int) (*VariantDef, error) {
	if i < 0 || i >= len(e.Variants) {
		return nil, fmt.Errorf("unknown variant index %d for enum %s", i, e.Name)
	}
	return &e.Variants[i], nil
}

// VariantIndex returns the declaration index of the named variant.
func (e *EnumDef) VariantIndex(name string) (int, bool) {
	for i, v := range e.Variants {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}
