// ABOUTME: Public façade over the type-directed codec: encode(value, type, options) and its inverse
// ABOUTME: Non-strict entry points return an error; the _strict variants panic, matching a raising API
package bincode

import (
	"fmt"

	"github.com/binwire/bincode/codec"
	"github.com/binwire/bincode/descriptor"
	"github.com/binwire/bincode/runtime"
	"github.com/binwire/bincode/schema"
)

// Options is the varint/fixed mode toggle plus the max tuple arity, threaded
// unchanged through every recursive call the codec makes.
type Options = codec.Options

// Descriptor names a shape in the type grammar: a primitive, a composite of
// inner descriptors, or a reference to a registered struct or enum.
type Descriptor = descriptor.Descriptor

// Registry holds a host's struct and enum declarations. The zero value is
// an empty registry ready for use; NewRegistry returns the same.
type Registry = schema.Registry

// StructValue and EnumValue are the dynamic value shapes a UserRef struct or
// enum descriptor expects on encode and produces on decode.
type StructValue = schema.StructValue
type EnumValue = schema.EnumValue

// FieldDef and VariantDef re-export the registry's declaration shapes so a
// host can call RegisterStruct/RegisterEnum without a second import.
type FieldDef = schema.FieldDef
type VariantDef = schema.VariantDef

// NewRegistry creates an empty, ready-to-use type registry.
func NewRegistry() *Registry {
	return schema.NewRegistry()
}

// Encode produces the wire image of value under the given descriptor and
// options, or an error describing why value does not match T. reg may be nil
// if T does not recurse through any UserRef.
func Encode(reg *Registry, value interface{}, t *Descriptor, opts Options) ([]byte, error) {
	return codec.Encode(reg, value, t, opts)
}

// EncodeStrict is Encode but panics on error instead of returning one.
func EncodeStrict(reg *Registry, value interface{}, t *Descriptor, opts Options) []byte {
	bytes, err := codec.Encode(reg, value, t, opts)
	if err != nil {
		panic(err)
	}
	return bytes
}

// Decode reconstructs a value of shape T from the front of data, returning it
// alongside whatever bytes followed it. reg may be nil if T does not recurse
// through any UserRef.
func Decode(reg *Registry, data []byte, t *Descriptor, opts Options) (interface{}, []byte, error) {
	return codec.Decode(reg, data, t, opts)
}

// DecodeStrict is Decode but panics on error instead of returning one.
func DecodeStrict(reg *Registry, data []byte, t *Descriptor, opts Options) (interface{}, []byte) {
	value, rest, err := codec.Decode(reg, data, t, opts)
	if err != nil {
		panic(err)
	}
	return value, rest
}

// Recover turns a panic raised by EncodeStrict/DecodeStrict back into an
// error. Typical use: `defer func() { err = bincode.Recover(recover()) }()`.
func Recover(r interface{}) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(*runtime.Error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// TypeBinding is a thin adapter pairing a registry with one of its
// registered type names, so a host can hand out a single value with its own
// Encode/Decode pair instead of threading Registry and Descriptor everywhere.
type TypeBinding struct {
	reg  *Registry
	desc *Descriptor
}

// Bind returns a TypeBinding for name, which must already be registered as a
// struct or enum on reg.
func Bind(reg *Registry, name string) *TypeBinding {
	return &TypeBinding{reg: reg, desc: descriptor.UserRef(name)}
}

// Encode adapts the façade Encode to this binding's registered type.
func (b *TypeBinding) Encode(value interface{}, opts Options) ([]byte, error) {
	return Encode(b.reg, value, b.desc, opts)
}

// EncodeStrict adapts the façade EncodeStrict to this binding's registered type.
func (b *TypeBinding) EncodeStrict(value interface{}, opts Options) []byte {
	return EncodeStrict(b.reg, value, b.desc, opts)
}

// Decode adapts the façade Decode to this binding's registered type.
func (b *TypeBinding) Decode(data []byte, opts Options) (interface{}, []byte, error) {
	return Decode(b.reg, data, b.desc, opts)
}

// DecodeStrict adapts the façade DecodeStrict to this binding's registered type.
func (b *TypeBinding) DecodeStrict(data []byte, opts Options) (interface{}, []byte) {
	return DecodeStrict(b.reg, data, b.desc, opts)
}
