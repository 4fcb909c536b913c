// ABOUTME: Loads struct/enum declarations from a JSON5 schema document
// ABOUTME: Lets a host describe its wire types declaratively instead of calling Register* by hand
package schema

import (
	"fmt"
	"os"

	"github.com/aeolun/json5"
	"github.com/binwire/bincode/descriptor"
)

// Document is the top-level shape of a JSON5 schema file:
//
//	{
//	  config: { max_tuple_size: 12 },
//	  types: {
//	    "Point": { kind: "struct", fields: [
//	      { name: "x", type: "u16" },
//	      { name: "y", type: "u16" },
//	    ]},
//	    "IpAddr": { kind: "enum", variants: [
//	      { name: "V4", fields: [{ name: "octets", type: { kind: "tup", elems: ["u8","u8","u8","u8"] } }] },
//	      { name: "V6", fields: [{ name: "segments", type: { kind: "seq", elem: "u16" } }] },
//	    ]},
//	  },
//	}
type Document struct {
	Config *DocumentConfig        `json:"config"`
	Types  map[string]interface{} `json:"types"`
}

// DocumentConfig carries the one schema-wide knob the façade exposes.
type DocumentConfig struct {
	MaxTupleSize int `json:"max_tuple_size"`
}

// LoadFile reads a JSON5 schema document from disk and registers every type
// it declares into reg, returning the parsed max_tuple_size override (0 if
// the document did not set one).
func LoadFile(reg *Registry, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read schema file %s: %w", path, err)
	}
	return Load(reg, data)
}

// Load parses a JSON5 schema document and registers every type it declares.
func Load(reg *Registry, data []byte) (int, error) {
	var doc map[string]interface{}
	if err := json5.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse schema document: %w", err)
	}

	maxTupleSize := 0
	if configRaw, ok := doc["config"].(map[string]interface{}); ok {
		if n, ok := configRaw["max_tuple_size"].(float64); ok {
			maxTupleSize = int(n)
		}
	}

	typesRaw, ok := doc["types"].(map[string]interface{})
	if !ok {
		return maxTupleSize, nil
	}

	// One pass is enough: a field that names another type becomes a UserRef
	// that the codec resolves by name at encode/decode time, so forward
	// references work regardless of map iteration order.
	for name, raw := range typesRaw {
		typeDoc, ok := raw.(map[string]interface{})
		if !ok {
			return 0, fmt.Errorf("type %q: expected an object", name)
		}
		if err := registerType(reg, name, typeDoc); err != nil {
			return 0, fmt.Errorf("type %q: %w", name, err)
		}
	}

	return maxTupleSize, nil
}

func registerType(reg *Registry, name string, typeDoc map[string]interface{}) error {
	kind, _ := typeDoc["kind"].(string)
	switch kind {
	case "struct":
		fields, err := parseFieldList(typeDoc["fields"])
		if err != nil {
			return err
		}
		reg.RegisterStruct(name, fields)
		return nil
	case "enum":
		variantsRaw, ok := typeDoc["variants"].([]interface{})
		if !ok {
			return fmt.Errorf("enum missing variants list")
		}
		variants := make([]VariantDef, 0, len(variantsRaw))
		for _, vRaw := range variantsRaw {
			vDoc, ok := vRaw.(map[string]interface{})
			if !ok {
				return fmt.Errorf("variant entry must be an object")
			}
			vName, _ := vDoc["name"].(string)
			if vName == "" {
				return fmt.Errorf("variant missing name")
			}
			fields, err := parseFieldList(vDoc["fields"])
			if err != nil {
				return fmt.Errorf("variant %q: %w", vName, err)
			}
			variants = append(variants, VariantDef{Name: vName, Fields: fields})
		}
		reg.RegisterEnum(name, variants)
		return nil
	default:
		return fmt.Errorf("unknown type kind %q (expected struct or enum)", kind)
	}
}

func parseFieldList(raw interface{}) ([]FieldDef, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a field list")
	}
	fields := make([]FieldDef, 0, len(list))
	for _, fRaw := range list {
		fDoc, ok := fRaw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field entry must be an object")
		}
		fName, _ := fDoc["name"].(string)
		if fName == "" {
			return nil, fmt.Errorf("field missing name")
		}
		desc, err := ParseDescriptor(fDoc["type"])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fName, err)
		}
		fields = append(fields, FieldDef{Name: fName, Type: desc})
	}
	return fields, nil
}

// ParseDescriptor converts a JSON5 type expression into a Descriptor. A
// string is a primitive shorthand ("u8", "i32", "str", "bool", ...) or a bare
// UserRef name; an object carries a "kind" discriminating Opt/Seq/Map/Set/Tup
// or an explicit "ref".
func ParseDescriptor(raw interface{}) (*descriptor.Descriptor, error) {
	switch v := raw.(type) {
	case string:
		return parsePrimitiveName(v)
	case map[string]interface{}:
		return parseCompositeDescriptor(v)
	default:
		return nil, fmt.Errorf("expected a type name or type object, got %T", raw)
	}
}

func parsePrimitiveName(name string) (*descriptor.Descriptor, error) {
	switch name {
	case "u8":
		return descriptor.U8(), nil
	case "u16":
		return descriptor.U16(), nil
	case "u32":
		return descriptor.U32(), nil
	case "u64":
		return descriptor.U64(), nil
	case "u128":
		return descriptor.U128(), nil
	case "i8":
		return descriptor.I8(), nil
	case "i16":
		return descriptor.I16(), nil
	case "i32":
		return descriptor.I32(), nil
	case "i64":
		return descriptor.I64(), nil
	case "i128":
		return descriptor.I128(), nil
	case "f32":
		return descriptor.F32(), nil
	case "f64":
		return descriptor.F64(), nil
	case "bool":
		return descriptor.Bool(), nil
	case "str":
		return descriptor.Str(), nil
	default:
		// Bare name: a reference to another registered type.
		return descriptor.UserRef(name), nil
	}
}

func parseCompositeDescriptor(doc map[string]interface{}) (*descriptor.Descriptor, error) {
	kind, _ := doc["kind"].(string)
	switch kind {
	case "opt":
		elem, err := ParseDescriptor(doc["elem"])
		if err != nil {
			return nil, err
		}
		return descriptor.Opt(elem), nil
	case "seq":
		elem, err := ParseDescriptor(doc["elem"])
		if err != nil {
			return nil, err
		}
		return descriptor.Seq(elem), nil
	case "set":
		elem, err := ParseDescriptor(doc["elem"])
		if err != nil {
			return nil, err
		}
		return descriptor.SetOf(elem), nil
	case "map":
		key, err := ParseDescriptor(doc["key"])
		if err != nil {
			return nil, err
		}
		value, err := ParseDescriptor(doc["value"])
		if err != nil {
			return nil, err
		}
		return descriptor.Map(key, value), nil
	case "tup":
		elemsRaw, ok := doc["elems"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("tup missing elems list")
		}
		elems := make([]*descriptor.Descriptor, 0, len(elemsRaw))
		for _, e := range elemsRaw {
			d, err := ParseDescriptor(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, d)
		}
		return descriptor.Tup(elems...), nil
	case "ref":
		name, _ := doc["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("ref missing name")
		}
		return descriptor.UserRef(name), nil
	default:
		return nil, fmt.Errorf("unknown composite kind %q", kind)
	}
}
