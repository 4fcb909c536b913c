// ABOUTME: Bridges the codec's dynamic interface{} value shapes to JSON on the CLI boundary
// ABOUTME: Follows the same descriptor-directed recursion the dispatcher itself uses
package main

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/binwire/bincode/descriptor"
	"github.com/binwire/bincode/schema"
)

// jsonToValue turns a JSON document (decoded with json.Number active, so
// large integers survive) into the value shape Encode expects for desc.
func jsonToValue(reg *schema.Registry, raw interface{}, desc *descriptor.Descriptor) (interface{}, error) {
	switch desc.Kind {
	case descriptor.KindU8, descriptor.KindU16, descriptor.KindU32, descriptor.KindU64,
		descriptor.KindI8, descriptor.KindI16, descriptor.KindI32, descriptor.KindI64:
		return jsonNumber(raw)
	case descriptor.KindU128, descriptor.KindI128:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s value must be a decimal string, got %T", desc, raw)
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%q is not a valid decimal integer", s)
		}
		return n, nil
	case descriptor.KindF32, descriptor.KindF64:
		num, ok := raw.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected a JSON number, got %T", raw)
		}
		f, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid float: %w", num.String(), err)
		}
		return f, nil
	case descriptor.KindBool, descriptor.KindStr:
		return raw, nil
	case descriptor.KindOpt:
		if raw == nil {
			return nil, nil
		}
		return jsonToValue(reg, raw, desc.Elem)
	case descriptor.KindSeq, descriptor.KindSet:
		list, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s value must be a JSON array, got %T", desc, raw)
		}
		out := make([]interface{}, len(list))
		for i, item := range list {
			v, err := jsonToValue(reg, item, desc.Elem)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case descriptor.KindMap:
		entries, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("Map value must be a JSON array of {key,value} objects, got %T", raw)
		}
		out := make(map[interface{}]interface{}, len(entries))
		for _, eRaw := range entries {
			eDoc, ok := eRaw.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("Map entry must be an object with key/value")
			}
			k, err := jsonToValue(reg, eDoc["key"], desc.Key)
			if err != nil {
				return nil, err
			}
			v, err := jsonToValue(reg, eDoc["value"], desc.Value)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case descriptor.KindTup:
		list, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("Tup value must be a JSON array, got %T", raw)
		}
		if len(list) != len(desc.Elems) {
			return nil, fmt.Errorf("tuple has %d element(s), descriptor wants %d", len(list), len(desc.Elems))
		}
		out := make([]interface{}, len(list))
		for i, item := range list {
			v, err := jsonToValue(reg, item, desc.Elems[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case descriptor.KindUserRef:
		return jsonToUserRef(reg, raw, desc.Name)
	default:
		return nil, fmt.Errorf("unhandled descriptor kind %v", desc.Kind)
	}
}

func jsonToUserRef(reg *schema.Registry, raw interface{}, name string) (interface{}, error) {
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("value for %s must be a JSON object, got %T", name, raw)
	}
	if structDef, ok := reg.LookupStruct(name); ok {
		return jsonToFields(reg, doc, structDef.Fields)
	}
	enumDef, ok := reg.LookupEnum(name)
	if !ok {
		return nil, fmt.Errorf("no struct or enum registered under name %q", name)
	}
	variantName, ok := doc["variant"].(string)
	if !ok {
		return nil, fmt.Errorf("enum value for %s must carry a \"variant\" string", name)
	}
	index, ok := enumDef.VariantIndex(variantName)
	if !ok {
		return nil, fmt.Errorf("%q is not a declared variant of enum %s", variantName, name)
	}
	fieldsDoc, _ := doc["fields"].(map[string]interface{})
	fields, err := jsonToFields(reg, fieldsDoc, enumDef.Variants[index].Fields)
	if err != nil {
		return nil, err
	}
	return schema.EnumValue{Variant: variantName, Fields: fields}, nil
}

func jsonToFields(reg *schema.Registry, doc map[string]interface{}, fields []schema.FieldDef) (schema.StructValue, error) {
	out := make(schema.StructValue, len(fields))
	for _, field := range fields {
		raw, ok := doc[field.Name]
		if !ok {
			return nil, fmt.Errorf("missing field %q", field.Name)
		}
		v, err := jsonToValue(reg, raw, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		out[field.Name] = v
	}
	return out, nil
}

// jsonNumber expects a json.Number, produced only when the decoder driving
// this CLI was configured with UseNumber — plain float64 would lose
// precision on the 64-bit integers this format traffics in. Returns an
// int64 or uint64 so codec's reflection-based coercion helpers accept it.
func jsonNumber(raw interface{}) (interface{}, error) {
	num, ok := raw.(json.Number)
	if !ok {
		return nil, fmt.Errorf("expected a JSON number, got %T", raw)
	}
	n, ok := new(big.Int).SetString(num.String(), 10)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", num.String())
	}
	if n.IsInt64() {
		return n.Int64(), nil
	}
	return n.Uint64(), nil
}

// valueToJSON turns a decoded value back into something encoding/json can
// render, following the same descriptor-directed recursion in reverse.
func valueToJSON(reg *schema.Registry, value interface{}, desc *descriptor.Descriptor) (interface{}, error) {
	switch desc.Kind {
	case descriptor.KindU128, descriptor.KindI128:
		n, ok := value.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("expected *big.Int for %s, got %T", desc, value)
		}
		return n.String(), nil
	case descriptor.KindOpt:
		if value == nil {
			return nil, nil
		}
		return valueToJSON(reg, value, desc.Elem)
	case descriptor.KindSeq, descriptor.KindSet:
		list, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected []interface{} for %s, got %T", desc, value)
		}
		out := make([]interface{}, len(list))
		for i, item := range list {
			v, err := valueToJSON(reg, item, desc.Elem)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case descriptor.KindMap:
		m, ok := value.(map[interface{}]interface{})
		if !ok {
			return nil, fmt.Errorf("expected map[interface{}]interface{} for Map, got %T", value)
		}
		out := make([]interface{}, 0, len(m))
		for k, v := range m {
			kj, err := valueToJSON(reg, k, desc.Key)
			if err != nil {
				return nil, err
			}
			vj, err := valueToJSON(reg, v, desc.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, map[string]interface{}{"key": kj, "value": vj})
		}
		return out, nil
	case descriptor.KindTup:
		list, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected []interface{} for Tup, got %T", value)
		}
		out := make([]interface{}, len(list))
		for i, item := range list {
			v, err := valueToJSON(reg, item, desc.Elems[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case descriptor.KindUserRef:
		return userRefToJSON(reg, value, desc.Name)
	default:
		return value, nil
	}
}

func userRefToJSON(reg *schema.Registry, value interface{}, name string) (interface{}, error) {
	switch v := value.(type) {
	case schema.StructValue:
		structDef, ok := reg.LookupStruct(name)
		if !ok {
			return nil, fmt.Errorf("no struct registered under name %q", name)
		}
		return fieldsToJSON(reg, v, structDef.Fields)
	case schema.EnumValue:
		enumDef, ok := reg.LookupEnum(name)
		if !ok {
			return nil, fmt.Errorf("no enum registered under name %q", name)
		}
		index, ok := enumDef.VariantIndex(v.Variant)
		if !ok {
			return nil, fmt.Errorf("%q is not a declared variant of enum %s", v.Variant, name)
		}
		fields, err := fieldsToJSON(reg, v.Fields, enumDef.Variants[index].Fields)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"variant": v.Variant, "fields": fields}, nil
	default:
		return nil, fmt.Errorf("expected StructValue or EnumValue, got %T", value)
	}
}

func fieldsToJSON(reg *schema.Registry, values schema.StructValue, fields []schema.FieldDef) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		v, err := valueToJSON(reg, values[field.Name], field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		out[field.Name] = v
	}
	return out, nil
}
