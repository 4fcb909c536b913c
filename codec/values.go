// ABOUTME: Coerces host-supplied Go values into the wire-width the descriptor names
// ABOUTME: Accepts any Go numeric kind so callers are not forced into one concrete integer type
package codec

import (
	"math/big"
	"reflect"

	"github.com/binwire/bincode/runtime"
)

func typeMismatch(desc string, v interface{}) error {
	return runtime.Newf(runtime.TypeMismatch, "value %#v does not match descriptor %s", v, desc)
}

// coerceUint converts v to a uint64 that fits in bits (8/16/32/64), rejecting
// negative input with NegativeUnsigned and out-of-range input with TypeMismatch.
func coerceUint(v interface{}, bits int, descName string) (uint64, error) {
	rv := reflect.ValueOf(v)
	var u uint64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, runtime.Newf(runtime.NegativeUnsigned, "value %d is negative for unsigned descriptor %s", i, descName)
		}
		u = uint64(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u = rv.Uint()
	default:
		return 0, typeMismatch(descName, v)
	}
	if bits < 64 && u >= uint64(1)<<uint(bits) {
		return 0, typeMismatch(descName, v)
	}
	return u, nil
}

// coerceInt converts v to an int64 that fits in bits (8/16/32/64).
func coerceInt(v interface{}, bits int, descName string) (int64, error) {
	rv := reflect.ValueOf(v)
	var i int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > (1<<63 - 1) {
			return 0, typeMismatch(descName, v)
		}
		i = int64(u)
	default:
		return 0, typeMismatch(descName, v)
	}
	if bits < 64 {
		min := -(int64(1) << uint(bits-1))
		max := int64(1)<<uint(bits-1) - 1
		if i < min || i > max {
			return 0, typeMismatch(descName, v)
		}
	}
	return i, nil
}

// coerceBigUint converts v (an *big.Int or any Go integer kind) to a
// non-negative big.Int, for U128.
func coerceBigUint(v interface{}, descName string) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n.Sign() < 0 {
			return nil, runtime.Newf(runtime.NegativeUnsigned, "value %s is negative for unsigned descriptor %s", n.String(), descName)
		}
		if n.BitLen() > 128 {
			return nil, typeMismatch(descName, v)
		}
		return n, nil
	default:
		u, err := coerceUint(v, 64, descName)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(u), nil
	}
}

// coerceBigInt converts v (a *big.Int or any Go integer kind) to a big.Int,
// for I128.
func coerceBigInt(v interface{}, descName string) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		limit := new(big.Int).Lsh(big.NewInt(1), 127)
		negLimit := new(big.Int).Neg(limit)
		if n.Cmp(negLimit) < 0 || n.Cmp(limit) >= 0 {
			return nil, typeMismatch(descName, v)
		}
		return n, nil
	default:
		i, err := coerceInt(v, 64, descName)
		if err != nil {
			return nil, err
		}
		return big.NewInt(i), nil
	}
}

// coerceFloat32 converts v to float32.
func coerceFloat32(v interface{}, descName string) (float32, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return float32(rv.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float32(rv.Int()), nil
	default:
		return 0, typeMismatch(descName, v)
	}
}

// coerceFloat64 converts v to float64.
func coerceFloat64(v interface{}, descName string) (float64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	default:
		return 0, typeMismatch(descName, v)
	}
}

// asIterable converts a slice or array value into a []interface{} so Seq/Set
// accept any concretely-typed Go slice, not only []interface{}.
func asIterable(v interface{}, descName string) ([]interface{}, error) {
	if items, ok := v.([]interface{}); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeMismatch(descName, v)
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

type mapEntry struct {
	Key   interface{}
	Value interface{}
}

// asMapEntries converts a map value into an ordered (but arbitrarily
// ordered, per §4.4) list of key/value pairs.
func asMapEntries(v interface{}, descName string) ([]mapEntry, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, typeMismatch(descName, v)
	}
	entries := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, mapEntry{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}
	return entries, nil
}
