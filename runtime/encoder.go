// ABOUTME: Byte-level little-endian encoder for the Bincode wire format
// ABOUTME: Mirrors the fixed-width write methods of a bitstream writer, minus bit packing
package runtime

import (
	"encoding/binary"
	"math"
	"math/big"
)

// Encoder accumulates an output buffer. Bincode has no bit-level fields, so
// unlike a general bitstream writer this one only ever appends whole bytes.
type Encoder struct {
	bytes []byte
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{bytes: make([]byte, 0, 32)}
}

// Finish returns the accumulated bytes.
func (e *Encoder) Finish() []byte {
	return e.bytes
}

// Position returns the number of bytes written so far.
func (e *Encoder) Position() int {
	return len(e.bytes)
}

// WriteByte appends a single raw byte.
func (e *Encoder) WriteByte(b byte) {
	e.bytes = append(e.bytes, b)
}

// WriteBytes appends a slice of raw bytes verbatim.
func (e *Encoder) WriteBytes(data []byte) {
	e.bytes = append(e.bytes, data...)
}

// WriteUint8 writes an 8-bit unsigned integer.
func (e *Encoder) WriteUint8(v uint8) {
	e.bytes = append(e.bytes, v)
}

// WriteUint16 writes a 16-bit unsigned integer, little-endian.
func (e *Encoder) WriteUint16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	e.bytes = append(e.bytes, buf[:]...)
}

// WriteUint32 writes a 32-bit unsigned integer, little-endian.
func (e *Encoder) WriteUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	e.bytes = append(e.bytes, buf[:]...)
}

// WriteUint64 writes a 64-bit unsigned integer, little-endian.
func (e *Encoder) WriteUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	e.bytes = append(e.bytes, buf[:]...)
}

// WriteUint128 writes a 128-bit unsigned integer, little-endian. v must be
// non-negative and fit in 128 bits; callers validate before calling this.
func (e *Encoder) WriteUint128(v *big.Int) {
	buf := make([]byte, 16)
	le := v.Bytes() // big-endian, minimal length
	for i, b := range le {
		buf[len(le)-1-i] = b
	}
	e.bytes = append(e.bytes, buf...)
}

// WriteInt8 writes an 8-bit signed integer (two's complement).
func (e *Encoder) WriteInt8(v int8) { e.WriteUint8(uint8(v)) }

// WriteInt16 writes a 16-bit signed integer (two's complement), little-endian.
func (e *Encoder) WriteInt16(v int16) { e.WriteUint16(uint16(v)) }

// WriteInt32 writes a 32-bit signed integer (two's complement), little-endian.
func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }

// WriteInt64 writes a 64-bit signed integer (two's complement), little-endian.
func (e *Encoder) WriteInt64(v int64) { e.WriteUint64(uint64(v)) }

// WriteInt128 writes a 128-bit signed integer (two's complement), little-endian.
func (e *Encoder) WriteInt128(v *big.Int) {
	u := new(big.Int).Set(v)
	if v.Sign() < 0 {
		// Two's complement over 128 bits: (1<<128) + v
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		u = u.Add(mod, v)
	}
	e.WriteUint128(u)
}

// WriteFloat32 writes a 32-bit IEEE-754 float, little-endian.
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes a 64-bit IEEE-754 float, little-endian.
func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

// WriteBool writes a boolean as 0x01 (true) or 0x00 (false).
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// Varint tag bytes, as laid out in the varint codec table.
const (
	varintTag16  = 0xFB
	varintTag32  = 0xFC
	varintTag64  = 0xFD
	varintTag128 = 0xFE
)

// WriteVarint writes v using the single-byte-or-tagged variable-length
// unsigned integer scheme: values up to 250 are a single byte, larger values
// are preceded by a tag byte naming the fixed width that follows.
func (e *Encoder) WriteVarint(v uint64) {
	switch {
	case v <= 250:
		e.WriteUint8(uint8(v))
	case v <= 0xFFFF:
		e.WriteUint8(varintTag16)
		e.WriteUint16(uint16(v))
	case v <= 0xFFFFFFFF:
		e.WriteUint8(varintTag32)
		e.WriteUint32(uint32(v))
	default:
		e.WriteUint8(varintTag64)
		e.WriteUint64(v)
	}
}

// WriteVarint128 writes a value that may exceed 64 bits using the same
// tagged scheme, extending to a 16-byte little-endian field for magnitudes
// at or above 2^64.
func (e *Encoder) WriteVarint128(v *big.Int) {
	if v.IsUint64() {
		e.WriteVarint(v.Uint64())
		return
	}
	e.WriteUint8(varintTag128)
	e.WriteUint128(v)
}

// ZigZagEncode maps a signed value to unsigned so small magnitudes (positive
// or negative) map to small unsigned values, ready for varint encoding.
func ZigZagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigZagEncode128 is the big.Int form of ZigZagEncode, used for I128.
func ZigZagEncode128(v *big.Int) *big.Int {
	if v.Sign() >= 0 {
		return new(big.Int).Lsh(v, 1)
	}
	// (-v)*2 - 1
	neg := new(big.Int).Neg(v)
	doubled := neg.Lsh(neg, 1)
	return doubled.Sub(doubled, big.NewInt(1))
}
