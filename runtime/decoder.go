// ABOUTME: Byte-level little-endian decoder for the Bincode wire format
// ABOUTME: Mirrors the fixed-width read methods of a bitstream reader, minus bit packing
package runtime

import (
	"encoding/binary"
	"math"
	"math/big"
)

// Decoder reads sequentially from a byte slice it does not own or mutate.
type Decoder struct {
	bytes  []byte
	offset int
}

// NewDecoder wraps bytes for sequential reading starting at offset 0.
func NewDecoder(bytes []byte) *Decoder {
	return &Decoder{bytes: bytes}
}

// Position returns the current byte offset.
func (d *Decoder) Position() int {
	return d.offset
}

// Remaining returns the bytes not yet consumed. The caller must not mutate
// the returned slice; it aliases the decoder's backing array.
func (d *Decoder) Remaining() []byte {
	return d.bytes[d.offset:]
}

func (d *Decoder) need(n int) error {
	if len(d.bytes)-d.offset < n {
		return Newf(TruncatedInput, "need %d byte(s) at offset %d, have %d", n, d.offset, len(d.bytes)-d.offset)
	}
	return nil
}

// ReadByte reads a single raw byte.
func (d *Decoder) ReadByte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.bytes[d.offset]
	d.offset++
	return b, nil
}

// ReadBytes reads exactly n raw bytes.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.bytes[d.offset:d.offset+n])
	d.offset += n
	return out, nil
}

// ReadUint8 reads an 8-bit unsigned integer.
func (d *Decoder) ReadUint8() (uint8, error) {
	return d.ReadByte()
}

// ReadUint16 reads a 16-bit unsigned integer, little-endian.
func (d *Decoder) ReadUint16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.bytes[d.offset:])
	d.offset += 2
	return v, nil
}

// ReadUint32 reads a 32-bit unsigned integer, little-endian.
func (d *Decoder) ReadUint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.bytes[d.offset:])
	d.offset += 4
	return v, nil
}

// ReadUint64 reads a 64-bit unsigned integer, little-endian.
func (d *Decoder) ReadUint64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.bytes[d.offset:])
	d.offset += 8
	return v, nil
}

// ReadUint128 reads a 128-bit unsigned integer, little-endian.
func (d *Decoder) ReadUint128() (*big.Int, error) {
	buf, err := d.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	be := make([]byte, 16)
	for i, b := range buf {
		be[15-i] = b
	}
	return new(big.Int).SetBytes(be), nil
}

// ReadInt8 reads an 8-bit signed integer (two's complement).
func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads a 16-bit signed integer (two's complement), little-endian.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a 32-bit signed integer (two's complement), little-endian.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a 64-bit signed integer (two's complement), little-endian.
func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

// ReadInt128 reads a 128-bit signed integer (two's complement), little-endian.
func (d *Decoder) ReadInt128() (*big.Int, error) {
	u, err := d.ReadUint128()
	if err != nil {
		return nil, err
	}
	signBit := new(big.Int).Rsh(u, 127)
	if signBit.Sign() == 0 {
		return u, nil
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 128)
	return u.Sub(u, mod), nil
}

// ReadFloat32 reads a 32-bit IEEE-754 float, little-endian.
func (d *Decoder) ReadFloat32() (float32, error) {
	bits, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 reads a 64-bit IEEE-754 float, little-endian.
func (d *Decoder) ReadFloat64() (float64, error) {
	bits, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadBool reads a boolean byte. Any value other than 0x00/0x01 is InvalidBool.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, Newf(InvalidBool, "byte 0x%02x is not a valid bool", b)
	}
}

// ReadVarint reads the single-byte-or-tagged variable-length unsigned integer
// scheme. Only the 16-, 32- and 64-bit tags are accepted; any other tag above
// 250, including the 128-bit tag that ReadVarint128 handles, is InvalidVarint.
func (d *Decoder) ReadVarint() (uint64, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case tag <= 250:
		return uint64(tag), nil
	case tag == varintTag16:
		v, err := d.ReadUint16()
		return uint64(v), err
	case tag == varintTag32:
		v, err := d.ReadUint32()
		return uint64(v), err
	case tag == varintTag64:
		return d.ReadUint64()
	default:
		return 0, Newf(InvalidVarint, "tag byte 0x%02x is not a recognized varint prefix", tag)
	}
}

// ReadVarint128 reads a varint that may carry the 128-bit tag, returning a
// big.Int so values at or above 2^64 are represented exactly.
func (d *Decoder) ReadVarint128() (*big.Int, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case tag <= 250:
		return big.NewInt(int64(tag)), nil
	case tag == varintTag16:
		v, err := d.ReadUint16()
		return big.NewInt(int64(v)), err
	case tag == varintTag32:
		v, err := d.ReadUint32()
		return big.NewInt(int64(v)), err
	case tag == varintTag64:
		v, err := d.ReadUint64()
		return new(big.Int).SetUint64(v), err
	case tag == varintTag128:
		return d.ReadUint128()
	default:
		return nil, Newf(InvalidVarint, "tag byte 0x%02x is not a recognized varint prefix", tag)
	}
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// ZigZagDecode128 is the big.Int form of ZigZagDecode, used for I128.
func ZigZagDecode128(u *big.Int) *big.Int {
	half := new(big.Int).Rsh(u, 1)
	if u.Bit(0) == 0 {
		return half
	}
	return half.Neg(half).Sub(half, big.NewInt(1))
}
