// ABOUTME: Resolves how collection lengths and enum discriminants hit the wire
// ABOUTME: The rest of the dispatcher is policy-agnostic; everything funnels through here
package codec

import (
	"github.com/binwire/bincode/runtime"
)

// writeLength emits a collection length or string byte-length: fixed U64 in
// default mode, varint in varint mode.
func writeLength(e *runtime.Encoder, opts Options, n int) {
	if opts.Varint {
		e.WriteVarint(uint64(n))
		return
	}
	e.WriteUint64(uint64(n))
}

// readLength reads a collection length or string byte-length back.
func readLength(d *runtime.Decoder, opts Options) (int, error) {
	if opts.Varint {
		v, err := d.ReadVarint()
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}
	v, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// writeDiscriminant emits an enum variant index: fixed U32 in default mode,
// varint in varint mode.
func writeDiscriminant(e *runtime.Encoder, opts Options, index int) {
	if opts.Varint {
		e.WriteVarint(uint64(index))
		return
	}
	e.WriteUint32(uint32(index))
}

// readDiscriminant reads an enum variant index back, consuming it exactly
// once. The open question in the design notes about double-consuming the
// discriminant in varint mode does not apply here: the dispatcher never
// re-reads a discriminant once decodeUserRef has consumed it.
func readDiscriminant(d *runtime.Decoder, opts Options) (int, error) {
	if opts.Varint {
		v, err := d.ReadVarint()
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}
	v, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
