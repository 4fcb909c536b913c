// ABOUTME: The Options record threaded unchanged through every recursive dispatch call
// ABOUTME: No component reads configuration from ambient state; it all flows through here
package codec

import "github.com/binwire/bincode/descriptor"

// Options is the one configuration record the public façade accepts. It is
// threaded through every recursive encode/decode call unchanged; nothing in
// the codec consults global state instead.
type Options struct {
	// Varint switches every length prefix, every non-byte-wide integer and
	// every enum discriminant to variable-length form. U8/I8 are unaffected.
	Varint bool

	// MaxTupleSize overrides descriptor.DefaultMaxTupleSize when positive.
	MaxTupleSize int
}

func (o Options) maxTupleSize() int {
	if o.MaxTupleSize > 0 {
		return o.MaxTupleSize
	}
	return descriptor.DefaultMaxTupleSize
}
