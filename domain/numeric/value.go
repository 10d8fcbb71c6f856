package numeric

import "fmt"

// Width is a permitted bit width for a width-bounded integer.
type Width int

// Permitted widths. DefaultWidth matches PowerPC's natural word size.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64

	DefaultWidth = Width32
)

// NewWidth validates bits as a permitted width.
func NewWidth(bits int) (Width, error) {
	switch bits {
	case 8, 16, 32, 64:
		return Width(bits), nil
	default:
		return 0, RangeErrorf("invalid bit width %d: must be 8, 16, 32 or 64", bits)
	}
}

// Bits returns the width in bits.
func (w Width) Bits() int { return int(w) }

// Mask returns the all-ones mask for the width.
func (w Width) Mask() uint64 {
	return ^uint64(0) >> (64 - uint(w))
}

// SignBit returns the mask of the most significant bit at this width.
func (w Width) SignBit() uint64 {
	return 1 << (uint(w) - 1)
}

// Nibbles returns the number of hex digits a value of this width renders to.
func (w Width) Nibbles() int { return int(w) / 4 }

// Value is an immutable width-bounded integer: an unsigned magnitude that
// always fits in its width. The signed view is derived by two's-complement
// reinterpretation, so a Value never stores a sign of its own.
type Value struct {
	u     uint64
	width Width
}

// NewValue creates a Value, reducing u modulo 2^width.
func NewValue(u uint64, width Width) Value {
	return Value{u: u & width.Mask(), width: width}
}

// Unsigned returns the canonical unsigned magnitude in [0, 2^width).
func (v Value) Unsigned() uint64 { return v.u }

// Signed returns the two's-complement reinterpretation.
func (v Value) Signed() int64 {
	if v.u&v.width.SignBit() != 0 {
		return int64(v.u | ^v.width.Mask())
	}
	return int64(v.u)
}

// Width returns the bit width.
func (v Value) Width() Width { return v.width }

// Hex renders the magnitude as 0x-prefixed uppercase hex, zero-padded to
// width/4 nibbles.
func (v Value) Hex() string {
	return fmt.Sprintf("0x%0*X", v.width.Nibbles(), v.u)
}
