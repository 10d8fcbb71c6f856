// Package bitfield implements mask construction, shifting, field
// extraction, and the PowerPC rotate-then-mask instruction.
//
// Two bit-numbering conventions coexist here on purpose. Mask and Extract
// number bits LSB-origin (bit 0 is the least significant bit), the way
// generic bit-field work is described. Rlwinm numbers its MB/ME mask
// bounds MSB-origin (bit 0 is the most significant bit of the 32-bit
// word), matching the PowerPC ISA. They are distinct hardware conventions,
// not a unification candidate.
package bitfield

import (
	"math/bits"
	"strconv"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// Direction selects which way Shift moves bits.
type Direction string

// Shift directions.
const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// MaskResult describes an inclusive LSB-origin bit mask.
type MaskResult struct {
	Hex      string `json:"hex"`
	Decimal  string `json:"decimal"`
	StartBit int    `json:"start_bit"`
	EndBit   int    `json:"end_bit"`
	NumBits  int    `json:"num_bits"`
	Bits     int    `json:"bits"`
}

// Mask builds the inclusive mask covering [min(startBit,endBit),
// max(startBit,endBit)], LSB-origin. The bounds may be given in either
// order.
func Mask(startBit, endBit, bitWidth int) (MaskResult, error) {
	w, err := numeric.NewWidth(bitWidth)
	if err != nil {
		return MaskResult{}, err
	}
	if startBit < 0 || startBit >= w.Bits() {
		return MaskResult{}, numeric.RangeErrorf("start bit %d outside [0, %d)", startBit, w.Bits())
	}
	if endBit < 0 || endBit >= w.Bits() {
		return MaskResult{}, numeric.RangeErrorf("end bit %d outside [0, %d)", endBit, w.Bits())
	}

	lo, hi := startBit, endBit
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo + 1
	mask := (^uint64(0) >> (64 - uint(span))) << uint(lo)

	v := numeric.NewValue(mask, w)
	return MaskResult{
		Hex:      v.Hex(),
		Decimal:  strconv.FormatUint(v.Unsigned(), 10),
		StartBit: lo,
		EndBit:   hi,
		NumBits:  span,
		Bits:     w.Bits(),
	}, nil
}

// ShiftResult describes a shift outcome in both interpretations.
type ShiftResult struct {
	Input     string `json:"input"`
	Hex       string `json:"hex"`
	Decimal   string `json:"decimal"`
	Signed    string `json:"signed"`
	Amount    int    `json:"amount"`
	Direction string `json:"direction"`
	Logical   bool   `json:"logical"`
	Bits      int    `json:"bits"`
}

// Shift shifts value by amount bits. Logical shifts fill with zeros in
// both directions; an arithmetic right shift replicates the sign bit; an
// arithmetic left shift is the same operation as a logical left shift
// (PowerPC draws no distinction). Amounts of bitWidth or more saturate to
// zero, or to all sign bits for an arithmetic right shift.
func Shift(value string, amount int, direction Direction, logical bool, bitWidth int) (ShiftResult, error) {
	w, err := numeric.NewWidth(bitWidth)
	if err != nil {
		return ShiftResult{}, err
	}
	if amount < 0 {
		return ShiftResult{}, numeric.DomainErrorf("negative shift amount %d", amount)
	}
	if direction != DirectionLeft && direction != DirectionRight {
		return ShiftResult{}, numeric.DomainErrorf("unknown shift direction %q", direction)
	}

	v, err := numeric.ParseLiteral(value, w)
	if err != nil {
		return ShiftResult{}, err
	}

	var shifted uint64
	switch {
	case direction == DirectionLeft:
		if amount < w.Bits() {
			shifted = v.Unsigned() << uint(amount)
		}
	case logical:
		if amount < w.Bits() {
			shifted = v.Unsigned() >> uint(amount)
		}
	default:
		// Arithmetic right: sign-extend to 64 bits, then the native
		// signed shift replicates the sign bit. Saturation at >= width
		// falls out of clamping to 63.
		n := amount
		if n > 63 {
			n = 63
		}
		shifted = uint64(v.Signed() >> uint(n))
	}

	out := numeric.NewValue(shifted, w)
	return ShiftResult{
		Input:     v.Hex(),
		Hex:       out.Hex(),
		Decimal:   strconv.FormatUint(out.Unsigned(), 10),
		Signed:    strconv.FormatInt(out.Signed(), 10),
		Amount:    amount,
		Direction: string(direction),
		Logical:   logical,
		Bits:      w.Bits(),
	}, nil
}

// ExtractResult describes an extracted bit field.
type ExtractResult struct {
	Input    string `json:"input"`
	Hex      string `json:"hex"`
	Decimal  string `json:"decimal"`
	StartBit int    `json:"start_bit"`
	NumBits  int    `json:"num_bits"`
	Bits     int    `json:"bits"`
}

// Extract returns (value >> startBit) & ((1 << numBits) - 1), unsigned,
// with startBit numbered from the least significant bit.
func Extract(value string, startBit, numBits, bitWidth int) (ExtractResult, error) {
	w, err := numeric.NewWidth(bitWidth)
	if err != nil {
		return ExtractResult{}, err
	}
	if startBit < 0 || startBit >= w.Bits() {
		return ExtractResult{}, numeric.RangeErrorf("start bit %d outside [0, %d)", startBit, w.Bits())
	}
	if numBits < 1 || startBit+numBits > w.Bits() {
		return ExtractResult{}, numeric.RangeErrorf("field of %d bits at bit %d does not fit in %d bits",
			numBits, startBit, w.Bits())
	}

	v, err := numeric.ParseLiteral(value, w)
	if err != nil {
		return ExtractResult{}, err
	}

	field := (v.Unsigned() >> uint(startBit)) & (^uint64(0) >> (64 - uint(numBits)))
	out := numeric.NewValue(field, w)
	return ExtractResult{
		Input:    v.Hex(),
		Hex:      out.Hex(),
		Decimal:  strconv.FormatUint(out.Unsigned(), 10),
		StartBit: startBit,
		NumBits:  numBits,
		Bits:     w.Bits(),
	}, nil
}

// RlwinmResult describes one rlwinm evaluation step by step.
type RlwinmResult struct {
	Input     string `json:"input"`
	Rotated   string `json:"rotated"`
	Mask      string `json:"mask"`
	Hex       string `json:"hex"`
	Decimal   string `json:"decimal"`
	Shift     int    `json:"shift"`
	MaskBegin int    `json:"mask_begin"`
	MaskEnd   int    `json:"mask_end"`
}

// Rlwinm reproduces the PowerPC rotate-left-word-immediate-then-AND-mask
// instruction: value is rotated left by shift mod 32 (a true rotate, bits
// leaving the top re-enter at the bottom) and ANDed with the MB/ME mask.
// MB and ME are MSB-origin: bit 0 is the most significant bit of the
// word. MB > ME denotes a wraparound mask covering [MB,31] and [0,ME].
func Rlwinm(value string, shift, maskBegin, maskEnd int) (RlwinmResult, error) {
	if shift < 0 {
		return RlwinmResult{}, numeric.DomainErrorf("negative rotate amount %d", shift)
	}
	if maskBegin < 0 || maskBegin > 31 {
		return RlwinmResult{}, numeric.RangeErrorf("mask begin %d outside [0, 32)", maskBegin)
	}
	if maskEnd < 0 || maskEnd > 31 {
		return RlwinmResult{}, numeric.RangeErrorf("mask end %d outside [0, 32)", maskEnd)
	}

	v, err := numeric.ParseLiteral(value, numeric.Width32)
	if err != nil {
		return RlwinmResult{}, err
	}

	rotated := bits.RotateLeft32(uint32(v.Unsigned()), shift%32)
	mask := mbmeMask(maskBegin, maskEnd)
	result := numeric.NewValue(uint64(rotated&mask), numeric.Width32)

	return RlwinmResult{
		Input:     v.Hex(),
		Rotated:   numeric.NewValue(uint64(rotated), numeric.Width32).Hex(),
		Mask:      numeric.NewValue(uint64(mask), numeric.Width32).Hex(),
		Hex:       result.Hex(),
		Decimal:   strconv.FormatUint(result.Unsigned(), 10),
		Shift:     shift % 32,
		MaskBegin: maskBegin,
		MaskEnd:   maskEnd,
	}, nil
}

// mbmeMask builds the PowerPC MB/ME mask. MSB-origin bit n is LSB-origin
// bit 31-n, so a contiguous MB <= ME mask spans LSB bits [31-ME, 31-MB].
// A wrapped mask (MB > ME) is the complement of the contiguous gap
// between ME and MB.
func mbmeMask(mb, me int) uint32 {
	if mb > me {
		if mb == me+1 {
			return ^uint32(0)
		}
		return ^mbmeMask(me+1, mb-1)
	}
	span := me - mb + 1
	return (^uint32(0) >> (32 - uint(span))) << uint(31-me)
}
