package numeric

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Conversion reports one numeric answer in every rendering a caller might
// want. Decimal carries the interpretation the operation was asked for;
// Unsigned and Signed always carry both views. Values are strings so that
// 64-bit magnitudes survive JSON serialization intact.
type Conversion struct {
	Hex      string `json:"hex"`
	Decimal  string `json:"decimal"`
	Unsigned string `json:"unsigned"`
	Signed   string `json:"signed"`
	Bits     int    `json:"bits"`
}

func newConversion(v Value, decimal string) Conversion {
	return Conversion{
		Hex:      v.Hex(),
		Decimal:  decimal,
		Unsigned: strconv.FormatUint(v.Unsigned(), 10),
		Signed:   strconv.FormatInt(v.Signed(), 10),
		Bits:     v.Width().Bits(),
	}
}

// HexToDec converts a hex literal to decimal at the given width. The
// literal must be representable in the width; excess significant bits are
// a parse failure, never a silent mask.
func HexToDec(hex string, signed bool, bitWidth int) (Conversion, error) {
	w, err := NewWidth(bitWidth)
	if err != nil {
		return Conversion{}, err
	}
	v, err := parseHexStrict(hex, w)
	if err != nil {
		return Conversion{}, err
	}

	decimal := strconv.FormatUint(v.Unsigned(), 10)
	if signed {
		decimal = strconv.FormatInt(v.Signed(), 10)
	}
	return newConversion(v, decimal), nil
}

// DecToHex converts a decimal literal (possibly negative) to zero-padded
// hex at the given width, encoding negatives via two's complement.
func DecToHex(decimal string, bitWidth int) (Conversion, error) {
	w, err := NewWidth(bitWidth)
	if err != nil {
		return Conversion{}, err
	}
	v, err := ParseLiteral(decimal, w)
	if err != nil {
		return Conversion{}, err
	}
	return newConversion(v, v.Hex()), nil
}

// TwosComplement returns the opposite-signedness interpretation of a hex
// or decimal literal at the given width: a negative literal yields its
// unsigned encoding, anything else yields its signed reinterpretation.
func TwosComplement(value string, bitWidth int) (Conversion, error) {
	w, err := NewWidth(bitWidth)
	if err != nil {
		return Conversion{}, err
	}
	v, negative, err := parseLiteral(value, w)
	if err != nil {
		return Conversion{}, err
	}

	decimal := strconv.FormatInt(v.Signed(), 10)
	if negative {
		decimal = strconv.FormatUint(v.Unsigned(), 10)
	}
	return newConversion(v, decimal), nil
}

// SignExtend treats value as a fromBits-wide two's-complement number and
// replicates its sign bit up to toBits.
func SignExtend(value string, fromBits, toBits int) (Conversion, error) {
	from, err := NewWidth(fromBits)
	if err != nil {
		return Conversion{}, err
	}
	to, err := NewWidth(toBits)
	if err != nil {
		return Conversion{}, err
	}
	if to < from {
		return Conversion{}, DomainErrorf("cannot sign-extend from %d bits down to %d bits", fromBits, toBits)
	}

	narrow, err := ParseLiteral(value, from)
	if err != nil {
		return Conversion{}, err
	}

	// Signed() already replicates the sign bit to 64 bits; reducing back
	// to the target width keeps exactly toBits of it.
	wide := NewValue(uint64(narrow.Signed()), to)
	return newConversion(wide, strconv.FormatInt(wide.Signed(), 10)), nil
}

// Sum is the result of a 32-bit wrapping add.
type Sum struct {
	Base     string `json:"base"`
	Offset   string `json:"offset"`
	Hex      string `json:"hex"`
	Decimal  string `json:"decimal"`
	Signed   string `json:"signed"`
	Overflow bool   `json:"overflow"`
	Bits     int    `json:"bits"`
}

// AddOffset adds base and offset (each hex or decimal) with 32-bit
// wraparound. Overflow is the carry out of bit 31.
func AddOffset(base, offset string) (Sum, error) {
	b, err := ParseLiteral(base, Width32)
	if err != nil {
		return Sum{}, err
	}
	o, err := ParseLiteral(offset, Width32)
	if err != nil {
		return Sum{}, err
	}

	total, carry := bits.Add32(uint32(b.Unsigned()), uint32(o.Unsigned()), 0)
	v := NewValue(uint64(total), Width32)
	return Sum{
		Base:     b.Hex(),
		Offset:   o.Hex(),
		Hex:      v.Hex(),
		Decimal:  strconv.FormatUint(v.Unsigned(), 10),
		Signed:   strconv.FormatInt(v.Signed(), 10),
		Overflow: carry == 1,
		Bits:     Width32.Bits(),
	}, nil
}

// Range describes the half-open interval [start, start+size).
type Range struct {
	StartHex     string `json:"start_hex"`
	StartDecimal string `json:"start_decimal"`
	EndHex       string `json:"end_hex"`
	EndDecimal   string `json:"end_decimal"`
	SizeHex      string `json:"size_hex"`
	SizeDecimal  string `json:"size_decimal"`
}

// AddressRange computes [start, start+size). The exclusive end is kept at
// full precision rather than wrapped, so a range touching the top of the
// 32-bit space reports 0x100000000.
func AddressRange(start, size string) (Range, error) {
	s, err := ParseLiteral(start, Width32)
	if err != nil {
		return Range{}, err
	}
	n, err := ParseLiteral(size, Width32)
	if err != nil {
		return Range{}, err
	}

	end := s.Unsigned() + n.Unsigned()
	return Range{
		StartHex:     s.Hex(),
		StartDecimal: strconv.FormatUint(s.Unsigned(), 10),
		EndHex:       fmt.Sprintf("0x%08X", end),
		EndDecimal:   strconv.FormatUint(end, 10),
		SizeHex:      n.Hex(),
		SizeDecimal:  strconv.FormatUint(n.Unsigned(), 10),
	}, nil
}
