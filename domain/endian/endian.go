// Package endian implements byte-order reversal for 16/32/64-bit
// integers and 32-bit IEEE-754 floats. Every operation is a pure byte
// permutation; no numeric computation happens beyond reinterpretation.
package endian

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// SwapResult describes an integer byte swap.
type SwapResult struct {
	OriginalHex     string `json:"original_hex"`
	OriginalDecimal string `json:"original_decimal"`
	SwappedHex      string `json:"swapped_hex"`
	SwappedDecimal  string `json:"swapped_decimal"`
	Bits            int    `json:"bits"`
}

// Swap16 reverses the byte order of a 16-bit integer.
func Swap16(value string) (SwapResult, error) {
	v, err := numeric.ParseLiteral(value, numeric.Width16)
	if err != nil {
		return SwapResult{}, err
	}
	swapped := uint64(bits.ReverseBytes16(uint16(v.Unsigned())))
	return newSwapResult(v, numeric.NewValue(swapped, numeric.Width16)), nil
}

// Swap32 reverses the byte order of a 32-bit integer.
func Swap32(value string) (SwapResult, error) {
	v, err := numeric.ParseLiteral(value, numeric.Width32)
	if err != nil {
		return SwapResult{}, err
	}
	swapped := uint64(bits.ReverseBytes32(uint32(v.Unsigned())))
	return newSwapResult(v, numeric.NewValue(swapped, numeric.Width32)), nil
}

// Swap64 reverses the byte order of a 64-bit integer.
func Swap64(value string) (SwapResult, error) {
	v, err := numeric.ParseLiteral(value, numeric.Width64)
	if err != nil {
		return SwapResult{}, err
	}
	swapped := bits.ReverseBytes64(v.Unsigned())
	return newSwapResult(v, numeric.NewValue(swapped, numeric.Width64)), nil
}

func newSwapResult(in, out numeric.Value) SwapResult {
	return SwapResult{
		OriginalHex:     in.Hex(),
		OriginalDecimal: strconv.FormatUint(in.Unsigned(), 10),
		SwappedHex:      out.Hex(),
		SwappedDecimal:  strconv.FormatUint(out.Unsigned(), 10),
		Bits:            in.Width().Bits(),
	}
}

// FloatSwapResult describes a 32-bit float byte swap. The float renderings
// are strings so that NaN and the infinities survive serialization.
type FloatSwapResult struct {
	OriginalHex   string `json:"original_hex"`
	OriginalFloat string `json:"original_float"`
	SwappedHex    string `json:"swapped_hex"`
	SwappedFloat  string `json:"swapped_float"`
}

// SwapFloat32 reinterprets a 32-bit pattern as an IEEE-754 binary32
// value, reverses its four bytes, and reports the float reading on both
// sides of the swap. Any 32-bit pattern is acceptable; validity as a
// float is not required.
func SwapFloat32(value string) (FloatSwapResult, error) {
	v, err := numeric.ParseLiteral(value, numeric.Width32)
	if err != nil {
		return FloatSwapResult{}, err
	}

	original := uint32(v.Unsigned())
	swapped := bits.ReverseBytes32(original)

	return FloatSwapResult{
		OriginalHex:   v.Hex(),
		OriginalFloat: formatFloat32(math.Float32frombits(original)),
		SwappedHex:    numeric.NewValue(uint64(swapped), numeric.Width32).Hex(),
		SwappedFloat:  formatFloat32(math.Float32frombits(swapped)),
	}, nil
}

func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
