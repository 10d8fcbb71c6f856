package decode

import (
	"math/bits"
	"strconv"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// AlignResult describes rounding a value up to a power-of-two boundary.
type AlignResult struct {
	InputHex       string `json:"input_hex"`
	InputDecimal   string `json:"input_decimal"`
	Boundary       uint64 `json:"boundary"`
	AlignedHex     string `json:"aligned_hex"`
	AlignedDecimal string `json:"aligned_decimal"`
	// Offset is how far the input sat below the aligned result.
	Offset uint64 `json:"offset"`
}

// RoundToPage rounds size up to the next multiple of pageSize.
func RoundToPage(size string, pageSize int) (AlignResult, error) {
	return alignUp(size, pageSize)
}

// PageAlign rounds an address up to the next page boundary.
func PageAlign(address string, pageSize int) (AlignResult, error) {
	return alignUp(address, pageSize)
}

// AlignAddress rounds an address up to an arbitrary power-of-two boundary
// and reports the adjustment applied.
func AlignAddress(address string, boundary int) (AlignResult, error) {
	return alignUp(address, boundary)
}

// alignUp computes (v + b - 1) &^ (b - 1) at 64-bit width. The boundary
// must be a power of two or the identity breaks.
func alignUp(value string, boundary int) (AlignResult, error) {
	if boundary <= 0 || bits.OnesCount64(uint64(boundary)) != 1 {
		return AlignResult{}, numeric.DomainErrorf("boundary %d is not a power of two", boundary)
	}

	v, err := numeric.ParseLiteral(value, numeric.Width64)
	if err != nil {
		return AlignResult{}, err
	}

	b := uint64(boundary)
	aligned := (v.Unsigned() + b - 1) &^ (b - 1)
	out := numeric.NewValue(aligned, numeric.Width64)

	return AlignResult{
		InputHex:       v.Hex(),
		InputDecimal:   strconv.FormatUint(v.Unsigned(), 10),
		Boundary:       b,
		AlignedHex:     out.Hex(),
		AlignedDecimal: strconv.FormatUint(aligned, 10),
		Offset:         aligned - v.Unsigned(),
	}, nil
}
