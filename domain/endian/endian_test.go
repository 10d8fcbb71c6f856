package endian

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenontools/ppccalc/domain/numeric"
)

func TestSwap16(t *testing.T) {
	out, err := Swap16("0x1234")
	require.NoError(t, err)

	assert.Equal(t, "0x1234", out.OriginalHex)
	assert.Equal(t, "0x3412", out.SwappedHex)
	assert.Equal(t, "13330", out.SwappedDecimal)
	assert.Equal(t, 16, out.Bits)
}

func TestSwap32(t *testing.T) {
	out, err := Swap32("0x12345678")
	require.NoError(t, err)

	assert.Equal(t, "0x78563412", out.SwappedHex)
	assert.Equal(t, "2018915346", out.SwappedDecimal)
}

func TestSwap32_Involution(t *testing.T) {
	once, err := Swap32("0xDEADBEEF")
	require.NoError(t, err)
	twice, err2 := Swap32(once.SwappedHex)
	require.NoError(t, err2)

	assert.Equal(t, "0xDEADBEEF", twice.SwappedHex)
}

func TestSwap64(t *testing.T) {
	out, err := Swap64("0x0123456789ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "0xEFCDAB8967452301", out.SwappedHex)
}

func TestSwap_DecimalInput(t *testing.T) {
	// 4660 = 0x1234; decimal literals without hex letters stay decimal.
	out, err := Swap16("4660")
	require.NoError(t, err)
	assert.Equal(t, "0x3412", out.SwappedHex)
}

func TestSwap_InvalidLiteral(t *testing.T) {
	_, err := Swap32("zz")
	require.Error(t, err)
	assert.True(t, numeric.IsKind(err, numeric.KindParse))
}

func TestSwapFloat32(t *testing.T) {
	// 0x3F800000 is 1.0 big-endian; byte-swapped it reads as a denormal.
	out, err := SwapFloat32("0x3F800000")
	require.NoError(t, err)

	assert.Equal(t, "0x3F800000", out.OriginalHex)
	assert.Equal(t, "1", out.OriginalFloat)
	assert.Equal(t, "0x0000803F", out.SwappedHex)

	// The denormal rendering must parse back to the exact bit pattern.
	f, err := strconv.ParseFloat(out.SwappedFloat, 32)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0000803F), math.Float32bits(float32(f)))
}

func TestSwapFloat32_RoundTrip(t *testing.T) {
	once, err := SwapFloat32("0x0000803F")
	require.NoError(t, err)
	assert.Equal(t, "1", once.SwappedFloat)
	assert.Equal(t, "0x3F800000", once.SwappedHex)
}

func TestSwapFloat32_NonNumericPattern(t *testing.T) {
	// 0xFFC00000 is a quiet NaN; the swap must still succeed.
	out, err := SwapFloat32("0xFFC00000")
	require.NoError(t, err)
	assert.Equal(t, "NaN", out.OriginalFloat)
	assert.Equal(t, "0x0000C0FF", out.SwappedHex)
}
