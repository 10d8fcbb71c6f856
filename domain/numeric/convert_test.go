package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToDec_Signed(t *testing.T) {
	out, err := HexToDec("0xFFFFFFFF", true, 32)
	require.NoError(t, err)

	assert.Equal(t, "-1", out.Decimal)
	assert.Equal(t, "4294967295", out.Unsigned)
	assert.Equal(t, "0xFFFFFFFF", out.Hex)
	assert.Equal(t, 32, out.Bits)
}

func TestHexToDec_Unsigned(t *testing.T) {
	out, err := HexToDec("82A00000", false, 32)
	require.NoError(t, err)

	assert.Equal(t, "2191523840", out.Decimal)
	assert.Equal(t, "-2103443456", out.Signed)
}

func TestHexToDec_TooWide(t *testing.T) {
	_, err := HexToDec("0x1FFFFFFFF", true, 32)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
}

func TestHexToDec_InvalidWidth(t *testing.T) {
	_, err := HexToDec("0xFF", true, 12)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindRange))
}

func TestDecToHex_Negative(t *testing.T) {
	out, err := DecToHex("-1", 32)
	require.NoError(t, err)
	assert.Equal(t, "0xFFFFFFFF", out.Hex)

	out, err = DecToHex("-15952", 32)
	require.NoError(t, err)
	assert.Equal(t, "0xFFFFC1B0", out.Hex)
}

func TestDecToHex_ZeroPadding(t *testing.T) {
	for _, tc := range []struct {
		bits int
		want string
	}{
		{8, "0x2A"},
		{16, "0x002A"},
		{32, "0x0000002A"},
		{64, "0x000000000000002A"},
	} {
		out, err := DecToHex("42", tc.bits)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out.Hex)
	}
}

func TestRoundTrip_DecHexDec(t *testing.T) {
	for _, v := range []string{"0", "1", "-1", "2147483647", "-2147483648", "-15952", "305419896"} {
		hexOut, err := DecToHex(v, 32)
		require.NoError(t, err)

		decOut, err := HexToDec(hexOut.Hex, true, 32)
		require.NoError(t, err)
		assert.Equal(t, v, decOut.Decimal, "round-trip of %s", v)
	}
}

func TestTwosComplement_Involution(t *testing.T) {
	// Unsigned in, signed out, and back again.
	first, err := TwosComplement("4294967295", 32)
	require.NoError(t, err)
	assert.Equal(t, "-1", first.Decimal)

	second, err := TwosComplement(first.Decimal, 32)
	require.NoError(t, err)
	assert.Equal(t, "4294967295", second.Decimal)
}

func TestTwosComplement_HexInput(t *testing.T) {
	out, err := TwosComplement("0x80000000", 32)
	require.NoError(t, err)
	assert.Equal(t, "-2147483648", out.Decimal)
}

func TestSignExtend(t *testing.T) {
	out, err := SignExtend("0xFFFF", 16, 32)
	require.NoError(t, err)
	assert.Equal(t, "-1", out.Decimal)
	assert.Equal(t, "0xFFFFFFFF", out.Hex)

	out, err = SignExtend("0x7FFF", 16, 32)
	require.NoError(t, err)
	assert.Equal(t, "32767", out.Decimal)
	assert.Equal(t, "0x00007FFF", out.Hex)
}

func TestSignExtend_Narrowing(t *testing.T) {
	_, err := SignExtend("0xFFFF", 32, 16)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDomain))
}

func TestAddOffset_NegativeOffset(t *testing.T) {
	out, err := AddOffset("0x82A00000", "-15952")
	require.NoError(t, err)

	assert.Equal(t, "0x829FC1B0", out.Hex)
	// Adding a two's-complement negative carries out of bit 31.
	assert.True(t, out.Overflow)
}

func TestAddOffset_Wraparound(t *testing.T) {
	out, err := AddOffset("0xFFFFFFFF", "1")
	require.NoError(t, err)

	assert.Equal(t, "0x00000000", out.Hex)
	assert.Equal(t, "0", out.Decimal)
	assert.True(t, out.Overflow)
}

func TestAddOffset_NoOverflow(t *testing.T) {
	out, err := AddOffset("0x82000000", "0x1000")
	require.NoError(t, err)

	assert.Equal(t, "0x82001000", out.Hex)
	assert.False(t, out.Overflow)
}

func TestAddressRange(t *testing.T) {
	out, err := AddressRange("0x82000000", "0x20000")
	require.NoError(t, err)

	assert.Equal(t, "0x82000000", out.StartHex)
	assert.Equal(t, "0x82020000", out.EndHex)
	assert.Equal(t, "131072", out.SizeDecimal)
}

func TestAddressRange_TopOfSpace(t *testing.T) {
	out, err := AddressRange("0xFFFFF000", "0x1000")
	require.NoError(t, err)
	assert.Equal(t, "0x100000000", out.EndHex)
}

func TestParseLiteral_Sniffing(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uint64
	}{
		{"1234", 1234},             // all digits: decimal
		{"0x1234", 0x1234},         // prefixed hex
		{"FF", 0xFF},               // hex letters force base 16
		{"ff", 0xFF},               // case-insensitive
		{" 42 ", 42},               // surrounding whitespace
		{"-1", 0xFFFFFFFF},         // negative decimal encodes
		{"-0x10", 0xFFFFFFF0},      // negative hex encodes
		{"0x100000001", 1},         // out of range reduces mod 2^32
	} {
		v, err := ParseLiteral(tc.in, Width32)
		require.NoError(t, err, "literal %q", tc.in)
		assert.Equal(t, tc.want, v.Unsigned(), "literal %q", tc.in)
	}
}

func TestParseLiteral_Invalid(t *testing.T) {
	for _, in := range []string{"", "0x", "hello!", "12.5", "--1"} {
		_, err := ParseLiteral(in, Width32)
		require.Error(t, err, "literal %q", in)
		assert.True(t, IsKind(err, KindParse), "literal %q", in)
	}
}

func TestValue_SignedReinterpretation(t *testing.T) {
	for _, tc := range []struct {
		u     uint64
		width Width
		want  int64
	}{
		{0xFF, Width8, -1},
		{0x7F, Width8, 127},
		{0x8000, Width16, -32768},
		{0xFFFFFFFF, Width32, -1},
		{0x80000000, Width32, -2147483648},
		{0xFFFFFFFFFFFFFFFF, Width64, -1},
	} {
		v := NewValue(tc.u, tc.width)
		assert.Equal(t, tc.want, v.Signed(), "0x%X at %d bits", tc.u, tc.width)
	}
}
