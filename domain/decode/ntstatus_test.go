package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenontools/ppccalc/domain/numeric"
)

func TestNTStatusDecode_KnownError(t *testing.T) {
	info, err := NTStatusDecode("0xC0000008")
	require.NoError(t, err)

	assert.Equal(t, "0xC0000008", info.Status)
	assert.Equal(t, "error", info.Severity)
	assert.Equal(t, SeverityError, info.SeverityCode)
	assert.False(t, info.Customer)
	assert.Equal(t, "0x000", info.Facility)
	assert.Equal(t, "0x0008", info.Code)
	assert.Equal(t, "STATUS_INVALID_HANDLE", info.Name)
	assert.True(t, info.Known)
}

func TestNTStatusDecode_KnownWarning(t *testing.T) {
	info, err := NTStatusDecode("0x80000005")
	require.NoError(t, err)

	assert.Equal(t, "warning", info.Severity)
	assert.Equal(t, "STATUS_BUFFER_OVERFLOW", info.Name)
}

func TestNTStatusDecode_Success(t *testing.T) {
	info, err := NTStatusDecode("0")
	require.NoError(t, err)

	assert.Equal(t, "success", info.Severity)
	assert.Equal(t, "STATUS_SUCCESS", info.Name)
}

func TestNTStatusDecode_Informational(t *testing.T) {
	info, err := NTStatusDecode("0x40000000")
	require.NoError(t, err)
	assert.Equal(t, "informational", info.Severity)
}

func TestNTStatusDecode_Unknown(t *testing.T) {
	// 0xC0120007: error severity, facility 0x012, code 0x0007, not in
	// the well-known table. The structural fields still decompose.
	info, err := NTStatusDecode("0xC0120007")
	require.NoError(t, err)

	assert.Equal(t, "error", info.Severity)
	assert.Equal(t, "0x012", info.Facility)
	assert.Equal(t, "0x0007", info.Code)
	assert.Equal(t, "UNKNOWN", info.Name)
	assert.False(t, info.Known)
}

func TestNTStatusDecode_CustomerBit(t *testing.T) {
	info, err := NTStatusDecode("0xE0000001")
	require.NoError(t, err)
	assert.True(t, info.Customer)
	assert.Equal(t, "error", info.Severity)
}

func TestNTStatusDecode_InvalidLiteral(t *testing.T) {
	_, err := NTStatusDecode("STATUS_SUCCESS")
	require.Error(t, err)
	assert.True(t, numeric.IsKind(err, numeric.KindParse))
}

func TestNTStatusIsError(t *testing.T) {
	ok, err := NTStatusIsError("0xC0000008")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NTStatusIsError("0x80000005")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNTStatusIsWarning(t *testing.T) {
	ok, err := NTStatusIsWarning("0x80000005")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NTStatusIsWarning("0xC0000008")
	require.NoError(t, err)
	assert.False(t, ok)
}
