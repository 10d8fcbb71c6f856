package ppccalc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenontools/ppccalc"
	"github.com/xenontools/ppccalc/domain/decode"
)

func TestEngine_Operations(t *testing.T) {
	engine := ppccalc.New()

	conv, err := engine.HexToDec("0x82A00000", true, 32)
	require.NoError(t, err)
	assert.Equal(t, "-2103443456", conv.Decimal)

	rot, err := engine.Rlwinm("0x00000001", 1, 0, 31)
	require.NoError(t, err)
	assert.Equal(t, "0x00000002", rot.Hex)

	info, err := engine.MemoryMap("0x82060000")
	require.NoError(t, err)
	assert.True(t, info.Valid)
	assert.Equal(t, "xex_data", info.Region)

	result, err := engine.Calculate("2 ** 10")
	require.NoError(t, err)
	assert.Equal(t, "1024", result.Decimal)
}

func TestEngine_WithRegions(t *testing.T) {
	table, err := decode.NewRegionTable([]decode.Region{
		{Name: "only", Start: 0x82000000, End: 0x84000000, Description: "Everything"},
	})
	require.NoError(t, err)

	engine := ppccalc.New(ppccalc.WithRegions(table))

	info, err := engine.MemoryMap("0x83123456")
	require.NoError(t, err)
	assert.Equal(t, "only", info.Region)
	assert.Equal(t, "0x1123456", info.Offset)
}
