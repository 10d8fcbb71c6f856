// Package ppccalc is a calculator toolkit for the low-level numeric
// reasoning that PowerPC binary recompilation keeps demanding: address
// arithmetic, two's-complement conversions, bit-field manipulation,
// endianness swapping, and platform-specific decoding (guest memory map,
// NTSTATUS, performance-counter ticks).
//
// Basic usage:
//
//	engine := ppccalc.New()
//
//	conv, err := engine.HexToDec("0x82A00000", true, 32)
//	result, err := engine.Rlwinm("0x00000001", 1, 0, 31)
//	info, err := engine.MemoryMap("0x82060000")
//
// Every operation is a pure function of its arguments: the engine holds
// no cross-call state beyond its read-only region table, so one Engine
// may serve any number of goroutines without coordination.
package ppccalc

import (
	"log/slog"

	"github.com/xenontools/ppccalc/domain/bitfield"
	"github.com/xenontools/ppccalc/domain/decode"
	"github.com/xenontools/ppccalc/domain/endian"
	"github.com/xenontools/ppccalc/domain/expr"
	"github.com/xenontools/ppccalc/domain/numeric"
)

// Engine is the numeric engine behind every calculator operation.
type Engine struct {
	regions *decode.RegionTable
	logger  *slog.Logger
}

// New creates an Engine. Without options it uses the built-in guest
// region table and the default logger.
func New(opts ...Option) *Engine {
	cfg := newEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		regions: cfg.regions,
		logger:  cfg.logger,
	}
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Regions returns the engine's guest region table.
func (e *Engine) Regions() *decode.RegionTable { return e.regions }

// Width-bounded integer core.

// HexToDec converts a hex literal to decimal at the given width.
func (e *Engine) HexToDec(hex string, signed bool, bits int) (numeric.Conversion, error) {
	return numeric.HexToDec(hex, signed, bits)
}

// DecToHex converts a decimal literal to zero-padded hex at the given width.
func (e *Engine) DecToHex(decimal string, bits int) (numeric.Conversion, error) {
	return numeric.DecToHex(decimal, bits)
}

// TwosComplement returns the opposite-signedness interpretation of value.
func (e *Engine) TwosComplement(value string, bits int) (numeric.Conversion, error) {
	return numeric.TwosComplement(value, bits)
}

// SignExtend widens value from fromBits to toBits, replicating the sign bit.
func (e *Engine) SignExtend(value string, fromBits, toBits int) (numeric.Conversion, error) {
	return numeric.SignExtend(value, fromBits, toBits)
}

// AddOffset adds base and offset with 32-bit wraparound.
func (e *Engine) AddOffset(base, offset string) (numeric.Sum, error) {
	return numeric.AddOffset(base, offset)
}

// AddressRange computes the half-open interval [start, start+size).
func (e *Engine) AddressRange(start, size string) (numeric.Range, error) {
	return numeric.AddressRange(start, size)
}

// Bit-field operations.

// BitMask builds the inclusive LSB-origin mask over [startBit, endBit].
func (e *Engine) BitMask(startBit, endBit, bits int) (bitfield.MaskResult, error) {
	return bitfield.Mask(startBit, endBit, bits)
}

// BitShift shifts value by amount bits.
func (e *Engine) BitShift(value string, amount int, direction bitfield.Direction, logical bool, bits int) (bitfield.ShiftResult, error) {
	return bitfield.Shift(value, amount, direction, logical, bits)
}

// BitExtract extracts numBits starting at LSB-origin startBit.
func (e *Engine) BitExtract(value string, startBit, numBits, bits int) (bitfield.ExtractResult, error) {
	return bitfield.Extract(value, startBit, numBits, bits)
}

// Rlwinm rotates a 32-bit word left and applies a PowerPC MB/ME mask.
func (e *Engine) Rlwinm(value string, shift, maskBegin, maskEnd int) (bitfield.RlwinmResult, error) {
	return bitfield.Rlwinm(value, shift, maskBegin, maskEnd)
}

// Endianness operations.

// ByteSwap16 reverses the byte order of a 16-bit integer.
func (e *Engine) ByteSwap16(value string) (endian.SwapResult, error) {
	return endian.Swap16(value)
}

// ByteSwap32 reverses the byte order of a 32-bit integer.
func (e *Engine) ByteSwap32(value string) (endian.SwapResult, error) {
	return endian.Swap32(value)
}

// ByteSwap64 reverses the byte order of a 64-bit integer.
func (e *Engine) ByteSwap64(value string) (endian.SwapResult, error) {
	return endian.Swap64(value)
}

// ByteSwapFloat swaps a 32-bit pattern and reads it as IEEE-754 binary32
// on both sides.
func (e *Engine) ByteSwapFloat(value string) (endian.FloatSwapResult, error) {
	return endian.SwapFloat32(value)
}

// Domain decoders.

// MemoryMap classifies a guest address against the region table.
func (e *Engine) MemoryMap(address string) (decode.AddressInfo, error) {
	return e.regions.MemoryMap(address)
}

// IsValidAddress reports whether a guest address is inside the image.
func (e *Engine) IsValidAddress(address string) (decode.AddressInfo, error) {
	return e.regions.IsValidAddress(address)
}

// RoundToPage rounds size up to the next multiple of pageSize.
func (e *Engine) RoundToPage(size string, pageSize int) (decode.AlignResult, error) {
	return decode.RoundToPage(size, pageSize)
}

// PageAlign rounds an address up to the next page boundary.
func (e *Engine) PageAlign(address string, pageSize int) (decode.AlignResult, error) {
	return decode.PageAlign(address, pageSize)
}

// AlignAddress aligns an address to a power-of-two boundary and reports
// the adjustment.
func (e *Engine) AlignAddress(address string, boundary int) (decode.AlignResult, error) {
	return decode.AlignAddress(address, boundary)
}

// AllocationUnits converts a byte count to whole allocation units.
func (e *Engine) AllocationUnits(bytes string, sectorsPerUnit, bytesPerSector int) (decode.UnitsResult, error) {
	return decode.AllocationUnits(bytes, sectorsPerUnit, bytesPerSector)
}

// SectorsToBytes converts a sector count to bytes.
func (e *Engine) SectorsToBytes(sectors string, bytesPerSector int) (decode.SectorsResult, error) {
	return decode.SectorsToBytes(sectors, bytesPerSector)
}

// PerfTicksToMs converts a performance-counter reading to milliseconds.
func (e *Engine) PerfTicksToMs(ticks string) (decode.CounterResult, error) {
	return decode.TicksToMs(ticks)
}

// MsToPerfTicks converts milliseconds to performance-counter ticks.
func (e *Engine) MsToPerfTicks(ms float64) (decode.CounterResult, error) {
	return decode.MsToTicks(ms)
}

// TimebaseToSeconds converts a time-base reading to seconds.
func (e *Engine) TimebaseToSeconds(timebase string) (decode.CounterResult, error) {
	return decode.TimebaseToSeconds(timebase)
}

// HzToMs converts a frequency to its period in milliseconds.
func (e *Engine) HzToMs(hz float64) (decode.TimingResult, error) {
	return decode.HzToMs(hz)
}

// FPSCalculator converts a frame time to frames per second.
func (e *Engine) FPSCalculator(frameTimeMs float64) (decode.TimingResult, error) {
	return decode.FPS(frameTimeMs)
}

// TimingAnalysis compares an actual frame time to a target budget.
func (e *Engine) TimingAnalysis(targetFps, actualFrameTimeMs float64) (decode.TimingAnalysisResult, error) {
	return decode.TimingAnalysis(targetFps, actualFrameTimeMs)
}

// NTStatusDecode decomposes a 32-bit NTSTATUS code.
func (e *Engine) NTStatusDecode(status string) (decode.StatusInfo, error) {
	return decode.NTStatusDecode(status)
}

// NTStatusIsError reports whether a status carries error severity.
func (e *Engine) NTStatusIsError(status string) (bool, error) {
	return decode.NTStatusIsError(status)
}

// NTStatusIsWarning reports whether a status carries warning severity.
func (e *Engine) NTStatusIsWarning(status string) (bool, error) {
	return decode.NTStatusIsWarning(status)
}

// Expression evaluator.

// Calculate evaluates an arithmetic/bitwise expression.
func (e *Engine) Calculate(expression string) (expr.Result, error) {
	return expr.Evaluate(expression)
}
