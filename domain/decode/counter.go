package decode

import (
	"fmt"
	"math"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// CounterFrequencyHz is the Xenon time-base / performance-counter
// frequency. Every counter conversion is a linear function of it.
const CounterFrequencyHz = 49_875_000

// CounterResult describes a tick-count conversion. The converted value is
// rendered with a fixed fractional part computed from the exact division
// remainder, so tick counts near 2^64 lose nothing to truncation.
type CounterResult struct {
	Ticks        string `json:"ticks"`
	TicksHex     string `json:"ticks_hex"`
	Milliseconds string `json:"milliseconds,omitempty"`
	Seconds      string `json:"seconds,omitempty"`
	FrequencyHz  uint64 `json:"frequency_hz"`
}

// TicksToMs converts a performance-counter reading to milliseconds.
// The multiply runs at 256-bit width; ticks*1000 does not fit in 64 bits
// for large readings.
func TicksToMs(ticks string) (CounterResult, error) {
	v, err := numeric.ParseLiteral(ticks, numeric.Width64)
	if err != nil {
		return CounterResult{}, err
	}

	ms := scaledDiv(v.Unsigned(), 1000, 6)
	sec := scaledDiv(v.Unsigned(), 1, 9)
	return CounterResult{
		Ticks:        strconv.FormatUint(v.Unsigned(), 10),
		TicksHex:     v.Hex(),
		Milliseconds: ms,
		Seconds:      sec,
		FrequencyHz:  CounterFrequencyHz,
	}, nil
}

// TimebaseToSeconds converts a time-base reading to seconds.
func TimebaseToSeconds(timebase string) (CounterResult, error) {
	v, err := numeric.ParseLiteral(timebase, numeric.Width64)
	if err != nil {
		return CounterResult{}, err
	}

	return CounterResult{
		Ticks:       strconv.FormatUint(v.Unsigned(), 10),
		TicksHex:    v.Hex(),
		Seconds:     scaledDiv(v.Unsigned(), 1, 9),
		FrequencyHz: CounterFrequencyHz,
	}, nil
}

// MsToTicks converts milliseconds to a performance-counter tick count,
// rounding to the nearest tick.
func MsToTicks(ms float64) (CounterResult, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms < 0 {
		return CounterResult{}, numeric.DomainErrorf("milliseconds %v must be a non-negative finite number", ms)
	}

	ticks := math.Round(ms * (CounterFrequencyHz / 1000.0))
	if ticks > math.MaxUint64 {
		return CounterResult{}, numeric.DomainErrorf("milliseconds %v overflows the 64-bit counter", ms)
	}

	v := numeric.NewValue(uint64(ticks), numeric.Width64)
	return CounterResult{
		Ticks:        strconv.FormatUint(v.Unsigned(), 10),
		TicksHex:     v.Hex(),
		Milliseconds: strconv.FormatFloat(ms, 'f', -1, 64),
		FrequencyHz:  CounterFrequencyHz,
	}, nil
}

// scaledDiv renders ticks * scale / CounterFrequencyHz as a decimal with
// fracDigits fractional digits. The intermediate product is 256-bit wide.
func scaledDiv(ticks, scale uint64, fracDigits int) string {
	freq := uint256.NewInt(CounterFrequencyHz)

	n := uint256.NewInt(ticks)
	n.Mul(n, uint256.NewInt(scale))

	quo := new(uint256.Int)
	rem := new(uint256.Int)
	quo.DivMod(n, freq, rem)

	// Digit-by-digit long division keeps the fraction exact up to
	// fracDigits; anything beyond is truncated.
	frac := make([]byte, 0, fracDigits)
	ten := uint256.NewInt(10)
	for i := 0; i < fracDigits; i++ {
		rem.Mul(rem, ten)
		d := new(uint256.Int)
		next := new(uint256.Int)
		d.DivMod(rem, freq, next)
		rem = next
		frac = append(frac, byte('0'+d.Uint64()))
	}

	return fmt.Sprintf("%s.%s", quo.Dec(), string(frac))
}
