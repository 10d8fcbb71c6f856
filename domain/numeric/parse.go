package numeric

import (
	"math/big"
	"strings"
)

// ParseLiteral parses a hex-or-decimal literal into a Value at the given
// width. This is the one sniffing routine every operation parses through:
// a 0x/0X prefix or any hex letter selects base 16, otherwise base 10.
// A leading '-' encodes the magnitude via two's complement. Out-of-range
// literals are reduced modulo 2^width.
func ParseLiteral(s string, width Width) (Value, error) {
	v, _, err := parseLiteral(s, width)
	return v, err
}

// parseLiteral additionally reports whether the literal carried a minus
// sign, which TwosComplement uses to pick the opposite interpretation.
func parseLiteral(s string, width Width) (Value, bool, error) {
	lit := strings.TrimSpace(s)
	if lit == "" {
		return Value{}, false, ParseErrorf("empty literal")
	}

	body := lit
	negative := strings.HasPrefix(body, "-")
	if negative {
		body = body[1:]
	}

	base := 10
	if rest, ok := stripHexPrefix(body); ok {
		base = 16
		body = rest
	} else if strings.ContainsAny(body, "abcdefABCDEF") {
		base = 16
	}
	if body == "" {
		return Value{}, false, ParseErrorf("literal %q has no digits", lit)
	}
	// SetString accepts its own leading sign; only the one we stripped counts.
	if strings.ContainsAny(body, "+-") {
		return Value{}, false, ParseErrorf("invalid literal %q", lit)
	}

	mag, ok := new(big.Int).SetString(body, base)
	if !ok {
		return Value{}, false, ParseErrorf("invalid base-%d literal %q", base, lit)
	}

	// Reduce modulo 2^width; a negative literal becomes its
	// two's-complement encoding.
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(width))
	if negative {
		mag.Neg(mag)
	}
	mag.Mod(mag, modulus) // big.Int Mod is Euclidean, result always >= 0

	return NewValue(mag.Uint64(), width), negative, nil
}

// parseHexStrict parses a hex literal and fails if it needs more
// significant bits than the width allows. Masking must never silently
// discard bits here.
func parseHexStrict(s string, width Width) (Value, error) {
	lit := strings.TrimSpace(s)
	body, _ := stripHexPrefix(lit)
	if body == "" {
		return Value{}, ParseErrorf("empty hex literal %q", s)
	}

	mag, ok := new(big.Int).SetString(body, 16)
	if !ok || mag.Sign() < 0 {
		return Value{}, ParseErrorf("invalid hex literal %q", lit)
	}
	if mag.BitLen() > width.Bits() {
		return Value{}, ParseErrorf("hex literal %q needs %d bits, exceeds width %d",
			lit, mag.BitLen(), width.Bits())
	}
	return NewValue(mag.Uint64(), width), nil
}

func stripHexPrefix(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return s, false
}
