package expr

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// Guards that keep every evaluation bounded in time and memory.
const (
	maxShiftAmount = 1 << 16
	maxExponent    = 1 << 16
	maxResultBits  = 1 << 20
)

// Result is an evaluated expression in every useful rendering. The 32-
// and 64-bit interpretations are present only when the exact value fits
// the corresponding two's-complement range.
type Result struct {
	Expression string `json:"expression"`
	Decimal    string `json:"decimal"`
	Hex        string `json:"hex"`
	Unsigned32 string `json:"unsigned_32,omitempty"`
	Signed32   string `json:"signed_32,omitempty"`
	Unsigned64 string `json:"unsigned_64,omitempty"`
	Signed64   string `json:"signed_64,omitempty"`
}

// Evaluate parses and evaluates expression. Syntax failures are parse
// errors naming the offending token and offset; division or modulo by
// zero is a domain error.
func Evaluate(expression string) (Result, error) {
	toks, err := lex(expression)
	if err != nil {
		return Result{}, err
	}

	p := &parser{toks: toks}
	v, err := p.parseBinary(1)
	if err != nil {
		return Result{}, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return Result{}, numeric.ParseErrorf("unexpected token %q at offset %d", tok.text, tok.pos)
	}

	return newResult(expression, v), nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

// Binding powers, weakest first. Shifts bind more loosely than addition,
// matching the source language this calculator reproduces.
var precedence = map[tokenKind]int{
	tokOr:      1,
	tokXor:     2,
	tokAnd:     3,
	tokShl:     4,
	tokShr:     4,
	tokPlus:    5,
	tokMinus:   5,
	tokStar:    6,
	tokSlash:   6,
	tokPercent: 6,
	tokPow:     7,
}

// parseBinary is a precedence climber: it consumes operators binding at
// least as tightly as minPrec. Exponentiation is right-associative,
// everything else associates left.
func (p *parser) parseBinary(minPrec int) (*big.Int, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		prec, ok := precedence[op.kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.next()

		nextMin := prec + 1
		if op.kind == tokPow {
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		left, err = apply(op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseUnary() (*big.Int, error) {
	switch tok := p.peek(); tok.kind {
	case tokMinus:
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return v.Neg(v), nil
	case tokNot:
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return v.Not(v), nil
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (*big.Int, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return parseNumber(tok)
	case tokLParen:
		v, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, numeric.ParseErrorf("expected ')' but found %q at offset %d", closing.text, closing.pos)
		}
		return v, nil
	default:
		return nil, numeric.ParseErrorf("unexpected token %q at offset %d", tok.text, tok.pos)
	}
}

func parseNumber(tok token) (*big.Int, error) {
	// The lexer has validated the digits. Bases are resolved explicitly
	// so that a leading zero never means octal.
	body, base := tok.text, 10
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		body, base = body[2:], 16
	case strings.HasPrefix(body, "0b"), strings.HasPrefix(body, "0B"):
		body, base = body[2:], 2
	}
	v, ok := new(big.Int).SetString(body, base)
	if !ok {
		return nil, numeric.ParseErrorf("invalid number %q at offset %d", tok.text, tok.pos)
	}
	return v, nil
}

func apply(op token, left, right *big.Int) (*big.Int, error) {
	out := new(big.Int)
	switch op.kind {
	case tokPlus:
		return out.Add(left, right), nil
	case tokMinus:
		return out.Sub(left, right), nil
	case tokStar:
		return out.Mul(left, right), nil
	case tokSlash:
		if right.Sign() == 0 {
			return nil, numeric.DomainErrorf("division by zero")
		}
		return out.Quo(left, right), nil // truncates toward zero, C-style
	case tokPercent:
		if right.Sign() == 0 {
			return nil, numeric.DomainErrorf("modulo by zero")
		}
		return out.Rem(left, right), nil // remainder takes the dividend's sign
	case tokPow:
		return applyPow(left, right)
	case tokShl, tokShr:
		return applyShift(op, left, right)
	case tokAnd:
		return out.And(left, right), nil
	case tokOr:
		return out.Or(left, right), nil
	case tokXor:
		return out.Xor(left, right), nil
	default:
		return nil, numeric.ParseErrorf("unexpected operator %q at offset %d", op.text, op.pos)
	}
}

func applyPow(base, exp *big.Int) (*big.Int, error) {
	if exp.Sign() < 0 {
		return nil, numeric.DomainErrorf("negative exponent %s in integer exponentiation", exp)
	}
	if !exp.IsInt64() || exp.Int64() > maxExponent {
		return nil, numeric.DomainErrorf("exponent %s too large", exp)
	}
	if base.BitLen()*int(exp.Int64()) > maxResultBits {
		return nil, numeric.DomainErrorf("exponentiation result exceeds %d bits", maxResultBits)
	}
	return new(big.Int).Exp(base, exp, nil), nil
}

func applyShift(op token, left, right *big.Int) (*big.Int, error) {
	if right.Sign() < 0 {
		return nil, numeric.DomainErrorf("negative shift amount %s", right)
	}
	if !right.IsInt64() || right.Int64() > maxShiftAmount {
		return nil, numeric.DomainErrorf("shift amount %s too large", right)
	}
	n := uint(right.Int64())
	if op.kind == tokShl {
		return new(big.Int).Lsh(left, n), nil
	}
	// big.Int Rsh floors, which is exactly an arithmetic right shift for
	// negative values.
	return new(big.Int).Rsh(left, n), nil
}

func newResult(expression string, v *big.Int) Result {
	r := Result{
		Expression: strings.TrimSpace(expression),
		Decimal:    v.String(),
		Hex:        renderHex(v),
	}

	if fits(v, 32) {
		val := reduce(v, numeric.Width32)
		r.Unsigned32 = strconv.FormatUint(val.Unsigned(), 10)
		r.Signed32 = strconv.FormatInt(val.Signed(), 10)
	}
	if fits(v, 64) {
		val := reduce(v, numeric.Width64)
		r.Unsigned64 = strconv.FormatUint(val.Unsigned(), 10)
		r.Signed64 = strconv.FormatInt(val.Signed(), 10)
	}
	return r
}

// fits reports whether v lies in [-2^(bits-1), 2^bits), the union of the
// signed and unsigned ranges at the width.
func fits(v *big.Int, bits int) bool {
	lo := new(big.Int).Lsh(big.NewInt(-1), uint(bits-1))
	hi := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return v.Cmp(lo) >= 0 && v.Cmp(hi) < 0
}

func reduce(v *big.Int, w numeric.Width) numeric.Value {
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(w))
	u := new(big.Int).Mod(v, modulus)
	return numeric.NewValue(u.Uint64(), w)
}

func renderHex(v *big.Int) string {
	if v.Sign() >= 0 {
		return "0x" + strings.ToUpper(v.Text(16))
	}
	if fits(v, 64) {
		// Negative but 64-bit representable: render the two's-complement
		// pattern the hardware would hold.
		return reduce(v, numeric.Width64).Hex()
	}
	return "-0x" + strings.ToUpper(new(big.Int).Abs(v).Text(16))
}
