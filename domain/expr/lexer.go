// Package expr evaluates a small arithmetic/bitwise expression language
// over unrestricted-precision signed integers, with hex and binary
// literals. Division and modulo truncate toward zero with C sign rules.
package expr

import (
	"strings"
	"unicode"

	"github.com/xenontools/ppccalc/domain/numeric"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPow
	tokShl
	tokShr
	tokAnd
	tokOr
	tokXor
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits input into tokens. Unknown characters and malformed number
// literals are parse failures naming the offending text and byte offset.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(input) && isLiteralChar(input[i]) {
				i++
			}
			text := input[start:i]
			if err := checkLiteral(text, start); err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: start})
		default:
			tok, width, err := lexOperator(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += width
		}
	}
	toks = append(toks, token{kind: tokEOF, text: "<end>", pos: len(input)})
	return toks, nil
}

func lexOperator(input string, i int) (token, int, error) {
	two := ""
	if i+1 < len(input) {
		two = input[i : i+2]
	}
	switch two {
	case "**":
		return token{tokPow, two, i}, 2, nil
	case "<<":
		return token{tokShl, two, i}, 2, nil
	case ">>":
		return token{tokShr, two, i}, 2, nil
	}

	kinds := map[byte]tokenKind{
		'+': tokPlus, '-': tokMinus, '*': tokStar, '/': tokSlash,
		'%': tokPercent, '&': tokAnd, '|': tokOr, '^': tokXor,
		'~': tokNot, '(': tokLParen, ')': tokRParen,
	}
	if kind, ok := kinds[input[i]]; ok {
		return token{kind, input[i : i+1], i}, 1, nil
	}
	return token{}, 0, numeric.ParseErrorf("unknown token %q at offset %d", string(rune(input[i])), i)
}

// isLiteralChar accepts anything that could continue a number literal so
// that malformed runs like 0xZZ report as one bad literal, not two tokens.
func isLiteralChar(c byte) bool {
	return c == '_' || unicode.IsDigit(rune(c)) || unicode.IsLetter(rune(c))
}

func checkLiteral(text string, pos int) error {
	body, base := text, 10
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		body, base = text[2:], 16
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		body, base = text[2:], 2
	}
	if body == "" {
		return numeric.ParseErrorf("literal %q at offset %d has no digits", text, pos)
	}
	for _, r := range body {
		if !validDigit(r, base) {
			return numeric.ParseErrorf("invalid base-%d literal %q at offset %d", base, text, pos)
		}
	}
	return nil
}

func validDigit(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 16:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return r >= '0' && r <= '9'
	}
}
