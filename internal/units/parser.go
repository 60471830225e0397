package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// unitToken matches one symbol with an optional positive integer exponent.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var unitToken = regexp.MustCompile(`(\w+)(\^\d+)?`)

// SymbolPower is an unresolved symbol with its exponent.
type SymbolPower struct {
	Symbol string
	Power  int
}

// Expression is the parsed, unresolved form of a unit string, in order of
// first appearance.
type Expression []SymbolPower

// Map returns the expression as a symbol -> exponent map.
func (e Expression) Map() map[string]int {
	m := make(map[string]int, len(e))
	for _, sp := range e {
		m[sp.Symbol] = sp.Power
	}
	return m
}

func (e Expression) add(symbol string, power int) Expression {
	for i := range e {
		if e[i].Symbol == symbol {
			e[i].Power += power
			return e
		}
	}
	return append(e, SymbolPower{Symbol: symbol, Power: power})
}

// MaxExponent is the largest absolute exponent a unit may carry in a parsed
// expression or a PowersMap.
const MaxExponent = 1000

// Parse parses a unit string such as "m kg/s^2" or "m^1kg^1/s^2".
//
// The text before the first "/" is the numerator; everything after it is the
// denominator, whose exponents are negated. Each segment is a list of
// symbol[^n] tokens separated by whitespace or simply adjacent. A missing
// exponent means 1 and repeated symbols have their exponents summed. The bare
// token "1" (an empty numerator, as in "1/s") is ignored.
//
// Symbols are not validated here and terms whose exponents sum to zero are
// dropped. An exponent, written or summed, beyond MaxExponent returns
// ErrInvalidExponent.
func Parse(s string) (Expression, error) {
	segments := strings.Split(s, "/")
	var e Expression
	for i, seg := range segments {
		sign := 1
		if i > 0 {
			sign = -1
		}
		for _, m := range unitToken.FindAllStringSubmatch(seg, -1) {
			symbol := m[1]
			power := 1
			if m[2] != "" {
				n, err := strconv.Atoi(m[2][1:])
				if err != nil || n > MaxExponent {
					return nil, fmt.Errorf("%w: %q (limit %d)", ErrInvalidExponent, m[0], MaxExponent)
				}
				power = n
			} else if symbol == "1" {
				continue
			}
			e = e.add(symbol, sign*power)
		}
	}
	out := e[:0]
	for _, sp := range e {
		if sp.Power > MaxExponent || sp.Power < -MaxExponent {
			return nil, fmt.Errorf("%w: %s^%d (limit %d)", ErrInvalidExponent, sp.Symbol, sp.Power, MaxExponent)
		}
		if sp.Power != 0 {
			out = append(out, sp)
		}
	}
	return out, nil
}

// Resolve looks up every symbol of the expression in reg.
func (e Expression) Resolve(reg *Registry) (Powers, error) {
	var p Powers
	for _, sp := range e {
		m, err := reg.Resolve(sp.Symbol)
		if err != nil {
			return nil, err
		}
		p = p.Add(m, sp.Power)
	}
	return p, nil
}

// ParsePowers parses s and resolves it against reg.
func ParsePowers(reg *Registry, s string) (Powers, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return e.Resolve(reg)
}
