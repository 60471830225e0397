package units

import (
	"strconv"
	"strings"
)

// Term is one measure raised to an integer power.
type Term struct {
	Unit  Measure
	Power int
}

// Powers is a composite unit: an ordered list of measures with non-zero
// exponents. Order is the order of first appearance and is only used for
// rendering; equality ignores it.
type Powers []Term

// Get returns the exponent of m, or 0 if m is absent.
func (p Powers) Get(m Measure) int {
	for _, t := range p {
		if t.Unit == m {
			return t.Power
		}
	}
	return 0
}

// Has reports whether m appears with a non-zero exponent.
func (p Powers) Has(m Measure) bool { return p.Get(m) != 0 }

// Add returns a copy of p with power added to m's exponent. A term whose
// exponent reaches zero is removed.
func (p Powers) Add(m Measure, power int) Powers {
	out := make(Powers, 0, len(p)+1)
	found := false
	for _, t := range p {
		if t.Unit == m {
			found = true
			t.Power += power
		}
		if t.Power != 0 {
			out = append(out, t)
		}
	}
	if !found && power != 0 {
		out = append(out, Term{Unit: m, Power: power})
	}
	return out
}

// Merge returns the term-wise sum of p and other.
func (p Powers) Merge(other Powers) Powers {
	out := p.Clone()
	for _, t := range other {
		out = out.Add(t.Unit, t.Power)
	}
	return out
}

// Negate returns p with every exponent negated.
func (p Powers) Negate() Powers {
	out := make(Powers, 0, len(p))
	for _, t := range p {
		if t.Power != 0 {
			out = append(out, Term{Unit: t.Unit, Power: -t.Power})
		}
	}
	return out
}

// Clone returns a copy of p without zero-exponent terms.
func (p Powers) Clone() Powers {
	out := make(Powers, 0, len(p))
	for _, t := range p {
		if t.Power != 0 {
			out = append(out, t)
		}
	}
	return out
}

// Equal reports whether p and other hold the same measures with the same
// exponents, regardless of order.
func (p Powers) Equal(other Powers) bool {
	a, b := p.Clone(), other.Clone()
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		if b.Get(t.Unit) != t.Power {
			return false
		}
	}
	return true
}

// IsNormalized reports whether every measure in p is a base unit.
func (p Powers) IsNormalized() bool {
	for _, t := range p {
		if !t.Unit.IsBase() {
			return false
		}
	}
	return true
}

// Resolve returns p unchanged, which lets an already-resolved Powers be used
// wherever a UnitSpec is accepted.
func (p Powers) Resolve(*Registry) (Powers, error) { return p.Clone(), nil }

// String renders p as a unit expression such as "m kg/s^2": numerator terms
// first ("1" when there are none), then "/" and the denominator terms with
// their exponents made positive. Terms within a group are separated by a
// space and exponents of 1 are omitted. The result is accepted by Parse.
func (p Powers) String() string {
	var num, den strings.Builder
	for _, t := range p {
		switch {
		case t.Power > 0:
			writeTerm(&num, t.Unit.Symbol(), t.Power)
		case t.Power < 0:
			writeTerm(&den, t.Unit.Symbol(), -t.Power)
		}
	}
	out := num.String()
	if out == "" {
		out = "1"
	}
	if den.Len() > 0 {
		out += "/" + den.String()
	}
	return out
}

func writeTerm(sb *strings.Builder, symbol string, power int) {
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(symbol)
	if power > 1 {
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(power))
	}
}
