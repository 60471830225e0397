package quantity

import (
	"fmt"
	"sort"

	"github.com/rshade/quantify/internal/units"
)

// UnitSpec describes a composite unit. The accepted forms are Symbol,
// PowersMap, Expression, and the already-resolved units.Powers and
// units.Expression.
type UnitSpec interface {
	Resolve(reg *units.Registry) (units.Powers, error)
}

// Symbol is a single unit symbol with an implicit power of 1.
type Symbol string

// Resolve looks the symbol up in reg.
func (s Symbol) Resolve(reg *units.Registry) (units.Powers, error) {
	m, err := reg.Resolve(string(s))
	if err != nil {
		return nil, err
	}
	return units.Powers{{Unit: m, Power: 1}}, nil
}

// PowersMap maps unit symbols to exponents. Terms are resolved in symbol
// order so rendering is deterministic.
type PowersMap map[string]int

// Resolve looks every symbol up in reg.
func (pm PowersMap) Resolve(reg *units.Registry) (units.Powers, error) {
	symbols := make([]string, 0, len(pm))
	for s := range pm {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	var p units.Powers
	for _, s := range symbols {
		if power := pm[s]; power > units.MaxExponent || power < -units.MaxExponent {
			return nil, fmt.Errorf("%w: %s^%d (limit %d)", units.ErrInvalidExponent, s, power, units.MaxExponent)
		}
		m, err := reg.Resolve(s)
		if err != nil {
			return nil, err
		}
		p = p.Add(m, pm[s])
	}
	return p, nil
}

// Expression is a unit string such as "m/s^2" or "m kg/s^2".
type Expression string

// Resolve parses the expression and looks every symbol up in reg.
func (e Expression) Resolve(reg *units.Registry) (units.Powers, error) {
	return units.ParsePowers(reg, string(e))
}

// Preferred maps each quality to the unit a quantity is displayed in.
type Preferred map[units.Quality]units.Measure

func (p Preferred) clone() Preferred {
	out := make(Preferred, len(p))
	for q, m := range p {
		out[q] = m
	}
	return out
}

// preferredFrom derives display units from a pre-normalization powers list.
// A later term wins when two terms share a quality.
func preferredFrom(p units.Powers) Preferred {
	out := make(Preferred, len(p))
	for _, t := range p {
		out[t.Unit.Quality()] = t.Unit
	}
	return out
}
