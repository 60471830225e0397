// Package quantity provides PhysicalQuantity, a magnitude tagged with a
// composite unit.
//
// A Quantity is always stored in normalized form: every unit in its powers
// list is a base unit and the magnitude is expressed in those base units. The
// units a quantity was built with are remembered as preferred units and only
// used when rendering.
package quantity

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rshade/quantify/internal/units"
)

// equalityDigits is the number of significant digits compared by Equal and
// shown by Format.
const equalityDigits = 12

// Quantity is an immutable physical quantity. The zero value is the
// dimensionless number 0 bound to the default registry.
type Quantity struct {
	reg       *units.Registry
	magnitude float64
	powers    units.Powers
	preferred Preferred
}

// New builds a quantity of magnitude in the units described by spec, resolving
// symbols in reg (the default registry when nil). The quantity remembers the
// given units for display.
func New(reg *units.Registry, magnitude float64, spec UnitSpec) (Quantity, error) {
	return build(reg, magnitude, spec, nil)
}

// NewPreferred is New with an explicit set of display units.
func NewPreferred(reg *units.Registry, magnitude float64, spec, preferred UnitSpec) (Quantity, error) {
	return build(reg, magnitude, spec, preferred)
}

// Of builds a quantity from a unit expression using the default registry.
func Of(magnitude float64, expr string) (Quantity, error) {
	return New(nil, magnitude, Expression(expr))
}

// Must panics if err is non-nil and returns q otherwise.
func Must(q Quantity, err error) Quantity {
	if err != nil {
		panic(err)
	}
	return q
}

func build(reg *units.Registry, magnitude float64, spec, preferred UnitSpec) (Quantity, error) {
	if reg == nil {
		reg = units.Default()
	}

	var raw units.Powers
	if spec != nil {
		var err error
		if raw, err = spec.Resolve(reg); err != nil {
			return Quantity{}, err
		}
	}

	pref := preferredFrom(raw)
	if preferred != nil {
		pp, err := preferred.Resolve(reg)
		if err != nil {
			return Quantity{}, err
		}
		pref = preferredFrom(pp)
	}

	return fromPowers(reg, magnitude, raw, pref), nil
}

// fromPowers normalizes magnitude and raw into base units.
func fromPowers(reg *units.Registry, magnitude float64, raw units.Powers, pref Preferred) Quantity {
	var norm units.Powers
	for _, t := range raw {
		forward := t.Unit.Normalize()
		norm = norm.Add(forward.To(), t.Power)
		magnitude = applyPower(magnitude, forward, t.Unit.Denormalize(), t.Power)
	}
	return Quantity{reg: reg, magnitude: magnitude, powers: norm, preferred: pref}
}

// applyPower applies forward to x once per unit of a positive power, or
// inverse once per unit of a negative power. Identity transformations are
// skipped. Iteration stops early once x reaches a fixed point, an infinity
// or NaN, since further applications cannot change it.
func applyPower(x float64, forward, inverse units.Transformation, power int) float64 {
	if forward.IsIdentity() {
		return x
	}
	t, n := forward, power
	if power < 0 {
		t, n = inverse, -power
	}
	for range n {
		next := t.Apply(x)
		if next == x || math.IsInf(next, 0) || math.IsNaN(next) {
			return next
		}
		x = next
	}
	return x
}

func (q Quantity) registry() *units.Registry {
	if q.reg == nil {
		return units.Default()
	}
	return q.reg
}

// Magnitude returns the value in base units.
func (q Quantity) Magnitude() float64 { return q.magnitude }

// Value returns the value expressed in the preferred units.
func (q Quantity) Value() float64 {
	v, _ := q.denormalize()
	return v
}

// Powers returns the normalized composite unit.
func (q Quantity) Powers() units.Powers { return q.powers.Clone() }

// PreferredUnits returns a copy of the display units.
func (q Quantity) PreferredUnits() Preferred { return q.preferred.clone() }

// Dimensionless reports whether the quantity has no units.
func (q Quantity) Dimensionless() bool { return len(q.powers) == 0 }

// Add returns q + other. Both quantities must have identical units; the
// result keeps q's preferred units.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if !q.powers.Equal(other.powers) {
		return Quantity{}, fmt.Errorf("%w: can only add quantities of like units (%s + %s)",
			units.ErrIncompatibleUnits, q.powers, other.powers)
	}
	return q.with(q.magnitude+other.magnitude, q.powers.Clone(), q.preferred.clone()), nil
}

// Sub returns q - other. Both quantities must have identical units; the
// result keeps q's preferred units.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if !q.powers.Equal(other.powers) {
		return Quantity{}, fmt.Errorf("%w: can only subtract quantities of like units (%s - %s)",
			units.ErrIncompatibleUnits, q.powers, other.powers)
	}
	return q.with(q.magnitude-other.magnitude, q.powers.Clone(), q.preferred.clone()), nil
}

// Mul returns q * other. Exponents are summed per unit and units whose
// exponent reaches zero disappear. Preferred units are merged with q's
// taking precedence.
func (q Quantity) Mul(other Quantity) Quantity {
	pref := other.preferred.clone()
	for k, v := range q.preferred {
		pref[k] = v
	}
	return q.with(q.magnitude*other.magnitude, q.powers.Merge(other.powers), pref)
}

// Div returns q / other, computed as q * other.Inverse().
func (q Quantity) Div(other Quantity) Quantity {
	return q.Mul(other.Inverse())
}

// Inverse returns 1/q with every exponent negated. Preferred units are not
// inherited.
func (q Quantity) Inverse() Quantity {
	p := q.powers.Negate()
	return q.with(1/q.magnitude, p, preferredFrom(p))
}

// Scale returns q with its magnitude multiplied by factor.
func (q Quantity) Scale(factor float64) Quantity {
	return q.with(q.magnitude*factor, q.powers.Clone(), q.preferred.clone())
}

// ConvertTo returns a copy of q displayed in the units described by spec.
// The stored magnitude is unaffected. Every unit in spec must measure a
// quality present in q, otherwise ErrIncompatibleUnits is returned. Qualities
// spec does not name keep their current display unit.
func (q Quantity) ConvertTo(spec UnitSpec) (Quantity, error) {
	p, err := spec.Resolve(q.registry())
	if err != nil {
		return Quantity{}, err
	}
	for _, t := range p {
		if !q.powers.Has(t.Unit.Base()) {
			return Quantity{}, fmt.Errorf("%w: cannot convert %s to %s",
				units.ErrIncompatibleUnits, q.powers, t.Unit.Symbol())
		}
	}
	pref := q.preferred.clone()
	for quality, m := range preferredFrom(p) {
		pref[quality] = m
	}
	return q.with(q.magnitude, q.powers.Clone(), pref), nil
}

// Transform applies t to q. t.From() must be one of q's units. The magnitude
// is transformed once, the unit is replaced by t.To() (which becomes the
// preferred unit of its quality), and the result is normalized again.
func (q Quantity) Transform(t units.Transformation) (Quantity, error) {
	if t.From() == nil || !q.powers.Has(t.From()) {
		return Quantity{}, fmt.Errorf("%w: transformation %s does not apply to %s",
			units.ErrIncompatibleUnits, t, q.powers)
	}

	var raw units.Powers
	for _, term := range q.powers {
		u := term.Unit
		if u == t.From() {
			u = t.To()
		}
		raw = raw.Add(u, term.Power)
	}
	pref := q.preferred.clone()
	pref[t.To().Quality()] = t.To()
	return fromPowers(q.registry(), t.Apply(q.magnitude), raw, pref), nil
}

// Compare returns -1, 0 or 1 as q is less than, equal to or greater than
// other. Quantities with different units return ErrIncomparableUnits.
func (q Quantity) Compare(other Quantity) (int, error) {
	if !q.powers.Equal(other.powers) {
		return 0, fmt.Errorf("%w: %s and %s", units.ErrIncomparableUnits, q.powers, other.powers)
	}
	switch {
	case q.magnitude < other.magnitude:
		return -1, nil
	case q.magnitude > other.magnitude:
		return 1, nil
	default:
		return 0, nil
	}
}

// Less reports whether q < other. It returns ErrIncomparableUnits for unlike units.
func (q Quantity) Less(other Quantity) (bool, error) {
	c, err := q.Compare(other)
	return c < 0, err
}

// Equal reports whether q and other have the same normalized units and the
// same magnitude to 12 significant digits. Preferred units are ignored.
func (q Quantity) Equal(other Quantity) bool {
	return equalityText(q.magnitude) == equalityText(other.magnitude) &&
		q.powers.Equal(other.powers)
}

func equalityText(f float64) string {
	if f == 0 {
		f = 0 // fold negative zero
	}
	return strconv.FormatFloat(f, 'g', equalityDigits, 64)
}

func (q Quantity) with(magnitude float64, p units.Powers, pref Preferred) Quantity {
	return Quantity{reg: q.reg, magnitude: magnitude, powers: p, preferred: pref}
}
