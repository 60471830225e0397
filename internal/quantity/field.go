package quantity

import (
	"github.com/rshade/quantify/internal/units"
)

// Field exposes a raw numeric value as a Quantity in a fixed unit. It is the
// building block for record types that store plain numbers but want to hand
// out quantities:
//
//	depth := quantity.MustField(reg, "mm")
//	beam.Depth = depth.Bind(func() float64 { return beam.RawDepth })
type Field struct {
	reg    *units.Registry
	expr   string
	powers units.Powers
}

// NewField parses and resolves expr once. reg defaults to units.Default().
func NewField(reg *units.Registry, expr string) (Field, error) {
	if reg == nil {
		reg = units.Default()
	}
	p, err := units.ParsePowers(reg, expr)
	if err != nil {
		return Field{}, err
	}
	return Field{reg: reg, expr: expr, powers: p}, nil
}

// MustField is NewField that panics on error. Use it for unit expressions
// fixed at compile time.
func MustField(reg *units.Registry, expr string) Field {
	f, err := NewField(reg, expr)
	if err != nil {
		panic(err)
	}
	return f
}

// Unit returns the unit expression the field was declared with.
func (f Field) Unit() string { return f.expr }

// Quantity wraps raw in the field's unit.
func (f Field) Quantity(raw float64) Quantity {
	return fromPowers(f.reg, raw, f.powers, preferredFrom(f.powers))
}

// Bind returns an accessor that reads the current raw value on every call.
func (f Field) Bind(get func() float64) func() Quantity {
	return func() Quantity { return f.Quantity(get()) }
}
