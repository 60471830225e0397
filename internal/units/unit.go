// Package units provides the unit registry and unit algebra.
//
// Every quality (length, mass, time, ...) has exactly one BaseUnit. Any other
// Unit measuring the same quality declares how to convert to and from that
// base unit, so conversions between two arbitrary units are synthesized by
// composing Transformations through the shared base.
package units

import (
	"fmt"
	"math"
)

// Quality is a physical dimension category such as length or mass.
type Quality string

// The seven SI base qualities.
const (
	QualityLength            Quality = "length"
	QualityMass              Quality = "mass"
	QualityTime              Quality = "time"
	QualityElectricCurrent   Quality = "electric_current"
	QualityTemperature       Quality = "temperature"
	QualityAmountOfSubstance Quality = "amount_of_substance"
	QualityLuminousIntensity Quality = "luminous_intensity"
)

// Op is a unary numeric operation applied to a magnitude.
type Op func(float64) float64

// Measure is anything that can appear in a powers map: a BaseUnit or a Unit.
type Measure interface {
	// Symbol returns the unique atomic identifier (e.g. "km").
	Symbol() string
	// Name returns the display name (e.g. "kilometer").
	Name() string
	// Quality returns the dimension this measure quantifies.
	Quality() Quality
	// Base returns the base unit of the measure's quality.
	Base() *BaseUnit
	// IsBase reports whether the measure is itself a base unit.
	IsBase() bool
	// Normalize returns the transformation from the measure to its base unit.
	Normalize() Transformation
	// Denormalize returns the transformation from the base unit to the measure.
	Denormalize() Transformation
}

// BaseUnit is the single fundamental unit of some quality.
type BaseUnit struct {
	symbol  string
	name    string
	quality Quality
}

// Symbol returns the base unit symbol.
func (b *BaseUnit) Symbol() string { return b.symbol }

// Name returns the base unit display name.
func (b *BaseUnit) Name() string { return b.name }

// Quality returns the quality measured by the base unit.
func (b *BaseUnit) Quality() Quality { return b.quality }

// Base returns b.
func (b *BaseUnit) Base() *BaseUnit { return b }

// IsBase always returns true.
func (b *BaseUnit) IsBase() bool { return true }

// Normalize returns the identity transformation on b.
func (b *BaseUnit) Normalize() Transformation { return Identity(b) }

// Denormalize returns the identity transformation on b.
func (b *BaseUnit) Denormalize() Transformation { return Identity(b) }

// DenormalizeTo returns the transformation converting a value in b into target.
// A nil or base-unit target yields the identity. Targets measuring a
// different quality return ErrIncompatibleUnits.
func (b *BaseUnit) DenormalizeTo(target Measure) (Transformation, error) {
	if target == nil || target.IsBase() {
		if target != nil && target != Measure(b) {
			return Transformation{}, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, b.symbol, target.Symbol())
		}
		return Identity(b), nil
	}
	if target.Base() != b {
		return Transformation{}, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, b.symbol, target.Symbol())
	}
	return target.Denormalize(), nil
}

func (b *BaseUnit) String() string { return b.symbol }

// Conversion relates a Unit to its BaseUnit. Build one with Scale, Affine or Funcs.
type Conversion struct {
	toBase   Op
	fromBase Op
	err      error
}

// Scale returns a conversion where value_in_unit * factor = value_in_base.
func Scale(factor float64) Conversion {
	if factor == 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Conversion{err: fmt.Errorf("%w: scale factor %v", ErrInvalidConversion, factor)}
	}
	return Conversion{
		toBase:   func(x float64) float64 { return x * factor },
		fromBase: func(x float64) float64 { return x / factor },
	}
}

// Affine returns a conversion where value_in_unit * factor + offset = value_in_base.
func Affine(factor, offset float64) Conversion {
	if offset == 0 {
		return Scale(factor)
	}
	if factor == 0 || math.IsNaN(factor) || math.IsInf(factor, 0) ||
		math.IsNaN(offset) || math.IsInf(offset, 0) {
		return Conversion{err: fmt.Errorf("%w: affine factor %v offset %v", ErrInvalidConversion, factor, offset)}
	}
	return Conversion{
		toBase:   func(x float64) float64 { return x*factor + offset },
		fromBase: func(x float64) float64 { return (x - offset) / factor },
	}
}

// Funcs returns a conversion built from two arbitrary monotonic functions.
// toBase converts a value in the unit into the base unit; fromBase is its inverse.
func Funcs(toBase, fromBase Op) Conversion {
	if toBase == nil || fromBase == nil {
		return Conversion{err: fmt.Errorf("%w: both functions are required", ErrInvalidConversion)}
	}
	return Conversion{toBase: toBase, fromBase: fromBase}
}

// Err returns the construction error of the conversion, if any.
func (c Conversion) Err() error { return c.err }

// Unit is a named unit with a fixed relationship to exactly one BaseUnit.
type Unit struct {
	symbol string
	name   string
	base   *BaseUnit
	conv   Conversion
}

// Symbol returns the unit symbol.
func (u *Unit) Symbol() string { return u.symbol }

// Name returns the unit display name.
func (u *Unit) Name() string { return u.name }

// Quality returns the quality of the unit's base.
func (u *Unit) Quality() Quality { return u.base.quality }

// Base returns the owning base unit.
func (u *Unit) Base() *BaseUnit { return u.base }

// IsBase always returns false.
func (u *Unit) IsBase() bool { return false }

// Normalize returns the transformation from u to its base unit.
func (u *Unit) Normalize() Transformation {
	return NewTransformation(u, u.base, u.conv.toBase)
}

// Denormalize returns the transformation from the base unit to u.
func (u *Unit) Denormalize() Transformation {
	return NewTransformation(u.base, u, u.conv.fromBase)
}

// ConvertTo returns the transformation converting a value in u into other.
func (u *Unit) ConvertTo(other Measure) (Transformation, error) {
	return Convert(u, other)
}

func (u *Unit) String() string { return u.symbol }

// Convert returns the transformation from one measure to another by routing
// through their common base unit. Measures of different qualities return
// ErrIncompatibleUnits.
func Convert(from, to Measure) (Transformation, error) {
	t, err := from.Normalize().Add(to.Denormalize())
	if err != nil {
		return Transformation{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			ErrIncompatibleUnits, from.Symbol(), from.Quality(), to.Symbol(), to.Quality())
	}
	return t, nil
}
