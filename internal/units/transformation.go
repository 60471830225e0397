package units

import (
	"fmt"
	"math"
	"strconv"
)

// probeInputs are the sample inputs used to compare two transformations.
//
//nolint:gochecknoglobals // Fixed probe set, never mutated.
var probeInputs = [...]float64{-1, 0, 1, 2, 3.5}

// Probe outputs are compared at this many significant digits, and values
// smaller in magnitude than probeZero count as zero.
const (
	probeDigits = 12
	probeZero   = 1e-9
)

// Transformation converts a single magnitude from one measure to another.
// It is an ordered list of operations; transformations chain with Add.
// The zero value is not usable.
type Transformation struct {
	from Measure
	to   Measure
	ops  []Op
}

// NewTransformation returns a transformation from -> to applying ops in order.
// Nil ops are skipped.
func NewTransformation(from, to Measure, ops ...Op) Transformation {
	kept := make([]Op, 0, len(ops))
	for _, op := range ops {
		if op != nil {
			kept = append(kept, op)
		}
	}
	return Transformation{from: from, to: to, ops: kept}
}

// Identity returns the no-op transformation on m.
func Identity(m Measure) Transformation {
	return Transformation{from: m, to: m}
}

// From returns the source measure.
func (t Transformation) From() Measure { return t.from }

// To returns the destination measure.
func (t Transformation) To() Measure { return t.to }

// Len returns the number of operations in the chain.
func (t Transformation) Len() int { return len(t.ops) }

// IsIdentity reports whether the transformation starts and ends on the same measure.
func (t Transformation) IsIdentity() bool { return t.from == t.to }

// Add chains t and other. It requires t.To() == other.From() and returns a
// transformation from t.From() to other.To() running t's operations first.
func (t Transformation) Add(other Transformation) (Transformation, error) {
	if t.to == nil || other.from == nil || t.to != other.from {
		return Transformation{}, fmt.Errorf("%w: %s does not chain into %s",
			ErrTransformationSum, symbolOf(t.to), symbolOf(other.from))
	}
	ops := make([]Op, 0, len(t.ops)+len(other.ops))
	ops = append(ops, t.ops...)
	ops = append(ops, other.ops...)
	return Transformation{from: t.from, to: other.to, ops: ops}, nil
}

// Apply folds the operations left to right over x.
func (t Transformation) Apply(x float64) float64 {
	for _, op := range t.ops {
		x = op(x)
	}
	return x
}

// Equal reports whether t and other share endpoints and agree on the probe
// inputs -1, 0, 1, 2 and 3.5 to 12 significant digits. Functions are not
// compared structurally, so this is a behavioural approximation suited to
// affine conversions.
func (t Transformation) Equal(other Transformation) bool {
	if t.from != other.from || t.to != other.to {
		return false
	}
	for _, in := range probeInputs {
		if formatProbe(t.Apply(in)) != formatProbe(other.Apply(in)) {
			return false
		}
	}
	return true
}

func (t Transformation) String() string {
	return fmt.Sprintf("%s->%s", symbolOf(t.from), symbolOf(t.to))
}

// formatProbe renders a probe output at 12 significant digits. Outputs
// closer to zero than probeZero render as "0", where relative rounding
// cannot absorb the residue of an offset added and subtracted again.
func formatProbe(f float64) string {
	if math.Abs(f) < probeZero {
		f = 0
	}
	return strconv.FormatFloat(f, 'g', probeDigits, 64)
}

func symbolOf(m Measure) string {
	if m == nil {
		return "<nil>"
	}
	return m.Symbol()
}
