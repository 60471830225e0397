package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, r *Registry, symbol string) Measure {
	t.Helper()
	m, err := r.Resolve(symbol)
	require.NoError(t, err)
	return m
}

func TestTransformationEquality(t *testing.T) {
	r := NewSI()
	mm, m := resolve(t, r, "mm"), resolve(t, r, "m")

	double := func(x float64) float64 { return x * 2 }
	half := func(x float64) float64 { return x / 2 }
	zero := func(float64) float64 { return 0 }
	scale := func(x float64) float64 { return x * 3.5 }

	tests := []struct {
		name  string
		a, b  Transformation
		equal bool
	}{
		{"same op", NewTransformation(mm, m, double), NewTransformation(mm, m, double), true},
		{"constant op", NewTransformation(mm, m, zero), NewTransformation(mm, m, zero), true},
		{"fractional scale", NewTransformation(mm, m, scale), NewTransformation(mm, m, scale), true},
		{"two ops", NewTransformation(mm, m, double, half), NewTransformation(mm, m, double, half), true},
		{"ops cancel to identity", NewTransformation(mm, m, double, half), NewTransformation(mm, m), true},
		{"different ops", NewTransformation(mm, m, double), NewTransformation(mm, m, half), false},
		{"float noise ignored", NewTransformation(mm, m, func(x float64) float64 { return x*0.1*3 + 1e-13 }),
			NewTransformation(mm, m, func(x float64) float64 { return x * 0.3 }), true},
		{"seventh digit differs", NewTransformation(mm, m, func(x float64) float64 { return x * 1.000001 }),
			NewTransformation(mm, m), false},
		{"different endpoints", NewTransformation(mm, m, double), NewTransformation(m, mm, double), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}
}

func TestTransformationAdd(t *testing.T) {
	r := NewSI()
	mm, m, ft := resolve(t, r, "mm"), resolve(t, r, "m"), resolve(t, r, "ft")

	t1 := NewTransformation(mm, m, func(x float64) float64 { return x / 4 })
	t2 := NewTransformation(m, ft, func(x float64) float64 { return x * 2 })
	want := NewTransformation(mm, ft, func(x float64) float64 { return x / 2 })

	sum, err := t1.Add(t2)
	require.NoError(t, err)
	assert.True(t, want.Equal(sum))
	assert.Same(t, mm, sum.From())
	assert.Same(t, ft, sum.To())
	assert.Equal(t, 2, sum.Len())

	// Order of operations is preserved: add 1 then double.
	inc := NewTransformation(m, m, func(x float64) float64 { return x + 1 })
	dbl := NewTransformation(m, m, func(x float64) float64 { return x * 2 })
	chained, err := inc.Add(dbl)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, chained.Apply(3), 0)

	_, err = t2.Add(t1)
	assert.ErrorIs(t, err, ErrTransformationSum)

	_, err = Transformation{}.Add(t1)
	assert.ErrorIs(t, err, ErrTransformationSum)
}

func TestTransformationAssociativity(t *testing.T) {
	r := NewSI()
	in, m, yd, mi := resolve(t, r, "in"), resolve(t, r, "m"), resolve(t, r, "yd"), resolve(t, r, "mi")

	a := in.Normalize()
	b := yd.Denormalize()
	c, err := yd.Normalize().Add(mi.Denormalize())
	require.NoError(t, err)
	assert.Same(t, m, c.To().Base())

	ab, err := a.Add(b)
	require.NoError(t, err)
	left, err := ab.Add(c)
	require.NoError(t, err)

	bc, err := b.Add(c)
	require.NoError(t, err)
	right, err := a.Add(bc)
	require.NoError(t, err)

	assert.True(t, left.Equal(right))
}

// Probe equality is a deliberate approximation: two different functions that
// agree on the probe inputs compare equal.
func TestTransformationEqualityIsApproximate(t *testing.T) {
	r := NewSI()
	m := resolve(t, r, "m")

	identity := NewTransformation(m, m)
	probeFixedPoints := NewTransformation(m, m, func(x float64) float64 {
		if x > 100 {
			return 0
		}
		return x
	})
	assert.True(t, identity.Equal(probeFixedPoints))
}

func TestIdentity(t *testing.T) {
	r := NewSI()
	m := resolve(t, r, "m")

	id := Identity(m)
	assert.True(t, id.IsIdentity())
	assert.Equal(t, 0, id.Len())
	assert.InDelta(t, 42.5, id.Apply(42.5), 0)
	assert.True(t, m.Normalize().Equal(id))
	assert.True(t, m.Denormalize().Equal(id))
	assert.Equal(t, "m->m", id.String())
}
