package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/quantify/internal/units"
)

type steelBeam struct {
	rawDepth  float64
	rawWeight float64

	Depth  func() Quantity
	Weight func() Quantity
}

func newSteelBeam(reg *units.Registry) *steelBeam {
	b := &steelBeam{}
	b.Depth = MustField(reg, "mm").Bind(func() float64 { return b.rawDepth })
	b.Weight = MustField(reg, "kg/m").Bind(func() float64 { return b.rawWeight })
	return b
}

func TestFieldAccessorIsLive(t *testing.T) {
	reg := units.NewSI()
	b := newSteelBeam(reg)

	b.rawDepth = 814
	assert.True(t, b.Depth().Equal(mustNew(t, reg, 814, Symbol("mm"))))

	b.rawDepth = 512
	assert.True(t, b.Depth().Equal(mustNew(t, reg, 512, Symbol("mm"))))
	assert.Equal(t, "512 mm", b.Depth().String())

	b.rawWeight = 57.3
	assert.True(t, b.Weight().Equal(mustNew(t, reg, 57.3, PowersMap{"kg": 1, "m": -1})))
	assert.Equal(t, "57.3 kg/m", b.Weight().String())
}

func TestNewField(t *testing.T) {
	f, err := NewField(nil, "m/s^2")
	require.NoError(t, err)
	assert.Equal(t, "m/s^2", f.Unit())
	assert.Equal(t, "9.81 m/s^2", f.Quantity(9.81).String())

	_, err = NewField(units.NewSI(), "furlong")
	assert.ErrorIs(t, err, units.ErrUnitNotFound)
	assert.Panics(t, func() { MustField(units.NewSI(), "furlong") })
}
