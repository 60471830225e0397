package units

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBaseUnit(t *testing.T) {
	r := NewRegistry()

	m, err := r.RegisterBaseUnit("m", "meter", QualityLength)
	require.NoError(t, err)
	assert.Equal(t, "m", m.Symbol())
	assert.Equal(t, "meter", m.Name())
	assert.Equal(t, QualityLength, m.Quality())
	assert.True(t, m.IsBase())
	assert.Same(t, m, m.Base())

	tests := []struct {
		name    string
		symbol  string
		quality Quality
		errType error
	}{
		{name: "duplicate quality", symbol: "ft", quality: QualityLength, errType: ErrDuplicateQuality},
		{name: "duplicate symbol", symbol: "m", quality: QualityMass, errType: ErrDuplicateSymbol},
		{name: "empty symbol", symbol: "", quality: QualityMass, errType: ErrInvalidSymbol},
		{name: "unparseable symbol", symbol: "m/s", quality: QualityMass, errType: ErrInvalidSymbol},
		{name: "empty quality", symbol: "kg", quality: "", errType: ErrInvalidSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.RegisterBaseUnit(tt.symbol, "x", tt.quality)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.errType)
		})
	}
}

func TestRegisterUnit(t *testing.T) {
	r := NewRegistry()
	_, err := r.RegisterBaseUnit("m", "meter", QualityLength)
	require.NoError(t, err)

	km, err := r.RegisterUnit("km", "kilometer", "m", Scale(1000))
	require.NoError(t, err)
	assert.Equal(t, QualityLength, km.Quality())
	assert.False(t, km.IsBase())

	tests := []struct {
		name    string
		symbol  string
		base    string
		conv    Conversion
		errType error
	}{
		{name: "unknown base", symbol: "lb", base: "kg", conv: Scale(0.45), errType: ErrUnknownBaseUnit},
		{name: "base is a derived unit", symbol: "cm", base: "km", conv: Scale(1e-5), errType: ErrUnknownBaseUnit},
		{name: "collides with unit", symbol: "km", base: "m", conv: Scale(1000), errType: ErrDuplicateSymbol},
		{name: "collides with base unit", symbol: "m", base: "m", conv: Scale(1), errType: ErrDuplicateSymbol},
		{name: "zero factor", symbol: "zz", base: "m", conv: Scale(0), errType: ErrInvalidConversion},
		{name: "missing function", symbol: "zz", base: "m", conv: Funcs(nil, func(x float64) float64 { return x }), errType: ErrInvalidConversion},
		{name: "zero value conversion", symbol: "zz", base: "m", conv: Conversion{}, errType: ErrInvalidConversion},
		{name: "invalid symbol", symbol: "k m", base: "m", conv: Scale(2), errType: ErrInvalidSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.RegisterUnit(tt.symbol, "x", tt.base, tt.conv)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.errType)
		})
	}
}

func TestResolve(t *testing.T) {
	r := NewSI()

	m, err := r.Resolve("m")
	require.NoError(t, err)
	assert.True(t, m.IsBase(), "base units resolve as plain units")

	mm, err := r.Resolve("mm")
	require.NoError(t, err)
	assert.Equal(t, "millimeter", mm.Name())
	assert.Same(t, m, Measure(mm.Base()))

	_, err = r.Resolve("furlong")
	assert.ErrorIs(t, err, ErrUnitNotFound)

	assert.True(t, r.BaseUnitExists("kg"))
	assert.False(t, r.BaseUnitExists("g"))
	assert.True(t, r.Exists("g"))
	assert.True(t, r.Exists("kg"))
	assert.False(t, r.Exists("furlong"))

	b, err := r.BaseUnit("s")
	require.NoError(t, err)
	assert.Equal(t, QualityTime, b.Quality())
	_, err = r.BaseUnit("hr")
	assert.ErrorIs(t, err, ErrUnknownBaseUnit)

	k, ok := r.BaseUnitFor(QualityTemperature)
	require.True(t, ok)
	assert.Equal(t, "K", k.Symbol())
}

func TestListings(t *testing.T) {
	r := NewSI()

	bases := r.BaseUnits()
	require.Len(t, bases, 7)
	assert.Equal(t, "A", bases[0].Symbol())

	all := r.Units()
	assert.Len(t, all, 7+len(builtinUnits))
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		assert.LessOrEqual(t, string(prev.Quality()), string(cur.Quality()))
		if prev.Quality() != cur.Quality() {
			assert.True(t, cur.IsBase(), "%s should lead its quality", cur.Symbol())
		}
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewSI()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 100 {
				_, err := r.Resolve("km")
				assert.NoError(t, err)
				_ = r.Exists("mi")
			}
			if i%4 == 0 {
				_, err := r.RegisterUnit("custom"+string(rune('a'+i)), "custom", "m", Scale(float64(i+2)))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.True(t, r.Exists("customa"))
	assert.True(t, r.Exists("customm"))
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.True(t, Default().Exists("cel"))
}

func TestRegistrationLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })

	r := NewSI()
	assert.Empty(t, buf.String(), "built-in catalog registers silently")

	_, err := r.RegisterUnit("furlong", "furlong", "m", Scale(201.168))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"registered unit"`)
	assert.Contains(t, buf.String(), `"symbol":"furlong"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}
