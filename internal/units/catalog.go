package units

import (
	"fmt"
	"sync"
)

type baseDef struct {
	symbol  string
	name    string
	quality Quality
}

type unitDef struct {
	symbol string
	name   string
	base   string
	conv   Conversion
}

// siBaseUnits are the seven SI base units.
//
//nolint:gochecknoglobals // Built-in catalog table.
var siBaseUnits = []baseDef{
	{"m", "meter", QualityLength},
	{"kg", "kilogram", QualityMass},
	{"s", "second", QualityTime},
	{"A", "ampere", QualityElectricCurrent},
	{"K", "kelvin", QualityTemperature},
	{"mol", "mole", QualityAmountOfSubstance},
	{"cd", "candela", QualityLuminousIntensity},
}

// builtinUnits is the derived unit catalog registered by RegisterSI.
//
//nolint:gochecknoglobals // Built-in catalog table.
var builtinUnits = []unitDef{
	// Length.
	{"km", "kilometer", "m", Scale(KilometerToMeter)},
	{"dm", "decimeter", "m", Scale(DecimeterToMeter)},
	{"cm", "centimeter", "m", Scale(CentimeterToMeter)},
	{"mm", "millimeter", "m", Scale(MillimeterToMeter)},
	{"um", "micrometer", "m", Scale(MicrometerToMeter)},
	{"nm", "nanometer", "m", Scale(NanometerToMeter)},
	{"pm", "picometer", "m", Scale(PicometerToMeter)},
	{"in", "inch", "m", Scale(InchToMeter)},
	{"ft", "foot", "m", Scale(FootToMeter)},
	{"yd", "yard", "m", Scale(YardToMeter)},
	{"mi", "mile", "m", Scale(MileToMeter)},

	// Mass.
	{"g", "gram", "kg", Scale(GramToKilogram)},
	{"dg", "decigram", "kg", Scale(DecigramToKilogram)},
	{"cg", "centigram", "kg", Scale(CentigramToKilogram)},
	{"mg", "milligram", "kg", Scale(MilligramToKilogram)},
	{"t", "tonne", "kg", Scale(TonneToKilogram)},
	{"lb", "pound", "kg", Scale(PoundToKilogram)},
	{"oz", "ounce", "kg", Scale(OunceToKilogram)},

	// Time.
	{"min", "minute", "s", Scale(MinuteToSecond)},
	{"hr", "hour", "s", Scale(HourToSecond)},
	{"day", "day", "s", Scale(DayToSecond)},

	// Temperature.
	{"fah", "degree fahrenheit", "K", Funcs(
		func(x float64) float64 { return (x + FahrenheitOffset) * 5.0 / 9 },
		func(x float64) float64 { return x*9.0/5 - FahrenheitOffset },
	)},
	{"cel", "degree celsius", "K", Funcs(
		func(x float64) float64 { return x + CelsiusOffset },
		func(x float64) float64 { return x - CelsiusOffset },
	)},
}

// RegisterSI registers the SI base units and the built-in unit catalog into r.
func RegisterSI(r *Registry) error {
	for _, b := range siBaseUnits {
		if _, err := r.RegisterBaseUnit(b.symbol, b.name, b.quality); err != nil {
			return fmt.Errorf("registering base unit %s: %w", b.symbol, err)
		}
	}
	for _, u := range builtinUnits {
		if _, err := r.addUnit(u.symbol, u.name, u.base, u.conv); err != nil {
			return fmt.Errorf("registering unit %s: %w", u.symbol, err)
		}
	}
	return nil
}

// NewSI returns a fresh registry holding the built-in catalog. It panics if
// the catalog is malformed, which can only be a programming error.
func NewSI() *Registry {
	r := NewRegistry()
	if err := RegisterSI(r); err != nil {
		panic(fmt.Sprintf("units: built-in catalog: %v", err))
	}
	return r
}

//nolint:gochecknoglobals // Process-wide registry, bootstrapped once.
var defaultRegistry = sync.OnceValue(NewSI)

// Default returns the process-wide registry, bootstrapping it with the
// built-in catalog on first use. Custom units registered on it are visible to
// every caller.
func Default() *Registry {
	return defaultRegistry()
}
