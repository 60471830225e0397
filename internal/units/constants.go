package units

// Length factors relative to the meter.
//
// The factor is the multiplier in value_in_unit * factor = value_in_meters.
const (
	KilometerToMeter  = 1000.0
	DecimeterToMeter  = 0.1
	CentimeterToMeter = 0.01
	MillimeterToMeter = 1e-3
	MicrometerToMeter = 1e-6
	NanometerToMeter  = 1e-9
	PicometerToMeter  = 1e-12

	// InchToMeter is the international inch (1959 agreement).
	InchToMeter = 0.0254
	FootToMeter = 0.3048
	YardToMeter = 0.9144
	MileToMeter = 1609.344
)

// Mass factors relative to the kilogram.
const (
	GramToKilogram      = 1e-3
	DecigramToKilogram  = 1e-4
	CentigramToKilogram = 1e-5
	MilligramToKilogram = 1e-6
	TonneToKilogram     = 1000.0

	// PoundToKilogram is the international avoirdupois pound.
	PoundToKilogram = 0.45359237

	// OunceToKilogram is one sixteenth of the avoirdupois pound.
	OunceToKilogram = 0.028349523125
)

// Time factors relative to the second.
const (
	MinuteToSecond = 60.0
	HourToSecond   = 60.0 * 60.0
	DayToSecond    = 24.0 * HourToSecond
)

// Temperature offsets relative to the kelvin.
const (
	// CelsiusOffset is the kelvin value of 0 °C.
	CelsiusOffset = 273.15

	// FahrenheitOffset is the Rankine value of 0 °F.
	FahrenheitOffset = 459.67
)
