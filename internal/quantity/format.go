package quantity

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/quantify/internal/units"
)

// printer is the locale-aware message printer for grouped magnitudes.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

//nolint:gochecknoglobals // Compiled once, read-only.
var exponentPattern = regexp.MustCompile(`\^(\d+)`)

// Bounds of the plain decimal notation; magnitudes outside use exponent form.
const (
	maxPlain = 1e15
	minPlain = 1e-4
)

// FormatOptions controls how a quantity is rendered.
type FormatOptions struct {
	// HTML rewrites exponents as <sup> elements ("m<sup>2</sup>").
	HTML bool

	// Grouped inserts thousand separators into the magnitude ("1,500 m").
	Grouped bool
}

// String renders q in its preferred units, e.g. "2 m/s" or "4.8 m^2/s".
func (q Quantity) String() string {
	return q.Format(FormatOptions{})
}

// HTML renders q with exponents as superscripts, e.g. "4.8 m<sup>2</sup>/s".
func (q Quantity) HTML() string {
	return q.Format(FormatOptions{HTML: true})
}

// Format renders q in its preferred units.
//
// The output is "<magnitude> <numerator><denominator>": numerator units are
// those with positive exponents ("1" when there are none) and the denominator
// is "/" followed by the remaining units with their exponents made positive.
// Exponents of 1 are omitted. The magnitude is rounded to 12 significant
// digits and printed without a fractional part when it is integral.
func (q Quantity) Format(opts FormatOptions) string {
	magnitude, p := q.denormalize()
	out := formatMagnitude(magnitude, opts.Grouped) + " " + p.String()
	if opts.HTML {
		out = exponentPattern.ReplaceAllString(out, "<sup>$1</sup>")
	}
	return out
}

// Unit returns the unit expression q is displayed in, e.g. "m/s".
func (q Quantity) Unit() string {
	_, p := q.denormalize()
	return p.String()
}

// denormalize computes the magnitude and units of q expressed in its
// preferred units. q itself is not modified.
func (q Quantity) denormalize() (float64, units.Powers) {
	magnitude := q.magnitude
	var out units.Powers
	for _, t := range q.powers {
		base := t.Unit.Base()
		forward, err := base.DenormalizeTo(q.preferred[base.Quality()])
		if err != nil {
			forward = units.Identity(base)
		}
		out = out.Add(forward.To(), t.Power)
		magnitude = applyPower(magnitude, forward, forward.To().Normalize(), t.Power)
	}
	return magnitude, out
}

// formatMagnitude rounds f to display precision and renders it.
func formatMagnitude(f float64, grouped bool) string {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', equalityDigits, 64), 64)
	if err != nil || math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if rounded == 0 {
		return "0"
	}

	abs := math.Abs(rounded)
	if abs >= maxPlain || abs < minPlain {
		return strconv.FormatFloat(rounded, 'g', -1, 64)
	}
	if rounded == math.Trunc(rounded) {
		if grouped {
			return FormatNumber(int64(rounded))
		}
		return strconv.FormatInt(int64(rounded), 10)
	}

	plain := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !grouped {
		return plain
	}
	return groupDecimal(plain)
}

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// groupDecimal adds thousand separators to the integer part of a plain
// decimal string such as "-1234.5".
func groupDecimal(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + s
	}
	out := sign + FormatNumber(n)
	if frac != "" {
		out += "." + frac
	}
	return out
}
