package quantity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rshade/quantify/internal/units"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var quantityPattern = regexp.MustCompile(`^\s*([-+]?(?:\d[\d,]*\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*(.*?)\s*$`)

// Parse reads a rendered quantity such as "2 m/s", "4.8 m^2/s", "1,500 km" or
// "60 cel" and builds it with the units as written. Text without units yields
// a dimensionless quantity.
func Parse(reg *units.Registry, s string) (Quantity, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	magnitude, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q: %w", ErrInvalidQuantity, s, err)
	}
	expr := stripHTML(m[2])
	return New(reg, magnitude, Expression(expr))
}

// stripHTML turns "m<sup>2</sup>" back into "m^2".
func stripHTML(s string) string {
	s = strings.ReplaceAll(s, "<sup>", "^")
	return strings.ReplaceAll(s, "</sup>", "")
}
