package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/quantify/internal/units"
)

func TestParse(t *testing.T) {
	reg := units.NewSI()

	tests := []struct {
		name    string
		input   string
		want    Quantity
		errType error
	}{
		{name: "speed", input: "2 m/s", want: mustNew(t, reg, 2, Expression("m/s"))},
		{name: "no space", input: "5km", want: mustNew(t, reg, 5, Symbol("km"))},
		{name: "exponent notation", input: "1.5e3 m", want: mustNew(t, reg, 1500, Symbol("m"))},
		{name: "signed", input: "-40 cel", want: mustNew(t, reg, -40, Symbol("cel"))},
		{name: "leading dot", input: ".5 kg", want: mustNew(t, reg, 0.5, Symbol("kg"))},
		{name: "grouped", input: "1,500 m", want: mustNew(t, reg, 1500, Symbol("m"))},
		{name: "html", input: "4.8 m<sup>2</sup>/s", want: mustNew(t, reg, 4.8, Expression("m^2/s"))},
		{name: "padded", input: "  3 s  ", want: mustNew(t, reg, 3, Symbol("s"))},
		{name: "dimensionless", input: "7", want: mustNew(t, reg, 7, nil)},
		{name: "not a number", input: "abc", errType: ErrInvalidQuantity},
		{name: "empty", input: "", errType: ErrInvalidQuantity},
		{name: "unknown unit", input: "3 furlong", errType: units.ErrUnitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(reg, tt.input)
			if tt.errType != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errType)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}
