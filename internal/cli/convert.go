package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/quantify/internal/quantity"
)

// errMissingTarget is returned when convert has no target unit.
var errMissingTarget = errors.New("no target unit: pass it as the last argument or with --to")

// newConvertCmd creates the convert command. It accepts "<value> <from> <to>",
// "<value> <from> --to <unit>", "<quantity> <to>" or "<quantity> --to <unit>".
func newConvertCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <value> <from> [to]",
		Short: "Convert a quantity to other units",
		Long: `Convert a quantity to the given units.

The quantity may be given as a number followed by a unit expression, or as a
single quoted string such as "60 cel". The target unit is either the last
argument or the value of --to. Only the qualities named by the target are
re-expressed; the others keep their original units.`,
		Example: `  # Celsius to kelvin
  quantify convert 60 cel K

  # Quantity text with --to
  quantify convert "2 m/s" --to km/hr

  # Render with thousand separators
  quantify convert 1500 km m --grouped`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, target, input, err := a.convertArgs(args, to)
			if err != nil {
				return err
			}

			converted, err := q.ConvertTo(quantity.Expression(target))
			if err != nil {
				return fmt.Errorf("converting %s to %s: %w", q, target, err)
			}

			a.logger.Debug().
				Str("from", q.String()).
				Str("to", target).
				Float64("base_magnitude", q.Magnitude()).
				Msg("converted quantity")
			return a.writeQuantity(cmd.OutOrStdout(), input, converted)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target unit expression, e.g. km/hr")

	return cmd
}

// convertArgs interprets the positional arguments of convert and returns the
// source quantity, the target expression and the input as typed.
func (a *app) convertArgs(args []string, to string) (quantity.Quantity, string, string, error) {
	var (
		source string
		target = to
	)

	switch len(args) {
	case 3:
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return quantity.Quantity{}, "", "", fmt.Errorf("%w: value %q is not a number", quantity.ErrInvalidQuantity, args[0])
		}
		q, err := quantity.New(a.reg, value, quantity.Expression(args[1]))
		if err != nil {
			return quantity.Quantity{}, "", "", err
		}
		return q, args[2], args[0] + " " + args[1], nil
	case 2:
		if to != "" {
			source = args[0] + " " + args[1]
		} else {
			source, target = args[0], args[1]
		}
	default:
		source = args[0]
	}

	if target == "" {
		return quantity.Quantity{}, "", "", errMissingTarget
	}
	q, err := quantity.Parse(a.reg, source)
	if err != nil {
		return quantity.Quantity{}, "", "", err
	}
	return q, target, source, nil
}
