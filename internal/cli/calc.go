package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/quantify/internal/quantity"
)

// ErrUnknownOperator is returned for a calc operator other than + - * / cmp.
var ErrUnknownOperator = errors.New("unknown operator")

// compareResult is the JSON form of a cmp calculation.
type compareResult struct {
	Left    string `json:"left"`
	Right   string `json:"right"`
	Compare int    `json:"compare"`
}

// newCalcCmd creates the calc command for arithmetic on two quantities.
func newCalcCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "calc <a> <op> <b>",
		Short: "Add, subtract, multiply, divide or compare two quantities",
		Long: `Combine two quantities. op is one of + - * / cmp.

Addition, subtraction and comparison require identical units once both sides
are normalized to base units. The result is displayed in the left operand's
units unless --to is given.`,
		Example: `  quantify calc "2 m/s" "*" "4 s"
  quantify calc "1 yd" cmp "1 m"
  quantify calc "1 km" + "250 m" --to m`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := quantity.Parse(a.reg, args[0])
			if err != nil {
				return err
			}
			right, err := quantity.Parse(a.reg, args[2])
			if err != nil {
				return err
			}

			op := args[1]
			if op == "cmp" {
				return a.writeCompare(cmd, left, right)
			}

			result, err := calculate(left, op, right)
			if err != nil {
				return err
			}
			if to != "" {
				if result, err = result.ConvertTo(quantity.Expression(to)); err != nil {
					return err
				}
			}

			a.logger.Debug().
				Str("left", left.String()).
				Str("op", op).
				Str("right", right.String()).
				Msg("calculated")
			return a.writeQuantity(cmd.OutOrStdout(), "", result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "display the result in these units")

	return cmd
}

// calculate applies an arithmetic operator to two quantities.
func calculate(left quantity.Quantity, op string, right quantity.Quantity) (quantity.Quantity, error) {
	switch op {
	case "+":
		return left.Add(right)
	case "-":
		return left.Sub(right)
	case "*", "x":
		return left.Mul(right), nil
	case "/":
		return left.Div(right), nil
	default:
		return quantity.Quantity{}, fmt.Errorf("%w: %q (want + - * / cmp)", ErrUnknownOperator, op)
	}
}

// writeCompare prints the ordering of left and right.
func (a *app) writeCompare(cmd *cobra.Command, left, right quantity.Quantity) error {
	c, err := left.Compare(right)
	if err != nil {
		return err
	}
	if left.Equal(right) {
		c = 0
	}

	if a.output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), compareResult{
			Left:    left.Format(a.format),
			Right:   right.Format(a.format),
			Compare: c,
		})
	}

	sign := "=="
	switch c {
	case -1:
		sign = "<"
	case 1:
		sign = ">"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", left.Format(a.format), sign, right.Format(a.format))
	return err
}
