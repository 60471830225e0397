package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/quantify/internal/units"
)

// powerResult is one symbol of a parsed unit expression.
type powerResult struct {
	Symbol  string `json:"symbol"`
	Power   int    `json:"power"`
	Name    string `json:"name,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// newParseCmd creates the parse command, which prints the symbol powers of a
// unit expression in the order they were written.
func newParseCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "parse <expression>",
		Short: "Show the unit powers of a unit expression",
		Long: `Parse a unit expression such as "m kg/s^2" into symbols and exponents.

Units after the first "/" are in the denominator and get negative exponents.
Repeated symbols have their exponents summed. With --check every symbol must
be a registered unit.`,
		Example: `  quantify parse "m kg/s^2"
  quantify parse "m^1kg^1/s^2" --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := units.Parse(args[0])
			if err != nil {
				return err
			}

			results := make([]powerResult, 0, len(expr))
			for _, sp := range expr {
				r := powerResult{Symbol: sp.Symbol, Power: sp.Power}
				if check {
					m, err := a.reg.Resolve(sp.Symbol)
					if err != nil {
						return err
					}
					r.Name = m.Name()
					r.Quality = string(m.Quality())
				}
				results = append(results, r)
			}

			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(dimensionless)")
				return nil
			}

			const tabPadding = 2
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			for _, r := range results {
				if check {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.Symbol, r.Power, r.Name, r.Quality)
					continue
				}
				fmt.Fprintf(w, "%s\t%d\n", r.Symbol, r.Power)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "resolve every symbol against the unit registry")

	return cmd
}
