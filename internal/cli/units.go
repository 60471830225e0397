package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/quantify/internal/units"
)

// unitResult is one row of the units listing.
type unitResult struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Quality string `json:"quality"`
	Base    string `json:"base"`
	IsBase  bool   `json:"is_base"`
}

// newUnitsCmd creates the units command, which lists the unit registry
// including custom units from the config file.
func newUnitsCmd(a *app) *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List registered units",
		Long: `List every registered unit grouped by quality, base unit first.

Custom units declared in the config file are included.`,
		Example: `  quantify units
  quantify units --quality temperature
  quantify units -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []unitResult
			for _, m := range a.reg.Units() {
				if quality != "" && string(m.Quality()) != quality {
					continue
				}
				rows = append(rows, unitResult{
					Symbol:  m.Symbol(),
					Name:    m.Name(),
					Quality: string(m.Quality()),
					Base:    m.Base().Symbol(),
					IsBase:  m.IsBase(),
				})
			}

			if a.output == outputJSON {
				if rows == nil {
					rows = []unitResult{}
				}
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return renderUnits(cmd, rows, quality)
		},
	}

	cmd.Flags().StringVar(&quality, "quality", "",
		fmt.Sprintf("only list units of this quality, e.g. %s or %s", units.QualityLength, units.QualityTemperature))

	return cmd
}

// renderUnits writes the units table, with a styled title on terminals.
func renderUnits(cmd *cobra.Command, rows []unitResult, quality string) error {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		_, err := fmt.Fprintf(out, "No units found for quality %q.\n", quality)
		return err
	}

	header := style(out, lipgloss.NewStyle().Foreground(ColorHeader).Bold(true))
	title := fmt.Sprintf("Registered units (%d)", len(rows))
	if quality != "" {
		title = fmt.Sprintf("Registered %s units (%d)", quality, len(rows))
	}
	fmt.Fprintln(out, header(title))

	const tabPadding = 2
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Symbol\tName\tQuality\tBase")
	fmt.Fprintln(w, "------\t----\t-------\t----")
	for _, r := range rows {
		base := r.Base
		if r.IsBase {
			base = "(base)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Symbol, r.Name, r.Quality, base)
	}
	return w.Flush()
}
