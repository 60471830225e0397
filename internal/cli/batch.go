package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/quantify/internal/quantity"
)

// batchLine is one input line of a batch conversion.
type batchLine struct {
	number int
	text   string
}

// batchResult is the outcome of converting one batch line.
type batchResult struct {
	line   batchLine
	result quantity.Quantity
	err    error
}

// newBatchCmd creates the batch command, which converts one quantity per line
// of a file concurrently and prints the results in input order.
func newBatchCmd(a *app) *cobra.Command {
	var (
		to        string
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Convert a file of quantities, one per line",
		Long: `Convert every quantity in a file, one per line, and print the results in
input order. Blank lines and lines starting with "#" are skipped. Use "-" to
read from stdin.

Without --keep-going the first failing line (in input order) aborts the run.`,
		Example: `  quantify batch lengths.txt --to ft
  cat temps.txt | quantify batch - --to K --keep-going`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readBatchLines(cmd, args[0])
			if err != nil {
				return err
			}

			results := a.convertBatch(cmd, lines, to)

			return a.writeBatch(cmd, results, keepGoing)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target unit expression (default: keep the units as written)")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "report failing lines and continue")

	return cmd
}

// readBatchLines reads the non-blank, non-comment lines of path ("-" for stdin).
func readBatchLines(cmd *cobra.Command, path string) ([]batchLine, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []batchLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	return lines, nil
}

// convertBatch converts every line concurrently. Results are indexed by
// position so output order matches input order.
func (a *app) convertBatch(cmd *cobra.Command, lines []batchLine, to string) []batchResult {
	results := make([]batchResult, len(lines))

	g, gCtx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	for i, line := range lines {
		g.Go(func() error {
			results[i] = batchResult{line: line}
			if err := gCtx.Err(); err != nil {
				results[i].err = err
				return nil
			}

			q, err := quantity.Parse(a.reg, line.text)
			if err == nil && to != "" {
				q, err = q.ConvertTo(quantity.Expression(to))
			}
			results[i].result = q
			results[i].err = err
			// Always return nil - one bad line must not cancel the others
			return nil
		})
	}

	_ = g.Wait()

	a.logger.Debug().
		Int("lines", len(lines)).
		Str("to", to).
		Msg("batch converted")
	return results
}

// writeBatch prints batch results in input order.
func (a *app) writeBatch(cmd *cobra.Command, results []batchResult, keepGoing bool) error {
	if !keepGoing {
		for _, r := range results {
			if r.err != nil {
				return fmt.Errorf("line %d: %w", r.line.number, r.err)
			}
		}
	}

	out := cmd.OutOrStdout()
	if a.output == outputJSON {
		rows := make([]quantityResult, 0, len(results))
		for _, r := range results {
			if r.err != nil {
				rows = append(rows, quantityResult{
					Input: r.line.text,
					Error: fmt.Sprintf("line %d: %v", r.line.number, r.err),
				})
				continue
			}
			rows = append(rows, newQuantityResult(r.line.text, r.result, a.format))
		}
		return writeJSON(out, rows)
	}

	errOut := cmd.ErrOrStderr()
	errStyle := style(errOut, lipgloss.NewStyle().Foreground(ColorError))

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			a.logger.Debug().Int("line", r.line.number).Err(r.err).Msg("batch line failed")
			fmt.Fprintln(errOut, errStyle(fmt.Sprintf("line %d: %v", r.line.number, r.err)))
			continue
		}
		fmt.Fprintln(out, r.result.Format(a.format))
	}
	if failed > 0 {
		fmt.Fprintln(errOut, errStyle(fmt.Sprintf("%d of %d lines failed", failed, len(results))))
	}
	return nil
}
