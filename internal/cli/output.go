package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/quantify/internal/quantity"
)

// Colors used for styled terminal output.
const (
	ColorHeader = lipgloss.Color("12")
	ColorError  = lipgloss.Color("9")
)

// quantityResult is the JSON form of a rendered quantity.
type quantityResult struct {
	Input         string  `json:"input,omitempty"`
	Value         float64 `json:"value"`
	Unit          string  `json:"unit"`
	Text          string  `json:"text"`
	BaseMagnitude float64 `json:"base_magnitude"`
	BaseUnit      string  `json:"base_unit"`
	Error         string  `json:"error,omitempty"`
}

// newQuantityResult captures q as rendered with opts.
func newQuantityResult(input string, q quantity.Quantity, opts quantity.FormatOptions) quantityResult {
	return quantityResult{
		Input:         input,
		Value:         q.Value(),
		Unit:          q.Unit(),
		Text:          q.Format(opts),
		BaseMagnitude: q.Magnitude(),
		BaseUnit:      q.Powers().String(),
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// writeQuantity renders q to w in the app's output format.
func (a *app) writeQuantity(w io.Writer, input string, q quantity.Quantity) error {
	if a.output == outputJSON {
		return writeJSON(w, newQuantityResult(input, q, a.format))
	}
	_, err := fmt.Fprintln(w, q.Format(a.format))
	return err
}

// style returns a renderer that applies s only when w is a terminal.
func style(w io.Writer, s lipgloss.Style) func(...string) string {
	if !isTerminal(w) {
		return func(strs ...string) string { return strings.Join(strs, " ") }
	}
	return s.Render
}
