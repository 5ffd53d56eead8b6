package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Format selects a renderer.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatMarkdown:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or markdown)", s)
	}
}

// Render writes t to w in the requested format under the given title.
func Render(w io.Writer, t *Table, title string, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, t)
	case FormatMarkdown:
		return WriteMarkdown(w, t, title)
	default:
		return WriteBox(w, t, title)
	}
}

// WriteJSON writes the indented JSON form of t.
func WriteJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteMarkdown writes t as a markdown table.
func WriteMarkdown(w io.Writer, t *Table, title string) error {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	fmt.Fprintf(&b, "| %s | %s |\n", ColumnMetric, ColumnValue)
	b.WriteString("|--------|-------|\n")
	for _, r := range t.rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Label, r.Value.StringFixed(DisplayPlaces))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBox writes t as a box-drawn table sized to its widest cells.
func WriteBox(w io.Writer, t *Table, title string) error {
	labelWidth := runewidth.StringWidth(ColumnMetric)
	valueWidth := runewidth.StringWidth(ColumnValue)
	values := make([]string, len(t.rows))
	for i, r := range t.rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Label))
		values[i] = r.Value.StringFixed(DisplayPlaces)
		valueWidth = max(valueWidth, runewidth.StringWidth(values[i]))
	}
	inner := labelWidth + valueWidth + 5
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		labelWidth += tw - inner
		inner = tw
	}

	var b strings.Builder
	bar := strings.Repeat("═", inner)
	b.WriteString("╔" + bar + "╗\n")
	if title != "" {
		pad := inner - runewidth.StringWidth(title)
		left := pad / 2
		b.WriteString("║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "║\n")
		b.WriteString("╠" + bar + "╣\n")
	}
	writeLine := func(label, value string) {
		b.WriteString("║ " + runewidth.FillRight(label, labelWidth) + " │ " + runewidth.FillLeft(value, valueWidth) + " ║\n")
	}
	writeLine(ColumnMetric, ColumnValue)
	b.WriteString("╟" + strings.Repeat("─", labelWidth+2) + "┼" + strings.Repeat("─", valueWidth+2) + "╢\n")
	for i, r := range t.rows {
		writeLine(r.Label, values[i])
	}
	b.WriteString("╚" + bar + "╝\n")

	_, err := io.WriteString(w, b.String())
	return err
}
