package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jinzhu/inflection"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Table is the tabular rendering of a command result.
type Table struct {
	Header []string
	Rows   [][]string
	// Noun names one row, used for the "3 campuses" footer. Empty means no footer.
	Noun string
}

// OutputFormatter renders command results in the selected format.
type OutputFormatter struct {
	format string
	w      io.Writer
}

// NewOutputFormatter validates the format name.
func NewOutputFormatter(format string, w io.Writer) (*OutputFormatter, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatTable:
		return &OutputFormatter{format: FormatTable, w: w}, nil
	case FormatJSON, FormatYAML:
		return &OutputFormatter{format: f, w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want table, json or yaml)", format)
	}
}

// Format returns the selected format.
func (f *OutputFormatter) Format() string {
	return f.format
}

// Print writes data as JSON or YAML, or the table for the table format.
func (f *OutputFormatter) Print(data any, table Table) error {
	switch f.format {
	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(f.w, string(out))
		return err
	case FormatYAML:
		return f.printYAML(data)
	default:
		return f.printTable(table)
	}
}

// printYAML goes through JSON first so YAML keys match the backend's field names.
func (f *OutputFormatter) printYAML(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	enc := yaml.NewEncoder(f.w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func (f *OutputFormatter) printTable(t Table) error {
	tw := tabwriter.NewWriter(f.w, 0, 0, 2, ' ', 0)
	if len(t.Header) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.Noun != "" {
		_, err := fmt.Fprintln(f.w, Count(len(t.Rows), t.Noun))
		return err
	}
	return nil
}

// Count renders "1 campus" / "3 campuses".
func Count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// Record renders a single object as a two-column key/value table.
func Record(pairs ...[2]string) Table {
	t := Table{Header: []string{"FIELD", "VALUE"}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p[0], p[1]})
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
