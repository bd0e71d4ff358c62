package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. An empty name selects FormatText.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Options tune rendering.
type Options struct {
	// Color enables ANSI colors in text output.
	Color bool
	// MarkdownRenderer post-processes Markdown output (e.g. for terminal display).
	MarkdownRenderer func(string) (string, error)
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, format Format, opts Options) error {
	switch format {
	case FormatText, "":
		return renderText(w, r, opts.Color)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		md := Markdown(r)
		if opts.MarkdownRenderer != nil {
			rendered, err := opts.MarkdownRenderer(md)
			if err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
			md = rendered
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func renderText(w io.Writer, r *Report, color bool) error {
	p := termenv.ColorProfile()
	paint := func(s, hex string) string {
		if !color {
			return s
		}
		return termenv.String(s).Foreground(p.Color(hex)).Bold().String()
	}

	if r.Valid {
		_, err := fmt.Fprintf(w, "%s %s\n", paint("OK", "#4ade80"), subject(r))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s %s: %d finding(s)\n", paint("FAIL", "#f87171"), subject(r), len(r.Findings)); err != nil {
		return err
	}
	for _, f := range r.Findings {
		kind := paint(fmt.Sprintf("%-13s", f.Kind), kindColor(f.Kind))
		if _, err := fmt.Fprintf(w, "  %s %s\n", kind, f.Message); err != nil {
			return err
		}
	}
	return nil
}

func subject(r *Report) string {
	switch {
	case r.Config != "" && r.Schema != "":
		return r.Config + " against " + r.Schema
	case r.Config != "":
		return r.Config
	default:
		return "config"
	}
}

func kindColor(kind string) string {
	switch kind {
	case "type_mismatch":
		return "#fbbf24"
	case "missing_key":
		return "#f87171"
	default:
		return "#818cf8"
	}
}

// Markdown formats the report as a Markdown document with a findings table.
func Markdown(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Validation of %s\n\n", subject(r))

	if r.Valid {
		b.WriteString("No findings. The configuration matches the schema.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d finding(s).\n\n", len(r.Findings))
	b.WriteString("| Kind | Key | Expected | Got |\n")
	b.WriteString("|------|-----|----------|-----|\n")
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "| %s | `%s` | %s | %s |\n", f.Kind, escapeCell(f.Key), f.Expected, gotCell(f))
	}
	return b.String()
}

func gotCell(f Finding) string {
	if f.Kind != "type_mismatch" {
		return ""
	}
	return "`" + escapeCell(f.Got) + "`"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
