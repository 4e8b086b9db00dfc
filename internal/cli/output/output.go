// Package output renders command results in terminal, markdown, and JSON
// form. Commands write through a Renderer instead of printing directly so
// the same result can serve humans and scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto" // TTY: text, otherwise markdown
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer writes formatted command output.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer. ModeAuto resolves to text when out is a
// terminal and markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeAuto
	}
	if mode == ModeAuto {
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			mode = ModeText
		} else {
			mode = ModeMarkdown
		}
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// JSONMode reports whether machine-readable output was requested.
func (r *Renderer) JSONMode() bool {
	return r.mode == ModeJSON
}

// Successf prints a success line.
func (r *Renderer) Successf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch r.mode {
	case ModeText:
		fmt.Fprintln(r.out, passStyle.Render("✓ ")+msg)
	case ModeMarkdown:
		fmt.Fprintf(r.out, "**PASS** %s\n", msg)
	}
}

// Failuref prints a failure line.
func (r *Renderer) Failuref(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch r.mode {
	case ModeText:
		fmt.Fprintln(r.out, failStyle.Render("✗ ")+msg)
	case ModeMarkdown:
		fmt.Fprintf(r.out, "**FAIL** %s\n", msg)
	}
}

// Infof prints an informational line to stderr in human modes.
func (r *Renderer) Infof(format string, args ...any) {
	if r.mode == ModeJSON {
		return
	}
	fmt.Fprintln(r.errOut, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON regardless of mode.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Report renders one validation report for the given document path.
func (r *Renderer) Report(path string, rep *rules.Report) {
	if rep.Valid {
		r.Successf("%s is valid", path)
		return
	}
	r.Failuref("%s is invalid", path)
	r.Diagnostics(rep.Diagnostics)
}

// Diagnostics renders rule violations as a table in text mode and as a
// list in markdown mode.
func (r *Renderer) Diagnostics(diags []rules.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	switch r.mode {
	case ModeText:
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.AppendHeader(table.Row{"RULE", "SEVERITY", "FIELD", "MESSAGE"})
		for _, d := range diags {
			t.AppendRow(table.Row{d.RuleID, d.Severity.String(), diagnosticSubject(d), d.Message})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
	case ModeMarkdown:
		for _, d := range diags {
			fmt.Fprintf(r.out, "- `%s` (%s): %s\n", d.RuleID, d.Severity, d.Message)
		}
	}
}

// Table renders a generic table in text mode and a markdown table otherwise.
func (r *Renderer) Table(header []string, rows [][]string) {
	switch r.mode {
	case ModeText:
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.AppendHeader(toRow(header))
		for _, row := range rows {
			t.AppendRow(toRow(row))
		}
		t.SetStyle(table.StyleLight)
		t.Render()
	case ModeMarkdown:
		writeMarkdownRow(r.out, header)
		sep := make([]string, len(header))
		for i := range sep {
			sep[i] = "---"
		}
		writeMarkdownRow(r.out, sep)
		for _, row := range rows {
			writeMarkdownRow(r.out, row)
		}
	}
}

func writeMarkdownRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}

func diagnosticSubject(d rules.Diagnostic) string {
	if d.Field != "" {
		return d.Field
	}
	if len(d.Group) > 0 {
		return fmt.Sprintf("%v", d.Group)
	}
	return ""
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
