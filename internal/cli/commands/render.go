package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/geoscript-lang/geoscript/internal/construction"
)

// renderConstruction prints the bound labels as a table, in insertion order.
func renderConstruction(w io.Writer, cons *construction.Construction) {
	if cons.Len() == 0 {
		_, _ = fmt.Fprintln(w, "No labels bound.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Label", "Definition", "Value", "Depends On"})
	for _, label := range cons.Labels() {
		el, _ := cons.Lookup(label)
		definition := ""
		if el.Source != nil {
			definition = el.Source.String()
		}
		t.AppendRow(table.Row{label, definition, el.Value.String(), strings.Join(el.DependsOn(), ", ")})
	}
	t.Render()
}

// writeDOT prints the dependency graph in Graphviz DOT format, edges
// pointing from a dependency to the labels built on it.
func writeDOT(w io.Writer, cons *construction.Construction) {
	_, _ = fmt.Fprintln(w, "digraph construction {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	for _, label := range cons.Labels() {
		el, _ := cons.Lookup(label)
		_, _ = fmt.Fprintf(w, "  %q [label=%q];\n", label, label+" = "+el.Value.String())
	}
	for _, label := range cons.Labels() {
		el, _ := cons.Lookup(label)
		for _, dep := range el.DependsOn() {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", dep, label)
		}
	}
	_, _ = fmt.Fprintln(w, "}")
}

// sessionEntry is one exported element. Session persistence itself is a
// caller concern; this export is a convenience snapshot, not a reload format
// the kernel understands.
type sessionEntry struct {
	Label      string   `yaml:"label"`
	Definition string   `yaml:"definition,omitempty"`
	Value      string   `yaml:"value"`
	DependsOn  []string `yaml:"depends_on,omitempty"`
}

// saveSession writes every bound element to a YAML file in insertion order.
func saveSession(path string, cons *construction.Construction) error {
	entries := make([]sessionEntry, 0, cons.Len())
	for _, label := range cons.Labels() {
		el, _ := cons.Lookup(label)
		entry := sessionEntry{
			Label:     label,
			Value:     el.Value.String(),
			DependsOn: el.DependsOn(),
		}
		if el.Source != nil {
			entry.Definition = el.Source.String()
		}
		entries = append(entries, entry)
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
