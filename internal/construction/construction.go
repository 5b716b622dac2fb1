// Package construction maintains the dependency graph of labeled elements.
// Forward dependency edges are the authoritative state; reverse (dependent)
// edges are derived and maintained incrementally. The graph is acyclic at
// all times: a redefinition that would introduce a cycle is rejected before
// any mutation, and a redefinition that passes the check commits the new
// value and every recomputed dependent together.
package construction

import (
	"fmt"
	"sort"

	"github.com/geoscript-lang/geoscript/pkg/object"
	"github.com/geoscript-lang/geoscript/pkg/parser"
)

// Element is a named node in the graph: a label, its current value, the
// expression it was defined with, and the labels it directly depends on.
type Element struct {
	Label  string
	Value  object.Value
	Source parser.Expr

	deps []string // forward edges, in first-reference order
}

// DependsOn returns the labels this element directly depends on.
func (e *Element) DependsOn() []string {
	out := make([]string, len(e.deps))
	copy(out, e.deps)
	return out
}

// RevalFunc re-evaluates a stored definition against the given label
// resolver. It is supplied by the dispatcher during redefinition so that
// dependents can be recomputed without re-parsing their original text.
type RevalFunc func(source parser.Expr, resolve func(label string) (object.Value, bool)) (object.Value, error)

// Construction owns the label -> element mapping. One evaluator owns it
// exclusively; callers that share it must serialize ahead of this type.
type Construction struct {
	elements   map[string]*Element
	dependents map[string][]string // derived reverse edges
	order      []string            // insertion order, for stable listing
}

// New creates an empty construction.
func New() *Construction {
	return &Construction{
		elements:   make(map[string]*Element),
		dependents: make(map[string][]string),
	}
}

// Lookup returns the element bound to a label.
func (c *Construction) Lookup(label string) (*Element, bool) {
	el, ok := c.elements[label]
	return el, ok
}

// Resolve returns the current value of a label.
func (c *Construction) Resolve(label string) (object.Value, bool) {
	el, ok := c.elements[label]
	if !ok {
		return nil, false
	}
	return el.Value, true
}

// Has reports whether a label is bound.
func (c *Construction) Has(label string) bool {
	_, ok := c.elements[label]
	return ok
}

// Len returns the number of bound labels.
func (c *Construction) Len() int {
	return len(c.elements)
}

// Labels returns all bound labels in insertion order.
func (c *Construction) Labels() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// DependentsOf returns the labels that directly depend on the given label,
// sorted for deterministic output.
func (c *Construction) DependentsOf(label string) []string {
	deps := c.dependents[label]
	out := make([]string, len(deps))
	copy(out, deps)
	sort.Strings(out)
	return out
}

// Add binds a fresh label. Labels are unique and case-sensitive; binding a
// used label is a redefinition and must go through Redefine instead. Every
// dependency must already be bound.
func (c *Construction) Add(label string, value object.Value, source parser.Expr, deps []string) (*Element, error) {
	if _, exists := c.elements[label]; exists {
		return nil, fmt.Errorf("label %q is already in use", label)
	}
	deps = dedupe(deps)
	for _, d := range deps {
		if _, ok := c.elements[d]; !ok {
			return nil, fmt.Errorf("dependency %q is not bound", d)
		}
	}

	el := &Element{Label: label, Value: value, Source: source, deps: deps}
	c.elements[label] = el
	c.order = append(c.order, label)
	for _, d := range deps {
		c.dependents[d] = append(c.dependents[d], label)
	}
	return el, nil
}

// Redefine atomically replaces the value, definition, and dependency edges
// of a bound label, then recomputes every transitive dependent in
// topological order via reval. If the new dependency set would make the
// label reach itself, or any recomputation fails, the graph is left exactly
// as it was.
func (c *Construction) Redefine(label string, value object.Value, source parser.Expr, deps []string, reval RevalFunc) error {
	cur, exists := c.elements[label]
	if !exists {
		return fmt.Errorf("cannot redefine unbound label %q", label)
	}
	deps = dedupe(deps)
	for _, d := range deps {
		if _, ok := c.elements[d]; !ok {
			return fmt.Errorf("dependency %q is not bound", d)
		}
	}

	// Cycle pre-check: the new definition may not depend, directly or
	// transitively, on the label being redefined. Runs against the current
	// edges, before anything is touched.
	for _, d := range deps {
		if d == label || c.dependsOn(d, label) {
			return &CircularDefinitionError{Label: label}
		}
	}

	affected := c.dependentsTopo(label)

	// Stage every new value first; nothing is committed until the whole
	// recomputation succeeds.
	staged := map[string]object.Value{label: value}
	resolve := func(l string) (object.Value, bool) {
		if v, ok := staged[l]; ok {
			return v, true
		}
		el, ok := c.elements[l]
		if !ok {
			return nil, false
		}
		return el.Value, true
	}
	for _, dep := range affected {
		v, err := reval(c.elements[dep].Source, resolve)
		if err != nil {
			return fmt.Errorf("recomputing %q: %w", dep, err)
		}
		staged[dep] = v
	}

	// Commit: swap the element, fix up reverse edges for removed and added
	// dependencies, and apply the staged dependent values.
	for _, d := range cur.deps {
		c.dependents[d] = remove(c.dependents[d], label)
	}
	cur.Value = value
	cur.Source = source
	cur.deps = deps
	for _, d := range deps {
		c.dependents[d] = append(c.dependents[d], label)
	}
	for _, dep := range affected {
		c.elements[dep].Value = staged[dep]
	}
	return nil
}

// dependsOn reports whether start transitively depends on target, following
// forward dependency edges.
func (c *Construction) dependsOn(start, target string) bool {
	visited := make(map[string]bool)
	var walk func(label string) bool
	walk = func(label string) bool {
		if visited[label] {
			return false
		}
		visited[label] = true
		el, ok := c.elements[label]
		if !ok {
			return false
		}
		for _, d := range el.deps {
			if d == target || walk(d) {
				return true
			}
		}
		return false
	}
	return walk(start)
}

// dependentsTopo returns every transitive dependent of label, ordered so
// that a dependent appears only after all of its own dependencies within the
// affected set. Insertion order breaks ties for determinism.
func (c *Construction) dependentsTopo(label string) []string {
	affected := make(map[string]bool)
	var mark func(l string)
	mark = func(l string) {
		for _, dep := range c.dependents[l] {
			if !affected[dep] {
				affected[dep] = true
				mark(dep)
			}
		}
	}
	mark(label)

	var result []string
	visited := make(map[string]bool)
	var visit func(l string)
	visit = func(l string) {
		if visited[l] {
			return
		}
		visited[l] = true
		for _, d := range c.elements[l].deps {
			if affected[d] {
				visit(d)
			}
		}
		result = append(result, l)
	}
	for _, l := range c.order {
		if affected[l] {
			visit(l)
		}
	}
	return result
}

// dedupe removes duplicate labels while preserving first-reference order.
func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// remove deletes the first occurrence of s from slice.
func remove(slice []string, s string) []string {
	for i, v := range slice {
		if v == s {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}
