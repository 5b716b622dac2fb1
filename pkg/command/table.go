package command

import "sort"

// Table maps display names to command definitions. It is built once at
// startup and never mutated afterwards, so it is safe to share between
// goroutines without locking.
//
// Indexing and lookup both use the display name — the name end users type.
// Lookup is case-sensitive: "Point" resolves, "POINT" does not.
type Table struct {
	byName map[string]*Definition
}

// NewTable indexes the given definitions under their display names.
func NewTable(defs ...*Definition) *Table {
	t := &Table{byName: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		t.byName[d.Name] = d
	}
	return t
}

// Lookup resolves a display name to its definition.
func (t *Table) Lookup(name string) (*Definition, error) {
	d, ok := t.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return d, nil
}

// Has reports whether a display name is known.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Category returns the classification of a command, for diagnostics and
// filtering.
func (t *Table) Category(name string) (Category, error) {
	d, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	return d.Category, nil
}

// Names returns all display names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns all definitions sorted by display name.
func (t *Table) Definitions() []*Definition {
	defs := make([]*Definition, 0, len(t.byName))
	for _, name := range t.Names() {
		defs = append(defs, t.byName[name])
	}
	return defs
}

// Len returns the number of commands in the table.
func (t *Table) Len() int {
	return len(t.byName)
}
