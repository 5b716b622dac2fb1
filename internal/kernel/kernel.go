// Package kernel orchestrates the evaluation pipeline: parse, filter,
// resolve arguments against the construction, execute the command's leaf
// algorithm, and commit the result. Every step is fail-fast and
// non-mutating; the only mutation point is the commit, and it is guarded by
// the construction's cycle check.
package kernel

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/geoscript-lang/geoscript/internal/construction"
	"github.com/geoscript-lang/geoscript/pkg/command"
	"github.com/geoscript-lang/geoscript/pkg/filter"
	"github.com/geoscript-lang/geoscript/pkg/object"
	"github.com/geoscript-lang/geoscript/pkg/parser"
)

// Kernel evaluates one input line at a time against its construction. A
// kernel is single-threaded by contract: one evaluator owns the
// construction exclusively, and a command either fully completes or fully
// fails before the next one begins.
type Kernel struct {
	table      *command.Table
	cmdFilters filter.CommandChain
	argFilters filter.ArgumentChain
	cons       *construction.Construction
	logger     *slog.Logger
	fctx       filter.Context
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) { k.logger = l }
}

// WithTable replaces the default command table.
func WithTable(t *command.Table) Option {
	return func(k *Kernel) { k.table = t }
}

// WithCommandFilters appends policy filters that can veto a command before
// its arguments are evaluated.
func WithCommandFilters(fs ...filter.CommandFilter) Option {
	return func(k *Kernel) { k.cmdFilters = append(k.cmdFilters, fs...) }
}

// WithArgumentFilters appends policy filters over resolved argument values.
// They run before the built-in shape validation.
func WithArgumentFilters(fs ...filter.ArgumentFilter) Option {
	return func(k *Kernel) { k.argFilters = append(k.argFilters, fs...) }
}

// WithMode sets the opaque mode token filters see, e.g. "exam".
func WithMode(mode string) Option {
	return func(k *Kernel) { k.fctx.Mode = mode }
}

// New creates a kernel with a fresh, empty construction.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		table:  command.Builtins(),
		cons:   construction.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(k)
	}
	// Shape validation always runs, after any user-registered filters, so
	// leaf algorithms can rely on their declared argument shapes.
	k.argFilters = append(k.argFilters, filter.ArgumentShape{})
	k.fctx.Session = uuid.NewString()
	return k
}

// Result is the outcome of one successfully processed input line.
type Result struct {
	// Label is the bound label, empty for a plain expression.
	Label string
	// Value is the evaluated (and, for assignments, committed) value.
	Value object.Value
	// Redefined reports whether the label replaced an earlier binding.
	Redefined bool
}

// String renders the result the way the REPL displays it.
func (r *Result) String() string {
	if r.Label == "" {
		return r.Value.String()
	}
	return r.Label + " = " + r.Value.String()
}

// Construction exposes the kernel's graph for read-side surfaces (listing,
// export). Mutation goes through Process only.
func (k *Kernel) Construction() *construction.Construction {
	return k.cons
}

// Table returns the kernel's command table.
func (k *Kernel) Table() *command.Table {
	return k.table
}

// Session returns the opaque session identifier passed to filters.
func (k *Kernel) Session() string {
	return k.fctx.Session
}

// Reset discards every binding and starts the construction over. The
// session identity and filter configuration are kept.
func (k *Kernel) Reset() {
	k.cons = construction.New()
}

// Process evaluates one line of input. On any error the construction is
// guaranteed unchanged.
func (k *Kernel) Process(line string) (*Result, error) {
	expr, err := parser.Parse(line)
	if err != nil {
		return nil, err
	}

	// An assignment binds its child expression's result to a label; the
	// child is what gets evaluated, never the assignment node itself.
	label := ""
	valueExpr := expr
	if assign, ok := expr.(*parser.Assignment); ok {
		label = assign.Label
		valueExpr = assign.Value
	}

	value, deps, err := k.eval(valueExpr)
	if err != nil {
		return nil, err
	}

	if label == "" {
		k.logger.Debug("evaluated", "session", k.fctx.Session, "input", line, "value", value.String())
		return &Result{Value: value}, nil
	}

	if k.cons.Has(label) {
		if err := k.cons.Redefine(label, value, valueExpr, deps, k.reval); err != nil {
			return nil, err
		}
		k.logger.Debug("redefined", "session", k.fctx.Session, "label", label,
			"value", value.String(), "deps", deps)
		return &Result{Label: label, Value: value, Redefined: true}, nil
	}

	if _, err := k.cons.Add(label, value, valueExpr, deps); err != nil {
		return nil, err
	}
	k.logger.Debug("defined", "session", k.fctx.Session, "label", label,
		"value", value.String(), "deps", deps)
	return &Result{Label: label, Value: value}, nil
}

// eval evaluates an expression depth-first, left to right, returning the
// value and the labels referenced anywhere in the subtree.
func (k *Kernel) eval(expr parser.Expr) (object.Value, []string, error) {
	switch e := expr.(type) {
	case *parser.Literal:
		return e.Value, nil, nil

	case *parser.Reference:
		v, ok := k.cons.Resolve(e.Label)
		if !ok {
			return nil, nil, &construction.UndefinedLabelError{Label: e.Label}
		}
		return v, []string{e.Label}, nil

	case *parser.CommandCall:
		return k.evalCall(e)

	default:
		return nil, nil, fmt.Errorf("unexpected expression node %T", expr)
	}
}

// evalCall runs the full command pipeline: lookup by display name, command
// filters, argument evaluation, arity check, argument filters, execution.
func (k *Kernel) evalCall(call *parser.CommandCall) (object.Value, []string, error) {
	def, err := k.table.Lookup(call.Name)
	if err != nil {
		return nil, nil, err
	}
	if err := k.cmdFilters.Check(def, k.fctx); err != nil {
		return nil, nil, err
	}

	args := make([]object.Value, 0, len(call.Args))
	var deps []string
	for _, argExpr := range call.Args {
		v, argDeps, err := k.eval(argExpr)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, v)
		deps = append(deps, argDeps...)
	}

	got := len(args)
	if got < def.MinArgs || (def.MaxArgs != command.Unbounded && got > def.MaxArgs) {
		return nil, nil, &command.ArgumentCountError{
			Name: def.Name, Got: got, Min: def.MinArgs, Max: def.MaxArgs,
		}
	}
	if err := k.argFilters.Check(def, args, k.fctx); err != nil {
		return nil, nil, err
	}

	value, err := def.Run(command.Invocation{Args: args, Deps: deps})
	if err != nil {
		return nil, nil, fmt.Errorf("command %q: %w", def.Name, err)
	}
	return value, deps, nil
}

// reval re-evaluates a stored definition during redefinition. References
// resolve through the construction's staged overlay; policy filters are not
// re-run, the definition was validated when it was entered. Shape validation
// does re-run: a redefinition upstream can change the kind a reference
// resolves to, and a leaf must never see a shape it did not declare.
func (k *Kernel) reval(source parser.Expr, resolve func(string) (object.Value, bool)) (object.Value, error) {
	switch e := source.(type) {
	case *parser.Literal:
		return e.Value, nil

	case *parser.Reference:
		v, ok := resolve(e.Label)
		if !ok {
			return nil, &construction.UndefinedLabelError{Label: e.Label}
		}
		return v, nil

	case *parser.CommandCall:
		def, err := k.table.Lookup(e.Name)
		if err != nil {
			return nil, err
		}
		args := make([]object.Value, 0, len(e.Args))
		var deps []string
		for _, argExpr := range e.Args {
			v, err := k.reval(argExpr, resolve)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
			deps = append(deps, referencedLabels(argExpr)...)
		}
		if err := (filter.ArgumentShape{}).Check(def, args, k.fctx); err != nil {
			return nil, err
		}
		return def.Run(command.Invocation{Args: args, Deps: deps})

	default:
		return nil, fmt.Errorf("unexpected expression node %T", source)
	}
}

// referencedLabels collects the labels referenced anywhere in a subtree.
func referencedLabels(expr parser.Expr) []string {
	switch e := expr.(type) {
	case *parser.Reference:
		return []string{e.Label}
	case *parser.CommandCall:
		var labels []string
		for _, arg := range e.Args {
			labels = append(labels, referencedLabels(arg)...)
		}
		return labels
	default:
		return nil
	}
}
