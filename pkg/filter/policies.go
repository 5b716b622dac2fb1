package filter

import (
	"github.com/geoscript-lang/geoscript/pkg/command"
	"github.com/geoscript-lang/geoscript/pkg/object"
)

// AllowList permits only an explicit set of command names. The usual
// deployment is exam mode, where everything outside the whitelist is vetoed.
type AllowList struct {
	allowed map[string]struct{}
}

// NewAllowList builds an allow-list over the given display names.
func NewAllowList(names ...string) *AllowList {
	f := &AllowList{allowed: make(map[string]struct{}, len(names))}
	for _, n := range names {
		f.allowed[n] = struct{}{}
	}
	return f
}

func (f *AllowList) Check(def *command.Definition, _ Context) error {
	if _, ok := f.allowed[def.Name]; !ok {
		return &command.DisallowedError{Name: def.Name, Reason: "not in the allowed command set"}
	}
	return nil
}

// CategoryBlock vetoes every command of the given categories, e.g. all CAS
// commands.
type CategoryBlock struct {
	blocked map[command.Category]struct{}
}

// NewCategoryBlock builds a category blocker.
func NewCategoryBlock(categories ...command.Category) *CategoryBlock {
	f := &CategoryBlock{blocked: make(map[command.Category]struct{}, len(categories))}
	for _, c := range categories {
		f.blocked[c] = struct{}{}
	}
	return f
}

func (f *CategoryBlock) Check(def *command.Definition, _ Context) error {
	if _, ok := f.blocked[def.Category]; ok {
		return &command.DisallowedError{
			Name:   def.Name,
			Reason: string(def.Category) + " commands are disabled",
		}
	}
	return nil
}

// ArgumentCount validates the argument count against the command's arity
// bounds.
type ArgumentCount struct{}

func (ArgumentCount) Check(def *command.Definition, args []object.Value, _ Context) error {
	got := len(args)
	if got < def.MinArgs || (def.MaxArgs != command.Unbounded && got > def.MaxArgs) {
		return &command.ArgumentCountError{
			Name: def.Name, Got: got, Min: def.MinArgs, Max: def.MaxArgs,
		}
	}
	return nil
}

// ArgumentShape validates each resolved argument against the expected shape
// for its position.
type ArgumentShape struct{}

func (ArgumentShape) Check(def *command.Definition, args []object.Value, _ Context) error {
	for i, arg := range args {
		shape := def.ShapeAt(i)
		if !shape.Matches(arg) {
			return &command.ArgumentTypeError{
				Name: def.Name, Position: i, Expected: shape, Got: arg.Kind(),
			}
		}
	}
	return nil
}
