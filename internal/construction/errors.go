package construction

import "fmt"

// CircularDefinitionError reports a redefinition whose new dependency set
// reaches back to the label being redefined.
type CircularDefinitionError struct {
	Label string
}

func (e *CircularDefinitionError) Error() string {
	return fmt.Sprintf("circular definition: %q would depend on itself", e.Label)
}

// UndefinedLabelError reports a reference to a label that is not bound.
type UndefinedLabelError struct {
	Label string
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label %q", e.Label)
}
