package theme

import (
	"errors"
	"fmt"

	"bennypowers.dev/csstheme/internal/parser/css"
)

// ErrNoEnclosingRule indicates a themed variable used outside of any rule
var ErrNoEnclosingRule = errors.New("themed variable used outside of a rule")

// OutsideRuleError reports a declaration whose var() refers to a theme map
// but whose parent is not a rule, so there is no selector to scope per theme
type OutsideRuleError struct {
	Prop     string
	Variable string
	// Err is the located error from the stylesheet
	Err error
}

func (e *OutsideRuleError) Error() string {
	return e.Err.Error()
}

func (e *OutsideRuleError) Unwrap() []error {
	return []error{ErrNoEnclosingRule, e.Err}
}

func newOutsideRuleError(decl *css.Declaration, variable string) error {
	msg := fmt.Sprintf("%s uses var(%s), which has theme values, but is not inside a rule\nSuggestion: Move the declaration into a rule or give %s a single value",
		decl.Prop, variable, variable)
	return &OutsideRuleError{Prop: decl.Prop, Variable: variable, Err: decl.Fail(msg)}
}
