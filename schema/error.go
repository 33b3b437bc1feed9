package schema

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/lazytree/path"
)

// ErrViolation is the sentinel every [*Violation] wraps.
var ErrViolation = errors.New("schema violation")

// Rule identifies which constraint an [Error] failed.
type Rule string

const (
	RuleType              Rule = "TYPE"
	RuleEnum              Rule = "ENUM"
	RuleMinLength         Rule = "MIN_LENGTH"
	RuleMaxLength         Rule = "MAX_LENGTH"
	RulePattern           Rule = "PATTERN"
	RuleMinimum           Rule = "MINIMUM"
	RuleMaximum           Rule = "MAXIMUM"
	RuleExclusiveMinimum  Rule = "EXCLUSIVE_MINIMUM"
	RuleExclusiveMaximum  Rule = "EXCLUSIVE_MAXIMUM"
	RuleMultipleOf        Rule = "MULTIPLE_OF"
	RuleMinItems          Rule = "MIN_ITEMS"
	RuleMaxItems          Rule = "MAX_ITEMS"
	RuleUniqueItems       Rule = "UNIQUE_ITEMS"
	RuleMinProperties     Rule = "MIN_PROPERTIES"
	RuleMaxProperties     Rule = "MAX_PROPERTIES"
	RuleRequired          Rule = "REQUIRED"
	RuleDependentRequired Rule = "DEPENDENT_REQUIRED"
)

// Error is one failed constraint, carrying enough detail to format a
// message without re-walking the document.
type Error struct {
	Rule            Rule
	Path            path.Path
	Value           any
	MessageTemplate string
	Args            []any
}

// Error implements the error interface by expanding MessageTemplate with
// Args via fmt.Sprintf.
func (e Error) Error() string {
	msg := e.MessageTemplate
	if len(e.Args) > 0 {
		msg = fmt.Sprintf(e.MessageTemplate, e.Args...)
	}

	return fmt.Sprintf("%s at %s: %s", e.Rule, e.Path.WithDollar(), msg)
}

// Violation collects every [Error] found by one validation run. It is
// itself never empty: [ValidateObject] and [ValidateDescriptor] return nil
// instead when nothing failed.
type Violation struct {
	Errors []Error
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}

	return fmt.Sprintf("%d schema violations, first: %s", len(v.Errors), v.Errors[0].Error())
}

// Unwrap lets callers match with errors.Is(err, schema.ErrViolation).
func (v *Violation) Unwrap() error {
	return ErrViolation
}

// ProgrammingError reports a self-contradictory merge: two constraint
// layers that cannot be reconciled, e.g. enum values that disagree. Unlike
// [Violation], this is never a fact about a document — it is a mistake in
// how the descriptors were authored.
type ProgrammingError struct {
	Reason string
}

func (e *ProgrammingError) Error() string {
	return "schema: " + e.Reason
}
