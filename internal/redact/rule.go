package redact

import (
	"fmt"

	"snapforge/internal/value"
)

// ActionKind discriminates redaction actions.
type ActionKind uint8

const (
	// ActionReplace substitutes a fixed placeholder value.
	ActionReplace ActionKind = iota
	// ActionDelete removes a mapping entry or collapses a sequence element.
	ActionDelete
	// ActionRoundFloat truncates a float's precision to suppress jitter.
	ActionRoundFloat
	// ActionSortSequence orders sequence elements by their canonical text,
	// for results whose order is not semantically meaningful.
	ActionSortSequence
)

// Action is what a rule does at each matched location.
type Action struct {
	kind        ActionKind
	replacement value.Value
	precision   int
}

// ReplaceWith returns an action substituting v, commonly a marker text such
// as Text("[timestamp]").
func ReplaceWith(v value.Value) Action {
	return Action{kind: ActionReplace, replacement: v}
}

// Delete returns an action removing the matched location.
func Delete() Action {
	return Action{kind: ActionDelete}
}

// RoundFloat returns an action rounding matched floats to the given number
// of decimal places.
func RoundFloat(precision int) Action {
	return Action{kind: ActionRoundFloat, precision: precision}
}

// SortSequence returns an action sorting matched sequences deterministically.
func SortSequence() Action {
	return Action{kind: ActionSortSequence}
}

// Kind reports the action variant.
func (a Action) Kind() ActionKind { return a.kind }

// Rule pairs a selector with an action.
type Rule struct {
	Selector Selector
	Action   Action
}

// NewRule parses expr and pairs it with action.
func NewRule(expr string, action Action) (Rule, error) {
	sel, err := ParseSelector(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("redaction rule: %w", err)
	}
	return Rule{Selector: sel, Action: action}, nil
}

// MustRule is NewRule for statically known expressions; it panics on parse
// failure.
func MustRule(expr string, action Action) Rule {
	r, err := NewRule(expr, action)
	if err != nil {
		panic(err)
	}
	return r
}
