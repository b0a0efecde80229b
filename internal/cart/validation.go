package cart

import (
	"fmt"

	"cardapio/internal/menu"
)

type ValidationCode string

const (
	CodeRequired          ValidationCode = "required"
	CodeTooMany           ValidationCode = "too_many"
	CodeUnknownGroup      ValidationCode = "unknown_group"
	CodeUnknownComplement ValidationCode = "unknown_complement"
)

// ValidationError explains why a selection cannot go into the cart.
type ValidationError struct {
	Group string
	Code  ValidationCode
	Max   int
	Name  string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeRequired:
		return fmt.Sprintf("group %q requires a selection", e.Group)
	case CodeTooMany:
		return fmt.Sprintf("group %q allows at most %d selections", e.Group, e.Max)
	case CodeUnknownGroup:
		return fmt.Sprintf("unknown complement group %q", e.Group)
	case CodeUnknownComplement:
		return fmt.Sprintf("group %q has no complement %q", e.Group, e.Name)
	}
	return "invalid selection"
}

// ValidateSelection checks required groups, max selections and that every
// selected name exists on the dish. Groups are checked in dish order.
func ValidateSelection(dish *menu.MenuItem, sel Selection) error {
	norm := sel.Normalize()

	for _, group := range norm.Groups() {
		g, ok := dish.Group(group)
		if !ok {
			return &ValidationError{Group: group, Code: CodeUnknownGroup}
		}
		for _, name := range norm[group] {
			if _, ok := g.Complement(name); !ok {
				return &ValidationError{Group: group, Code: CodeUnknownComplement, Name: name}
			}
		}
	}

	for _, g := range dish.ComplementGroups {
		n := len(norm[g.Title])
		if g.Required && n == 0 {
			return &ValidationError{Group: g.Title, Code: CodeRequired}
		}
		if g.MaxSelections > 0 && n > g.MaxSelections {
			return &ValidationError{Group: g.Title, Code: CodeTooMany, Max: g.MaxSelections}
		}
	}

	return nil
}

// CanAddToCart reports whether the add button should be enabled.
func CanAddToCart(dish *menu.MenuItem, sel Selection) bool {
	return ValidateSelection(dish, sel) == nil
}
