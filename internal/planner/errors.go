package planner

import "fmt"

// ReferenceError reports a selection that names a card id absent from
// the repository.
type ReferenceError struct {
	ID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("card not found: %s", e.ID)
}

// ValidationError reports a structurally unplannable input: an empty
// card repository, an empty mains pool, or a schedule with zero weekly
// slots. It is always fatal to the planning run.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
