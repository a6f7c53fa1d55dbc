package rewrite

import (
	"errors"
	"fmt"
)

// Substitution is the value pair applied to every file of a run.
type Substitution struct {
	Old string
	New string
}

// Validate reports whether the substitution can be applied.
func (s Substitution) Validate() error {
	switch {
	case s.Old == "":
		return errors.New("old value must not be empty")
	case s.Old == s.New:
		return fmt.Errorf("old and new value are both %q", s.Old)
	}
	return nil
}

func (s Substitution) String() string {
	return s.Old + " → " + s.New
}
