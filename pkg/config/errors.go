package config

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateVariable = errors.New("duplicate variable")
	ErrUnnamedVariable   = errors.New("variable has no name")
	ErrInvalidConstant   = errors.New("invalid constant")
)

type VariableError struct {
	Name string
	Err  error
}

func (e VariableError) Error() string {
	return fmt.Sprintf("variable %s: %v", e.Name, e.Err)
}

func (e VariableError) Unwrap() error {
	return e.Err
}

type ErrorSet struct {
	Errs []error
}

func NewErrorSet() *ErrorSet {
	return new(ErrorSet)
}

func (e *ErrorSet) Add(err error) {
	var subErrs *ErrorSet
	if errors.As(err, &subErrs) {
		e.Errs = append(e.Errs, subErrs.Unwrap()...)
	} else {
		e.Errs = append(e.Errs, err)
	}
}

func (e *ErrorSet) Len() int {
	return len(e.Errs)
}

func (e *ErrorSet) Error() string {
	return errors.Join(e.Errs...).Error()
}

func (e *ErrorSet) Unwrap() []error {
	return e.Errs
}

// Err returns nil if no errors were added, and the set otherwise.
func (e *ErrorSet) Err() error {
	if len(e.Errs) == 0 {
		return nil
	}

	return e
}
