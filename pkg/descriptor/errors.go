package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedKind      = errors.New("unrecognized kind")
	ErrUnrecognizedPrecision = errors.New("unrecognized precision")
	ErrUnknownLengthSymbol   = errors.New("unknown length symbol")
	ErrMissingLengthSymbol   = errors.New("missing length symbol")
)

// DescriptorError reports the descriptor text a failure originated from.
type DescriptorError struct {
	Descriptor string
	Err        error
}

func (e DescriptorError) Error() string {
	return fmt.Sprintf("descriptor %q: %v", e.Descriptor, e.Err)
}

func (e DescriptorError) Unwrap() error {
	return e.Err
}

func descriptorErrorf(desc string, err error, format string, args ...any) error {
	return DescriptorError{Descriptor: desc, Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...)}
}
