// Package translate turns variable descriptors into Fortran type declarations
// and into the type constants of the etsf_io_low_level I/O layer.
package translate

import (
	"fmt"

	"github.com/rhino1998/etsfgen/pkg/descriptor"
)

const (
	FortranInteger         = "integer"
	FortranReal            = "real"
	FortranDoublePrecision = "double precision"
	FortranVarInteger      = "type(etsf_io_low_var_integer)"
	FortranVarDouble       = "type(etsf_io_low_var_double)"

	NF90Integer   = "etsf_io_low_integer"
	NF90Real      = "etsf_io_low_real"
	NF90Double    = "etsf_io_low_double"
	NF90Character = "etsf_io_low_character"
)

func fail(d descriptor.Descriptor, err error, format string, args ...any) error {
	text := d.Raw
	if text == "" {
		text = d.String()
	}

	return descriptor.DescriptorError{
		Descriptor: text,
		Err:        fmt.Errorf("%w: "+format, append([]any{err}, args...)...),
	}
}

// FortranType returns the declaration form of d. Unformatted variables are
// wrapped in the opaque etsf_io_low_var types; strings get a fixed length
// resolved through consts.
func FortranType(d descriptor.Descriptor, consts Constants) (string, error) {
	if d.Storage == descriptor.Unformatted {
		switch d.Kind {
		case descriptor.Integer:
			return FortranVarInteger, nil
		case descriptor.Real:
			return FortranVarDouble, nil
		default:
			return "", fail(d, descriptor.ErrUnrecognizedKind, "%v has no unformatted form", d.Kind)
		}
	}

	switch d.Kind {
	case descriptor.Integer:
		return FortranInteger, nil
	case descriptor.Real:
		switch d.Precision {
		case descriptor.Single:
			return FortranReal, nil
		case descriptor.Double:
			return FortranDoublePrecision, nil
		default:
			return "", fail(d, descriptor.ErrUnrecognizedPrecision, "%v", d.Precision)
		}
	case descriptor.String:
		symbol := d.Length()
		if symbol == "" {
			return "", fail(d, descriptor.ErrMissingLengthSymbol, "string needs a length")
		}

		length, ok := consts.Lookup(symbol)
		if !ok {
			return "", fail(d, descriptor.ErrUnknownLengthSymbol, "%q", symbol)
		}

		return fmt.Sprintf("character(len=%s)", length), nil
	default:
		return "", fail(d, descriptor.ErrUnrecognizedKind, "%v", d.Kind)
	}
}

// NF90Type returns the etsf_io_low_level type constant for d. Storage mode
// does not affect the result.
func NF90Type(d descriptor.Descriptor) (string, error) {
	switch d.Kind {
	case descriptor.Integer:
		return NF90Integer, nil
	case descriptor.Real:
		switch d.Precision {
		case descriptor.Single:
			return NF90Real, nil
		case descriptor.Double:
			return NF90Double, nil
		default:
			return "", fail(d, descriptor.ErrUnrecognizedPrecision, "%v", d.Precision)
		}
	case descriptor.String:
		return NF90Character, nil
	default:
		return "", fail(d, descriptor.ErrUnrecognizedKind, "%v", d.Kind)
	}
}

// FortranTypeOf parses the sequence form of a descriptor and translates it.
func FortranTypeOf(seq []string, consts Constants) (string, error) {
	d, err := descriptor.FromSequence(seq)
	if err != nil {
		return "", err
	}

	return FortranType(d, consts)
}

func NF90TypeOf(seq []string) (string, error) {
	d, err := descriptor.FromSequence(seq)
	if err != nil {
		return "", err
	}

	return NF90Type(d)
}
