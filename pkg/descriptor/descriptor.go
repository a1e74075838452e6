// Package descriptor parses the variable-type grammar used to describe ETSF
// data variables.
//
// A descriptor is an attribute string such as "real double_precision" or
// "integer unformatted", optionally paired with a fallback length symbol that
// names the length of a string variable when the attribute string does not.
package descriptor

import (
	"strings"
)

// Descriptor is a parsed variable type. A string descriptor may have no
// length at all; only the declaration form needs one.
type Descriptor struct {
	Kind         Kind
	Precision    Precision
	LengthSymbol string
	Fallback     string
	Storage      Storage

	// Raw is the attribute string as it was parsed.
	Raw string
}

// Parse validates the kind and precision tokens of attrs. fallback names the
// string length used when attrs does not name one.
func Parse(attrs string, fallback string) (Descriptor, error) {
	values := strings.Fields(attrs)
	if len(values) == 0 {
		return Descriptor{}, descriptorErrorf(attrs, ErrUnrecognizedKind, "empty descriptor")
	}

	d := Descriptor{
		Kind:     ParseKind(values[0]),
		Fallback: fallback,
		Raw:      attrs,
	}

	if values[len(values)-1] == unformattedToken {
		d.Storage = Unformatted
	}

	switch d.Kind {
	case Integer:
	case Real:
		var ok bool
		if len(values) > 1 {
			d.Precision, ok = ParsePrecision(values[1])
		}

		if !ok && d.Storage != Unformatted {
			if len(values) > 1 {
				return Descriptor{}, descriptorErrorf(attrs, ErrUnrecognizedPrecision, "%q", values[1])
			}
			return Descriptor{}, descriptorErrorf(attrs, ErrUnrecognizedPrecision, "no precision qualifier")
		}
	case String:
		if len(values) > 1 && !(len(values) == 2 && d.Storage == Unformatted) {
			d.LengthSymbol = values[1]
		}
	default:
		return Descriptor{}, descriptorErrorf(attrs, ErrUnrecognizedKind, "%q", values[0])
	}

	return d, nil
}

// FromSequence parses the sequence form of a descriptor, where the first
// element is the attribute string and the last element, when there is more
// than one, is the fallback length symbol.
func FromSequence(seq []string) (Descriptor, error) {
	if len(seq) == 0 {
		return Descriptor{}, descriptorErrorf("", ErrUnrecognizedKind, "empty descriptor")
	}

	var fallback string
	if len(seq) > 1 {
		fallback = seq[len(seq)-1]
	}

	return Parse(seq[0], fallback)
}

// MustParse is like Parse but panics on error.
func MustParse(attrs string, fallback string) Descriptor {
	d, err := Parse(attrs, fallback)
	if err != nil {
		panic(err)
	}

	return d
}

// Length returns the symbol naming the length of a string variable.
func (d Descriptor) Length() string {
	if d.LengthSymbol != "" {
		return d.LengthSymbol
	}

	return d.Fallback
}

func (d Descriptor) String() string {
	parts := []string{d.Kind.String()}

	switch d.Kind {
	case Real:
		if d.Precision != Unspecified {
			parts = append(parts, d.Precision.String())
		}
	case String:
		if d.LengthSymbol != "" {
			parts = append(parts, d.LengthSymbol)
		}
	}

	if d.Storage == Unformatted {
		parts = append(parts, unformattedToken)
	}

	return strings.Join(parts, " ")
}
