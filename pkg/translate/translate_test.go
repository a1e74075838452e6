package translate_test

import (
	"sync"
	"testing"

	"github.com/rhino1998/etsfgen/pkg/descriptor"
	"github.com/rhino1998/etsfgen/pkg/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFortranType(t *testing.T) {
	consts := translate.Constants{
		"my_len":       "80",
		"fallback_len": "32",
		"expr_len":     "2*symbol_length",
	}

	tests := []struct {
		seq      []string
		expected string
	}{
		{[]string{"integer"}, "integer"},
		{[]string{"integer", "number_of_atoms"}, "integer"},
		{[]string{"integer unformatted"}, "type(etsf_io_low_var_integer)"},
		{[]string{"real single_precision"}, "real"},
		{[]string{"real double_precision"}, "double precision"},
		{[]string{"real double_precision unformatted"}, "type(etsf_io_low_var_double)"},
		{[]string{"real single_precision unformatted"}, "type(etsf_io_low_var_double)"},
		{[]string{"real unformatted"}, "type(etsf_io_low_var_double)"},
		{[]string{"string my_len"}, "character(len=80)"},
		{[]string{"string", "fallback_len"}, "character(len=32)"},
		{[]string{"string my_len", "fallback_len"}, "character(len=80)"},
		{[]string{"string expr_len"}, "character(len=2*symbol_length)"},
	}

	for _, test := range tests {
		t.Run(test.seq[0], func(t *testing.T) {
			r := require.New(t)

			typ, err := translate.FortranTypeOf(test.seq, consts)
			r.NoError(err)
			r.Equal(test.expected, typ)
		})
	}
}

func TestFortranType_IntLength(t *testing.T) {
	r := require.New(t)

	consts := make(translate.Constants)
	consts.SetInt("my_len", 80)

	typ, err := translate.FortranType(descriptor.MustParse("string my_len", ""), consts)
	r.NoError(err)
	r.Equal("character(len=80)", typ)
}

func TestFortranType_Errors(t *testing.T) {
	consts := translate.Constants{"my_len": "80"}

	tests := []struct {
		seq []string
		err error
	}{
		{[]string{"unknown_kind"}, descriptor.ErrUnrecognizedKind},
		{[]string{"string unformatted"}, descriptor.ErrUnrecognizedKind},
		{[]string{"string my_len unformatted"}, descriptor.ErrUnrecognizedKind},
		{[]string{"real bogus"}, descriptor.ErrUnrecognizedPrecision},
		{[]string{"string other_len"}, descriptor.ErrUnknownLengthSymbol},
		{[]string{"string", "missing_len"}, descriptor.ErrUnknownLengthSymbol},
		{[]string{"string"}, descriptor.ErrMissingLengthSymbol},
	}

	for _, test := range tests {
		t.Run(test.seq[0], func(t *testing.T) {
			r := require.New(t)

			_, err := translate.FortranTypeOf(test.seq, consts)
			r.ErrorIs(err, test.err)
		})
	}
}

func TestFortranType_NilConstants(t *testing.T) {
	r := require.New(t)

	_, err := translate.FortranType(descriptor.MustParse("string my_len", ""), nil)
	r.ErrorIs(err, descriptor.ErrUnknownLengthSymbol)

	typ, err := translate.FortranType(descriptor.MustParse("integer", ""), nil)
	r.NoError(err)
	r.Equal("integer", typ)
}

func TestNF90Type(t *testing.T) {
	tests := []struct {
		seq      []string
		expected string
	}{
		{[]string{"integer"}, "etsf_io_low_integer"},
		{[]string{"integer unformatted"}, "etsf_io_low_integer"},
		{[]string{"real single_precision"}, "etsf_io_low_real"},
		{[]string{"real double_precision"}, "etsf_io_low_double"},
		{[]string{"real double_precision unformatted"}, "etsf_io_low_double"},
		{[]string{"string my_len"}, "etsf_io_low_character"},
		{[]string{"string", "fallback_len"}, "etsf_io_low_character"},
		{[]string{"string"}, "etsf_io_low_character"},
		{[]string{"string unformatted"}, "etsf_io_low_character"},
	}

	for _, test := range tests {
		t.Run(test.seq[0], func(t *testing.T) {
			r := require.New(t)

			typ, err := translate.NF90TypeOf(test.seq)
			r.NoError(err)
			r.Equal(test.expected, typ)
		})
	}
}

func TestNF90Type_Errors(t *testing.T) {
	tests := []struct {
		seq []string
		err error
	}{
		{[]string{"unknown_kind"}, descriptor.ErrUnrecognizedKind},
		{[]string{"real bogus"}, descriptor.ErrUnrecognizedPrecision},
		{[]string{"real unformatted"}, descriptor.ErrUnrecognizedPrecision},
	}

	for _, test := range tests {
		t.Run(test.seq[0], func(t *testing.T) {
			r := require.New(t)

			_, err := translate.NF90TypeOf(test.seq)
			r.ErrorIs(err, test.err)
		})
	}
}

func TestTranslate_ErrorNamesLiteralDescriptor(t *testing.T) {
	r := require.New(t)

	_, err := translate.NF90Type(descriptor.Descriptor{Kind: descriptor.Real})
	r.ErrorIs(err, descriptor.ErrUnrecognizedPrecision)

	var descErr descriptor.DescriptorError
	r.ErrorAs(err, &descErr)
	r.Equal("real", descErr.Descriptor)

	_, err = translate.FortranType(descriptor.Descriptor{Kind: descriptor.String}, nil)
	r.ErrorIs(err, descriptor.ErrMissingLengthSymbol)
	r.ErrorAs(err, &descErr)
	r.Equal("string", descErr.Descriptor)
}

func TestTranslate_Concurrent(t *testing.T) {
	consts := translate.Constants{"my_len": "80"}
	d := descriptor.MustParse("string my_len", "")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			typ, err := translate.FortranType(d, consts)
			assert.NoError(t, err)
			assert.Equal(t, "character(len=80)", typ)
		}()
	}
	wg.Wait()
}
