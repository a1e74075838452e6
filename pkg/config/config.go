// Package config loads the constants table and the variable list the Fortran
// emitter works from.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/rhino1998/etsfgen/pkg/descriptor"
	"github.com/rhino1998/etsfgen/pkg/topological"
	"github.com/rhino1998/etsfgen/pkg/translate"
	"gopkg.in/yaml.v3"
)

type Variable struct {
	Name string   `yaml:"name"`
	Type string   `yaml:"type"`
	Dims []string `yaml:"dims,omitempty"`
	Doc  string   `yaml:"doc,omitempty"`
}

// Descriptor parses the variable's type. The last dimension is the fallback
// length symbol for string variables.
func (v Variable) Descriptor() (descriptor.Descriptor, error) {
	var fallback string
	if len(v.Dims) > 0 {
		fallback = v.Dims[len(v.Dims)-1]
	}

	return descriptor.Parse(v.Type, fallback)
}

type Config struct {
	Module    string
	Constants translate.Constants
	Variables []Variable
}

type rawConfig struct {
	Module    string               `yaml:"module"`
	Constants map[string]yaml.Node `yaml:"constants"`
	Variables []Variable           `yaml:"variables"`
}

func Load(r io.Reader) (Config, error) {
	var raw rawConfig
	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg := Config{
		Module:    raw.Module,
		Constants: make(translate.Constants, len(raw.Constants)),
		Variables: raw.Variables,
	}

	for name, node := range raw.Constants {
		val, err := constantValue(node)
		if err != nil {
			return Config{}, fmt.Errorf("constant %s: %w", name, err)
		}

		cfg.Constants[name] = val
	}

	return cfg, nil
}

func constantValue(node yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: expected a scalar at line %d", ErrInvalidConstant, node.Line)
	}

	switch node.ShortTag() {
	case "!!int":
		var n int
		err := node.Decode(&n)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidConstant, err)
		}
		return strconv.Itoa(n), nil
	case "!!str":
		if strings.TrimSpace(node.Value) == "" {
			return "", fmt.Errorf("%w: empty value", ErrInvalidConstant)
		}
		return node.Value, nil
	default:
		return "", fmt.Errorf("%w: %s is not an integer or string", ErrInvalidConstant, node.ShortTag())
	}
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func (c *Config) Validate(logger *slog.Logger) error {
	errs := NewErrorSet()

	seen := make(map[string]struct{}, len(c.Variables))
	for i, v := range c.Variables {
		if v.Name == "" {
			errs.Add(VariableError{Name: fmt.Sprintf("#%d", i), Err: ErrUnnamedVariable})
			continue
		}

		if _, ok := seen[v.Name]; ok {
			errs.Add(VariableError{Name: v.Name, Err: ErrDuplicateVariable})
			continue
		}
		seen[v.Name] = struct{}{}

		desc, err := v.Descriptor()
		if err != nil {
			errs.Add(VariableError{Name: v.Name, Err: err})
			continue
		}

		if desc.Kind == descriptor.String && desc.Storage == descriptor.Formatted && desc.Length() == "" {
			errs.Add(VariableError{Name: v.Name, Err: descriptor.DescriptorError{
				Descriptor: desc.Raw,
				Err:        descriptor.ErrMissingLengthSymbol,
			}})
		}
	}

	_, err := c.ConstantOrder()
	if err != nil {
		errs.Add(err)
	}

	if errs.Len() > 0 {
		logger.Debug("config is invalid", "errors", errs.Len())
	}

	return errs.Err()
}

// References returns the names of other constants mentioned in the value of
// the constant name.
func (c *Config) References(name string) []string {
	val, ok := c.Constants[name]
	if !ok {
		return nil
	}

	idents := strings.FieldsFunc(val, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})

	var refs []string
	for _, ident := range idents {
		if _, ok := c.Constants[ident]; !ok || slices.Contains(refs, ident) {
			continue
		}
		refs = append(refs, ident)
	}

	return refs
}

// ConstantOrder returns the constant names ordered so that every constant
// follows the constants its value refers to.
func (c *Config) ConstantOrder() ([]string, error) {
	names := make([]string, 0, len(c.Constants))
	for name := range c.Constants {
		names = append(names, name)
	}
	slices.Sort(names)

	order, err := topological.Sort(names, c.References)
	if err != nil {
		return nil, fmt.Errorf("failed to order constants: %w", err)
	}

	return order, nil
}
