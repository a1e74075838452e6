// Package emit renders a Fortran module declaring the variables of a
// configuration, using the declaration and type-constant translations of
// package translate.
package emit

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/rhino1998/etsfgen/pkg/config"
	"github.com/rhino1998/etsfgen/pkg/descriptor"
	"github.com/rhino1998/etsfgen/pkg/translate"
)

//go:embed module.f90.tmpl
var tmplText string

var tmpl = template.Must(template.New("module").Funcs(template.FuncMap{
	"last": func(i int, decls []Declaration) bool { return i == len(decls)-1 },
}).Parse(tmplText))

const DefaultModule = "etsf_vars"

// Declaration is one translated variable, ready to be rendered.
type Declaration struct {
	Name        string
	Doc         string
	FortranType string
	NF90Type    string

	// Dims are the array dimensions; a string length dimension and the
	// dimensions of unformatted variables are not included.
	Dims []string
}

func (d Declaration) Rank() int {
	return len(d.Dims)
}

// Comments returns Doc as Fortran comment lines, one per line of Doc.
func (d Declaration) Comments() []string {
	doc := strings.TrimRight(d.Doc, " \t\r\n")
	if doc == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			lines = append(lines, "!")
		} else {
			lines = append(lines, "! "+line)
		}
	}

	return lines
}

// Statement is the component declaration of d inside a derived type.
func (d Declaration) Statement() string {
	if d.Rank() == 0 {
		return fmt.Sprintf("%s :: %s", d.FortranType, d.Name)
	}

	shape := strings.TrimSuffix(strings.Repeat(":,", d.Rank()), ",")
	return fmt.Sprintf("%s, pointer :: %s(%s) => null()", d.FortranType, d.Name, shape)
}

type constant struct {
	Name  string
	Value string
}

type moduleContext struct {
	Module    string
	Constants []constant
	Decls     []Declaration
}

// Generator renders the variables of a validated config as Fortran.
type Generator struct {
	logger *slog.Logger
	Config config.Config
}

// New validates cfg and returns a Generator for it.
func New(logger *slog.Logger, cfg config.Config) (*Generator, error) {
	err := cfg.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate generator config: %w", err)
	}

	return &Generator{
		logger: logger,
		Config: cfg,
	}, nil
}

func (g *Generator) declaration(v config.Variable) (Declaration, error) {
	desc, err := v.Descriptor()
	if err != nil {
		return Declaration{}, err
	}

	fortranType, err := translate.FortranType(desc, g.Config.Constants)
	if err != nil {
		return Declaration{}, err
	}

	nf90Type, err := translate.NF90Type(desc)
	if err != nil {
		return Declaration{}, err
	}

	decl := Declaration{
		Name:        v.Name,
		Doc:         v.Doc,
		FortranType: fortranType,
		NF90Type:    nf90Type,
	}

	switch {
	case desc.Storage == descriptor.Unformatted:
	case desc.Kind == descriptor.String && desc.LengthSymbol == "":
		decl.Dims = v.Dims[:len(v.Dims)-1]
	default:
		decl.Dims = v.Dims
	}

	return decl, nil
}

// Declarations translates every configured variable. Failures are collected
// into a config.ErrorSet rather than stopping at the first one.
func (g *Generator) Declarations(ctx context.Context) ([]Declaration, error) {
	errs := config.NewErrorSet()

	decls := make([]Declaration, 0, len(g.Config.Variables))
	for _, v := range g.Config.Variables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		decl, err := g.declaration(v)
		if err != nil {
			errs.Add(config.VariableError{Name: v.Name, Err: err})
			continue
		}

		g.logger.DebugContext(ctx, "translated variable",
			"name", decl.Name,
			"fortran", decl.FortranType,
			"nf90", decl.NF90Type,
			"rank", decl.Rank(),
		)

		decls = append(decls, decl)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	return decls, nil
}

// EmitFortran writes a Fortran module declaring the constants and variables
// of the config to w. Nothing is written if any variable fails to translate.
func (g *Generator) EmitFortran(ctx context.Context, w io.Writer) error {
	decls, err := g.Declarations(ctx)
	if err != nil {
		return err
	}

	order, err := g.Config.ConstantOrder()
	if err != nil {
		return err
	}

	modCtx := moduleContext{
		Module: g.Config.Module,
		Decls:  decls,
	}
	if modCtx.Module == "" {
		modCtx.Module = DefaultModule
	}

	for _, name := range order {
		modCtx.Constants = append(modCtx.Constants, constant{Name: name, Value: g.Config.Constants[name]})
	}

	g.logger.DebugContext(ctx, "emitting module",
		"module", modCtx.Module,
		"constants", len(modCtx.Constants),
		"variables", len(decls),
	)

	err = tmpl.Execute(w, modCtx)
	if err != nil {
		return fmt.Errorf("failed to render module %s: %w", modCtx.Module, err)
	}

	return nil
}
