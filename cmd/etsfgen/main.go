package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rhino1998/etsfgen/pkg/config"
	"github.com/rhino1998/etsfgen/pkg/descriptor"
	"github.com/rhino1998/etsfgen/pkg/emit"
	"github.com/rhino1998/etsfgen/pkg/translate"
	"github.com/urfave/cli/v3"
)

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseConstants(defs []string) (translate.Constants, error) {
	consts := make(translate.Constants, len(defs))
	for _, def := range defs {
		name, value, ok := strings.Cut(def, "=")
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("invalid constant %q, expected name=value", def)
		}

		consts[name] = value
	}

	return consts, nil
}

func descriptorArg(c *cli.Command, fallback string) (descriptor.Descriptor, error) {
	if c.Args().Len() != 1 {
		return descriptor.Descriptor{}, fmt.Errorf("must provide exactly one type descriptor as argument")
	}

	return descriptor.Parse(c.Args().First(), fallback)
}

func fallbackFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "fallback",
		Aliases: []string{"f"},
		Usage:   "length symbol to use when a string descriptor does not name one",
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "etsfgen",
		Usage: "Translate ETSF variable descriptors into Fortran declarations",
		Commands: []*cli.Command{
			{
				Name:      "fortran-type",
				Usage:     "Print the Fortran declaration type of a descriptor",
				ArgsUsage: "<descriptor>",
				Flags: []cli.Flag{
					fallbackFlag(),
					&cli.StringSliceFlag{
						Name:    "const",
						Aliases: []string{"c"},
						Usage:   "length constant as name=value",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "load length constants from a generator config",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					d, err := descriptorArg(c, c.String("fallback"))
					if err != nil {
						return err
					}

					consts := make(translate.Constants)
					if path := c.String("config"); path != "" {
						cfg, err := config.LoadFile(path)
						if err != nil {
							return err
						}
						consts = cfg.Constants
					}

					extra, err := parseConstants(c.StringSlice("const"))
					if err != nil {
						return err
					}
					for name, value := range extra {
						consts[name] = value
					}

					typ, err := translate.FortranType(d, consts)
					if err != nil {
						return err
					}

					_, err = fmt.Fprintln(os.Stdout, typ)
					return err
				},
			},
			{
				Name:      "nf90-type",
				Usage:     "Print the etsf_io_low_level type constant of a descriptor",
				ArgsUsage: "<descriptor>",
				Action: func(ctx context.Context, c *cli.Command) error {
					d, err := descriptorArg(c, "")
					if err != nil {
						return err
					}

					typ, err := translate.NF90Type(d)
					if err != nil {
						return err
					}

					_, err = fmt.Fprintln(os.Stdout, typ)
					return err
				},
			},
			{
				Name:      "generate",
				Usage:     "Generate a Fortran module from a variable config",
				ArgsUsage: "<config.yaml>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output file, stdout if empty",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Aliases: []string{"d"},
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one config file as argument")
					}

					logger := newLogger(c.Bool("debug"))

					cfg, err := config.LoadFile(c.Args().First())
					if err != nil {
						return err
					}

					gen, err := emit.New(logger, cfg)
					if err != nil {
						return fmt.Errorf("failed to initialize generator: %w", err)
					}

					var out io.Writer = os.Stdout
					if path := c.String("out"); path != "" {
						f, err := os.Create(path)
						if err != nil {
							return err
						}
						defer f.Close()

						out = f
					}

					return gen.EmitFortran(ctx, out)
				},
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}
