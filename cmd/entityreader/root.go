package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/reader/schemafile"
	"github.com/syssam/entityreader/registry"
)

// app holds the state shared by subcommands once the root command ran.
type app struct {
	configFile string
	cfg        *viper.Viper
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "entityreader",
		Short:         "Classify and export entity properties",
		Version:       entityreader.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./entityreader.yaml)")
	flags.StringP("schema", "s", defaultSchema, "schema document (YAML or JSON)")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolP("verbose", "v", false, "log debug output to stderr")
	flags.Bool("last-wins", false, "let the last structural annotation decide instead of failing")
	flags.Int("workers", 4, "concurrent extractions")

	cmd.AddCommand(
		newDescribeCmd(a),
		newSDLCmd(a),
		newGenCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	bind := func(key, flag string) {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = cfg.BindPFlag(key, f)
		}
	}
	bind(cfgKeySchema, "schema")
	bind(cfgKeyNoColor, "no-color")
	bind(cfgKeyVerbose, "verbose")
	bind(cfgKeyLastWins, "last-wins")
	bind(cfgKeyWorkers, "workers")
	bind(cfgKeyFormat, "format")
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.GetBool(cfgKeyVerbose) {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfg.GetBool(cfgKeyNoColor) {
		color.NoColor = true
	}
	return nil
}

// registry extracts the requested entities of f, or all of them when none
// are given.
func (a *app) registry(cmd *cobra.Command, f *schemafile.File, entities []string) (*registry.Registry, error) {
	opts := []reader.Option{reader.WithLogger(a.logger)}
	if a.cfg.GetBool(cfgKeyLastWins) {
		opts = append(opts, reader.WithLastWins())
	}
	r, err := reader.New(f, opts...)
	if err != nil {
		return nil, err
	}
	reg, err := registry.New(r, registry.WithLogger(a.logger), registry.WithWorkers(a.cfg.GetInt(cfgKeyWorkers)))
	if err != nil {
		return nil, err
	}
	if err := reg.Preload(cmd.Context(), entities...); err != nil {
		return nil, err
	}
	a.logger.Debug("schema loaded", "path", f.Path, "entities", len(reg.Entities()))
	return reg, nil
}

// usageError wraps command line mistakes: unknown flags or commands,
// unexpected arguments and missing required flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// usageArgs marks the errors of an argument validator as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// requireFlags checks required flags ahead of cobra, which reports
// them with a plain error.
func requireFlags(cmd *cobra.Command, _ []string) error {
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return &usageError{err: err}
	}
	return nil
}

// exitCode maps classification and input errors to exitUserError.
func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return exitUserError
	case errors.Is(err, entityreader.ErrMissingClassification),
		errors.Is(err, entityreader.ErrAmbiguousClassification),
		errors.Is(err, entityreader.ErrInvalidAnnotation),
		errors.Is(err, entityreader.ErrUnknownEntity),
		errors.Is(err, entityreader.ErrDuplicateProperty),
		errors.Is(err, entityreader.ErrInvalidConfig),
		errors.Is(err, os.ErrNotExist):
		return exitUserError
	default:
		return exitSysError
	}
}

// addFormatFlag registers --format on a subcommand.
func addFormatFlag(flags *pflag.FlagSet, def string) {
	flags.StringP("format", "f", def, "output format: table, json, yaml, or msgpack")
}
