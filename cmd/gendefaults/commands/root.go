// Package commands implements the gendefaults command line.
package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/gendefaults/config"
	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
	"github.com/teranos/gendefaults/gen"
	"github.com/teranos/gendefaults/gen/builtin"
	"github.com/teranos/gendefaults/logger"
	"github.com/teranos/gendefaults/version"
)

// app carries global flags and the loaded configuration to subcommands.
type app struct {
	configPath string
	verbose    int
	logJSON    bool

	cfg    *config.Config
	cfgErr error

	generators *gen.Registry
}

// NewRootCmd builds the gendefaults command tree.
func NewRootCmd() *cobra.Command {
	a := &app{generators: builtin.Registry()}

	root := &cobra.Command{
		Use:   "gendefaults",
		Short: "Generate Couchbase Lite default-value constants for every platform",
		Long: `gendefaults - Generate default-value constants from one JSON definitions file.

Each registered generator writes its files into <output>/<platform>/.
Enterprise Edition entries are wrapped in COUCHBASE_ENTERPRISE conditionals
(or split into a separate class where the language has no preprocessor).

Examples:
  gendefaults generate                       # Generate every platform
  gendefaults generate --platform objc       # Generate one platform
  gendefaults generate --watch               # Regenerate on every save
  gendefaults check                          # Fail if generated files drifted
  gendefaults list --platform c              # Show resolved values for C`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: nearest "+config.ProjectConfigFile+")")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Write logs as JSON")

	root.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newListCmd(a),
		newPlatformsCmd(a),
		newSchemaCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and initializes the logger. A broken config
// is kept as cfgErr so commands that do not need it still run.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg, a.cfgErr = config.Load(a.configPath)

	opts := logger.Options{JSON: a.logJSON, Verbosity: a.verbose, Out: cmd.ErrOrStderr()}
	if a.cfg != nil {
		opts.JSON = opts.JSON || a.cfg.Log.JSON
		if opts.Verbosity == 0 {
			opts.Verbosity = a.cfg.Log.Verbosity
		}
	}
	if err := logger.Initialize(opts); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// settings returns the configuration with command flags applied, validated
// and checked against required_version.
func (a *app) settings(cmd *cobra.Command) (*config.Config, error) {
	if a.cfgErr != nil {
		return nil, errors.Wrap(a.cfgErr, "failed to load config")
	}
	cfg := *a.cfg

	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := version.Get().Satisfies(cfg.RequiredVersion); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyFlags copies the changed command flags over cfg. --platform selects
// generators only where it is a list; list's single --platform is its own.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	if flags.Changed("input") {
		if cfg.Input, err = flags.GetString("input"); err != nil {
			return errors.Wrap(err, "--input")
		}
	}
	if flags.Changed("output") {
		if cfg.Output, err = flags.GetString("output"); err != nil {
			return errors.Wrap(err, "--output")
		}
	}
	if f := flags.Lookup("platform"); f != nil && f.Changed && f.Value.Type() == "stringSlice" {
		if cfg.Platforms, err = flags.GetStringSlice("platform"); err != nil {
			return errors.Wrap(err, "--platform")
		}
	}
	if flags.Changed("year") {
		if cfg.Year, err = flags.GetInt("year"); err != nil {
			return errors.Wrap(err, "--year")
		}
	}
	if flags.Lookup("sequential") != nil {
		sequential, err := flags.GetBool("sequential")
		if err != nil {
			return errors.Wrap(err, "--sequential")
		}
		if sequential {
			cfg.Parallel = false
		}
	}
	return nil
}

// build loads the definitions and constructs the selected generators.
func (a *app) build(cfg *config.Config) (*defaults.Registry, []gen.Generator, error) {
	reg, err := defaults.LoadRegistry(cfg.Input)
	if err != nil {
		return nil, nil, err
	}

	platforms := make([]defaults.Platform, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		platforms = append(platforms, defaults.Platform(p))
	}
	generators, err := a.generators.Build(gen.Options{Year: cfg.Year}, platforms...)
	if err != nil {
		return nil, nil, err
	}
	return reg, generators, nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Definitions file (default "+config.DefaultInput+")")
	cmd.Flags().StringP("output", "o", "", "Output directory (default "+config.DefaultOutput+")")
	cmd.Flags().StringSliceP("platform", "p", nil, "Platforms to generate (repeatable, default all)")
}

// PrintError writes err and any hints attached to it.
func PrintError(w io.Writer, err error) {
	pterm.Fprintln(w, pterm.Red("Error: ")+err.Error())
	if hint := errors.FlattenHints(err); hint != "" {
		pterm.Fprintln(w, pterm.Gray("Hint: ")+hint)
	}
}

func printf(w io.Writer, format string, args ...interface{}) {
	pterm.Fprint(w, fmt.Sprintf(format, args...))
}
