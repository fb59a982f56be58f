package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gendefaults/config"
	"github.com/teranos/gendefaults/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gendefaults configuration",
		Long: `Display and manage gendefaults configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (GENDEFAULTS_* prefix)
3. Project config (nearest gendefaults.toml, or --config)
4. User config (<user config dir>/gendefaults/config.toml)
5. Default values`,
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfgErr != nil {
				return errors.Wrap(a.cfgErr, "failed to load config")
			}
			data, err := a.cfg.Marshal(format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == config.FormatTOML {
				for _, src := range a.cfg.Sources {
					pterm.Fprintln(out, "# source:", src)
				}
			}
			_, err = out.Write(data)
			return err
		},
	}
	show.Flags().StringVar(&format, "format", config.FormatTOML, "Output format: toml, json, yaml")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + config.ProjectConfigFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("✓"), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.settings(cmd); err != nil {
				return err
			}
			pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("✓"), "configuration is valid")
			return nil
		},
	}

	cmd.AddCommand(show, initCmd, validate)
	return cmd
}
