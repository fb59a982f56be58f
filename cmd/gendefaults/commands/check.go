package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gendefaults/gen"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated files are up to date",
		Long: `Check renders every selected platform in memory and compares the result
with the files under the output directory. Copyright years are ignored.

Exits non-zero when any file is missing, different or stale, which makes it
suitable for CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}
			reg, generators, err := a.build(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			outputs, err := gen.Render(ctx, reg, generators, cfg.Parallel)
			if err != nil {
				return err
			}

			result, err := gen.Check(outputs, cfg.Output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.UpToDate {
				pterm.Fprintln(out, pterm.Green("✓"), "generated files are up to date")
				return nil
			}
			for _, d := range result.Drift {
				pterm.Fprintln(out, pterm.Bold.Sprint(d.Platform))
				for _, f := range d.Missing {
					pterm.Fprintln(out, "  ", pterm.Yellow("missing  "), f)
				}
				for _, f := range d.Different {
					pterm.Fprintln(out, "  ", pterm.Red("different"), f)
				}
				for _, f := range d.Stale {
					pterm.Fprintln(out, "  ", pterm.Gray("stale    "), f)
				}
			}
			return result.Err()
		},
	}

	addInputFlags(cmd)
	return cmd
}
