package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gendefaults/config"
	"github.com/teranos/gendefaults/gen"
	"github.com/teranos/gendefaults/logger"
	"github.com/teranos/gendefaults/watcher"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate source files for every selected platform",
		Long: `Generate renders every selected platform before writing anything, so a
failure leaves the output directory untouched.

With --watch the definitions file is watched and generation re-runs on every
change until interrupted. Failed regenerations are reported and watching
continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}

			watch, _ := cmd.Flags().GetBool("watch")
			if watch {
				return a.watch(cmd.Context(), cmd.OutOrStdout(), cfg)
			}
			_, err = a.generate(cmd.Context(), cmd.OutOrStdout(), cfg)
			return err
		},
	}

	addInputFlags(cmd)
	cmd.Flags().Int("year", 0, "Copyright year for license headers (default current year)")
	cmd.Flags().Bool("sequential", false, "Render platforms one at a time")
	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the definitions file changes")
	return cmd
}

func (a *app) generate(ctx context.Context, out io.Writer, cfg *config.Config) (*gen.RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reg, generators, err := a.build(cfg)
	if err != nil {
		return nil, err
	}

	result, err := gen.Run(ctx, reg, generators, gen.RunOptions{
		OutputDir:      cfg.Output,
		Parallel:       cfg.Parallel,
		KnownPlatforms: a.generators.Platforms(),
	})
	if err != nil {
		return nil, err
	}

	for _, p := range result.Platforms {
		pterm.Fprintln(out, pterm.Green("✓"), pterm.Bold.Sprint(p.Platform),
			strings.Join(p.Files, ", "),
			pterm.Gray(pluralize(p.Declarations, "constant")))
	}
	printf(out, "Wrote %d files to %s in %s\n", result.Files(), cfg.Output, result.Duration.Round(time.Millisecond))
	return result, nil
}

func (a *app) watch(ctx context.Context, out io.Writer, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.ComponentLogger("watch")
	regenerate := func(string) error {
		_, err := a.generate(ctx, out, cfg)
		if err != nil {
			PrintError(out, err)
		}
		return err
	}

	// An initial failure is reported like any later one; fixing the file
	// triggers the next run.
	_ = regenerate(cfg.Input)

	w, err := watcher.New(cfg.Input, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		return err
	}
	w.OnChange(regenerate)
	w.Start(ctx)

	log.Infow("watching for changes", logger.FieldPath, w.Path())
	printf(out, "Watching %s (Ctrl+C to stop)\n", cfg.Input)

	<-w.Done()
	return nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "(1 " + noun + ")"
	}
	return fmt.Sprintf("(%d %ss)", n, noun)
}
