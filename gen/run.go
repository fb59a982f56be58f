package gen

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
	"github.com/teranos/gendefaults/logger"
)

// RunOptions configure a generation run.
type RunOptions struct {
	// OutputDir receives one subdirectory per platform.
	OutputDir string
	// Parallel renders generators concurrently.
	Parallel bool
	// KnownPlatforms are the platforms only_on lists may name without a
	// warning. Defaults to the platforms of the generators being run.
	KnownPlatforms []defaults.Platform
}

// PlatformResult describes what one generator wrote.
type PlatformResult struct {
	Platform     defaults.Platform
	Dir          string
	Files        []string
	Declarations int
}

// RunResult summarises a generation run.
type RunResult struct {
	RunID     string
	Platforms []PlatformResult
	Duration  time.Duration
}

// Files returns the total number of files written.
func (r *RunResult) Files() int {
	n := 0
	for _, p := range r.Platforms {
		n += len(p.Files)
	}
	return n
}

// Render runs every generator over reg and returns the outputs in memory.
// Nothing is written. The first failure cancels the remaining work.
func Render(ctx context.Context, reg *defaults.Registry, generators []Generator, parallel bool) (map[defaults.Platform]Output, error) {
	entries := reg.Entries()
	outputs := make(map[defaults.Platform]Output, len(generators))

	if !parallel {
		for _, g := range generators {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := g.Generate(entries)
			if err != nil {
				return nil, errors.Wrapf(err, "platform %s", g.Platform())
			}
			outputs[g.Platform()] = out
		}
		return outputs, nil
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	for _, g := range generators {
		g := g
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out, err := g.Generate(entries)
			if err != nil {
				return errors.Wrapf(err, "platform %s", g.Platform())
			}
			mu.Lock()
			outputs[g.Platform()] = out
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Run renders every generator and, only if all succeed, writes their files
// into <OutputDir>/<platform>/.
func Run(ctx context.Context, reg *defaults.Registry, generators []Generator, opts RunOptions) (*RunResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.LoggerFromContext(ctx).Named("gen")

	warnUnknownPlatforms(log, reg, generators, opts.KnownPlatforms)

	log.Infow("rendering",
		logger.FieldEntries, reg.Len(),
		logger.FieldConstants, reg.ConstantCount(),
		"generators", len(generators),
		"parallel", opts.Parallel)

	outputs, err := Render(ctx, reg, generators, opts.Parallel)
	if err != nil {
		return nil, err
	}

	result := &RunResult{RunID: runID}
	for _, g := range generators {
		p := g.Platform()
		dir := filepath.Join(opts.OutputDir, string(p))
		files, err := writeOutput(log.With(logger.FieldPlatform, string(p)), dir, outputs[p])
		if err != nil {
			return nil, errors.Wrapf(err, "platform %s", p)
		}
		result.Platforms = append(result.Platforms, PlatformResult{
			Platform:     p,
			Dir:          dir,
			Files:        files,
			Declarations: countDeclarations(reg, p),
		})
	}
	result.Duration = time.Since(start)

	log.Infow("generation complete",
		logger.FieldFiles, result.Files(),
		logger.FieldOutput, opts.OutputDir,
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}

func writeOutput(log *zap.SugaredLogger, dir string, out Output) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapIO(err, "failed to create "+dir)
	}

	names := out.Filenames()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(out[name]), 0644); err != nil {
			return nil, errors.WrapIO(err, "failed to write "+path)
		}
		log.Debugw("wrote file", logger.FieldFile, name, logger.FieldBytes, len(out[name]))
	}
	return names, nil
}

// countDeclarations counts the constants that survive only_on filtering for p.
func countDeclarations(reg *defaults.Registry, p defaults.Platform) int {
	n := 0
	for _, e := range reg.Entries() {
		if !e.AppliesTo(p) {
			continue
		}
		for _, c := range e.Constants {
			if c.AppliesTo(p) {
				n++
			}
		}
	}
	return n
}

// warnUnknownPlatforms logs only_on platforms no generator knows about.
// They are not an error; the constant is simply never emitted for them.
func warnUnknownPlatforms(log *zap.SugaredLogger, reg *defaults.Registry, generators []Generator, known []defaults.Platform) {
	if known == nil {
		for _, g := range generators {
			known = append(known, g.Platform())
		}
	}
	knownSet := make(map[defaults.Platform]bool, len(known))
	for _, p := range known {
		knownSet[p] = true
	}

	var unknown []string
	for _, p := range reg.ReferencedPlatforms() {
		if !knownSet[p] {
			unknown = append(unknown, string(p))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		log.Warnw("only_on names platforms without a generator", "platforms", unknown)
	}
}
