// Package driver runs the generation pipeline: load packages, build
// declaration models, validate contracts, synthesize methods and
// enumeration tables, and write one generated file per package.
package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"eqgen/internal/source"
)

// DefaultOutputSuffix names generated files; it doubles as the skip
// filter so output never becomes input.
const DefaultOutputSuffix = "_eq.go"

// Options configures one Generate run.
type Options struct {
	// Dir is the working directory package patterns resolve against.
	Dir string
	// Patterns are go/packages patterns, ./... by default.
	Patterns []string
	// Jobs caps package-level parallelism; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the bag of each package.
	MaxDiagnostics int
	// OutputSuffix overrides DefaultOutputSuffix.
	OutputSuffix string
	// Cache skips synthesis for unchanged declarations when non-nil.
	Cache *DiskCache
	// DryRun validates and synthesizes without touching the tree.
	DryRun bool
	// Observer receives phase boundaries, for progress UIs.
	Observer PhaseObserver
}

func (o *Options) fill() {
	if len(o.Patterns) == 0 {
		o.Patterns = []string{"./..."}
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 256
	}
	if o.OutputSuffix == "" {
		o.OutputSuffix = DefaultOutputSuffix
	}
}

// Result is the outcome of one Generate run across all packages.
type Result struct {
	FileSet  *source.FileSet
	Packages []PackageResult
}

// HasErrors reports whether any package produced error diagnostics.
func (r *Result) HasErrors() bool {
	for _, p := range r.Packages {
		if p.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Generate runs the full pipeline. Packages are processed in
// parallel; within a package declarations are visited in declaration
// order so output and diagnostics stay deterministic.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	opts.fill()

	fileSet := source.NewFileSetWithBase(opts.Dir)

	start := time.Now()
	opts.Observer.emit(PhaseEvent{Name: "load", Status: PhaseStart})
	loaded, err := Load(ctx, fileSet, opts.Dir, opts.Patterns, opts.OutputSuffix)
	opts.Observer.emit(PhaseEvent{Name: "load", Status: PhaseEnd, Elapsed: time.Since(start)})
	if err != nil {
		return nil, err
	}

	results := make([]PackageResult, len(loaded))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, max(len(loaded), 1)))

	for i, lp := range loaded {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			pkgStart := time.Now()
			opts.Observer.emit(PhaseEvent{Name: "generate", Pkg: lp.PkgPath, Status: PhaseStart})
			results[i] = processPackage(lp, opts)
			opts.Observer.emit(PhaseEvent{Name: "generate", Pkg: lp.PkgPath, Status: PhaseEnd, Elapsed: time.Since(pkgStart)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{FileSet: fileSet, Packages: results}, nil
}
