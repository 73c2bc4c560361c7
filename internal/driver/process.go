package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"eqgen/internal/classify"
	"eqgen/internal/contract"
	"eqgen/internal/decl"
	"eqgen/internal/diag"
	"eqgen/internal/enumgen"
	"eqgen/internal/marker"
	"eqgen/internal/observ"
	"eqgen/internal/source"
	"eqgen/internal/synth"
)

// PackageResult is the per-package outcome: diagnostics, the
// assembled generated file (when any declaration synthesized) and
// what happened to it on disk.
type PackageResult struct {
	PkgPath    string
	Name       string
	Dir        string
	OutputPath string
	Generated  []byte
	Written    bool
	Removed    bool
	CacheHits  int
	Bag        *diag.Bag
	Timing     observ.Report
}

// processPackage runs build, validate and synthesize for one package.
// Declarations are independent: an error in one blocks only its own
// chunk, the rest of the package still generates.
func processPackage(lp LoadedPackage, opts Options) PackageResult {
	res := PackageResult{
		PkgPath: lp.PkgPath,
		Name:    lp.Name,
		Dir:     lp.Dir,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	for _, d := range lp.LoadErrors {
		res.Bag.Add(d)
	}
	timer := observ.NewTimer()

	buildPhase := timer.Begin("build")
	pkg := decl.BuildPackage(lp.PkgPath, lp.Name, lp.Files, lp.Types, diag.BagReporter{Bag: res.Bag})
	pkgDigest := packageDigest(pkg)
	timer.End(buildPhase, fmt.Sprintf("%d types", len(pkg.Types)))

	synthPhase := timer.Begin("synthesize")
	var chunks []synth.Chunk
	for _, t := range pkg.Types {
		if t.HasMarker("contract") || hasMemberStrategies(t) {
			if chunk, ok := synthesizeContract(t, pkgDigest, opts, &res); ok {
				chunks = append(chunks, chunk)
			}
		}
		if t.HasMarker("enum") {
			if chunk, ok := synthesizeEnum(pkg, t, pkgDigest, opts, &res); ok {
				chunks = append(chunks, chunk)
			}
		}
	}
	timer.End(synthPhase, fmt.Sprintf("%d chunks, %d cache hits", len(chunks), res.CacheHits))

	writePhase := timer.Begin("write")
	if lp.Dir != "" {
		res.OutputPath = filepath.Join(lp.Dir, lp.Name+opts.OutputSuffix)
	}
	if res.OutputPath != "" && len(chunks) > 0 {
		out, err := synth.File(lp.Name, chunks)
		if err != nil {
			res.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{}, fmt.Sprintf("assemble %s: %v", res.OutputPath, err)))
		} else {
			res.Generated = out
		}
	}
	writeOutput(&res, opts)
	timer.End(writePhase, "")

	res.Timing = timer.Report()
	return res
}

// hasMemberStrategies reports whether the declaration or any of its
// members carries a strategy marker; on an unmarked type those markers
// are errors the validator must see.
func hasMemberStrategies(t *decl.Type) bool {
	for _, a := range t.Attrs {
		if marker.IsStrategy(a.Name) {
			return true
		}
	}
	for _, m := range t.Members {
		if len(m.Attrs) > 0 {
			return true
		}
	}
	for _, m := range t.Methods {
		if len(m.Attrs) > 0 {
			return true
		}
	}
	return false
}

// synthesizeContract validates and emits one host declaration,
// consulting the cache first. Only diagnostics-free declarations are
// cached, so a hit can skip validation entirely.
func synthesizeContract(t *decl.Type, pkgDigest Digest, opts Options, res *PackageResult) (synth.Chunk, bool) {
	if t.MarkerErrors > 0 {
		return synth.Chunk{}, false
	}
	key := declKey(t, pkgDigest)
	if opts.Cache != nil && t.HasMarker("contract") {
		var payload CachePayload
		if hit, _ := opts.Cache.Get(key, &payload); hit && payload.TypeName == t.Name {
			res.CacheHits++
			return synth.Chunk{TypeName: payload.TypeName, Source: payload.Source, Imports: payload.Imports}, true
		}
	}

	typeBag := diag.NewBag(int(res.Bag.Cap()))
	r := diag.BagReporter{Bag: typeBag}
	c, ok := contract.Validate(classify.Classify(t, r), r)
	clean := typeBag.Len() == 0
	blocked := typeBag.HasErrors()
	res.Bag.Merge(typeBag)
	if !ok || blocked {
		return synth.Chunk{}, false
	}

	chunk := synth.EmitContract(c)
	if opts.Cache != nil && clean {
		_ = opts.Cache.Put(key, &CachePayload{
			TypeName: chunk.TypeName,
			Source:   chunk.Source,
			Imports:  chunk.Imports,
		})
	}
	return chunk, true
}

func synthesizeEnum(pkg *decl.Package, t *decl.Type, pkgDigest Digest, opts Options, res *PackageResult) (synth.Chunk, bool) {
	if t.MarkerErrors > 0 {
		return synth.Chunk{}, false
	}
	key := declKey(t, pkgDigest)
	// enum keys must not collide with the contract key of the same type
	key[0] ^= 0xE5

	if opts.Cache != nil {
		var payload CachePayload
		if hit, _ := opts.Cache.Get(key, &payload); hit && payload.TypeName == t.Name {
			res.CacheHits++
			return synth.Chunk{TypeName: payload.TypeName, Source: payload.Source, Imports: payload.Imports}, true
		}
	}

	typeBag := diag.NewBag(int(res.Bag.Cap()))
	e, ok := enumgen.Extract(pkg, t, diag.BagReporter{Bag: typeBag})
	clean := typeBag.Len() == 0
	blocked := typeBag.HasErrors()
	res.Bag.Merge(typeBag)
	if !ok || blocked {
		return synth.Chunk{}, false
	}

	chunk := enumgen.Emit(e)
	if opts.Cache != nil && clean {
		_ = opts.Cache.Put(key, &CachePayload{
			TypeName: chunk.TypeName,
			Source:   chunk.Source,
			Imports:  chunk.Imports,
		})
	}
	return chunk, true
}

// writeOutput commits the generated file atomically, or removes a
// stale one when the package no longer generates anything.
func writeOutput(res *PackageResult, opts Options) {
	if opts.DryRun || res.OutputPath == "" {
		return
	}
	if res.Generated == nil {
		if _, err := os.Stat(res.OutputPath); err == nil {
			if err := os.Remove(res.OutputPath); err != nil {
				res.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{}, fmt.Sprintf("remove stale %s: %v", res.OutputPath, err)))
				return
			}
			res.Removed = true
		}
		return
	}

	if prev, err := os.ReadFile(res.OutputPath); err == nil && string(prev) == string(res.Generated) {
		return // unchanged, keep mtime stable
	}

	tmp, err := os.CreateTemp(res.Dir, "eqgen-*")
	if err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{}, fmt.Sprintf("write %s: %v", res.OutputPath, err)))
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(res.Generated); err != nil {
		tmp.Close()
		res.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{}, fmt.Sprintf("write %s: %v", res.OutputPath, err)))
		return
	}
	if err := tmp.Close(); err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{}, fmt.Sprintf("write %s: %v", res.OutputPath, err)))
		return
	}
	if err := os.Rename(tmp.Name(), res.OutputPath); err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{}, fmt.Sprintf("write %s: %v", res.OutputPath, err)))
		return
	}
	res.Written = true
}
