package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"eqgen/internal/decl"
	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// LoadedPackage pairs a go/packages result with its mirrored file
// contents and byte-offset positions.
type LoadedPackage struct {
	PkgPath string
	Name    string
	Dir     string
	Files   []decl.FileInput
	Paths   []string
	Types   decl.TypesContext
	// LoadErrors carries go/packages errors as diagnostics so partial
	// input still produces partial output.
	LoadErrors []diag.Diagnostic
}

// Load resolves package patterns and mirrors every compiled file into
// the file set. Generated files (our own output included) are skipped
// so a previous run never feeds the next one.
func Load(ctx context.Context, fileSet *source.FileSet, dir string, patterns []string, outputSuffix string) ([]LoadedPackage, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	out := make([]LoadedPackage, 0, len(pkgs))
	for _, pkg := range pkgs {
		lp := LoadedPackage{
			PkgPath: pkg.PkgPath,
			Name:    pkg.Name,
			Types:   decl.TypesContext{Pkg: pkg.Types, Info: pkg.TypesInfo},
		}
		for _, e := range pkg.Errors {
			lp.LoadErrors = append(lp.LoadErrors, diag.New(diag.SevError, diag.IOPackageLoadError,
				source.Span{}, fmt.Sprintf("package %s: %s", pkg.PkgPath, e.Msg)))
		}
		for _, astFile := range pkg.Syntax {
			tok := pkg.Fset.File(astFile.Pos())
			if tok == nil {
				continue
			}
			path := tok.Name()
			if strings.HasSuffix(path, outputSuffix) {
				continue
			}
			if lp.Dir == "" {
				lp.Dir = filepath.Dir(path)
			}
			id, err := fileSet.Load(path)
			if err != nil {
				lp.LoadErrors = append(lp.LoadErrors, diag.New(diag.SevError, diag.IOLoadFileError,
					source.Span{}, fmt.Sprintf("load %s: %v", path, err)))
				continue
			}
			lp.Files = append(lp.Files, decl.FileInput{
				AST:     astFile,
				Tok:     tok,
				ID:      id,
				Content: fileSet.Get(id).Content,
			})
			lp.Paths = append(lp.Paths, path)
		}
		out = append(out, lp)
	}
	return out, nil
}
