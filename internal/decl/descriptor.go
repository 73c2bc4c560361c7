package decl

import (
	"go/ast"
	"go/types"
)

var comparableBasics = map[string]bool{
	"bool": true, "string": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "byte": true, "rune": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// descriptor reduces a type expression to the structural facts the
// validator and synthesizer need. Syntax gives a conservative answer;
// go/types sharpens Comparable and the Equal/Hash method facts.
func (b *builder) descriptor(x ast.Expr) Descriptor {
	d := b.syntacticDescriptor(x)
	if b.tctx.Info != nil {
		if tv, ok := b.tctx.Info.Types[x]; ok && tv.Type != nil {
			d.Comparable = types.Comparable(tv.Type)
			d.HasEqual = hasMethod(tv.Type, b.tctx.Pkg, "Equal", 1)
			d.HasHash = hasMethod(tv.Type, b.tctx.Pkg, "Hash", 0)
		}
	}
	return d
}

func (b *builder) syntacticDescriptor(x ast.Expr) Descriptor {
	d := Descriptor{Expr: types.ExprString(x)}
	switch x := x.(type) {
	case *ast.Ident:
		switch {
		case x.Name == "string":
			d.IsString = true
			d.Comparable = true
		case comparableBasics[x.Name]:
			d.Comparable = true
		default:
			// named type: assume comparable until types say otherwise
			d.Comparable = true
		}
	case *ast.ArrayType:
		d.IsSequence = true
		elem := b.syntacticDescriptor(x.Elt)
		d.Elem = &elem
		// arrays of comparable elements are comparable, slices never
		d.Comparable = x.Len != nil && elem.Comparable
	case *ast.StarExpr:
		d.IsPointer = true
		d.Comparable = true
	case *ast.MapType, *ast.FuncType:
		d.Comparable = false
	case *ast.ChanType:
		d.Comparable = true
	case *ast.SelectorExpr:
		d.Comparable = true
	case *ast.InterfaceType:
		d.Comparable = true
	default:
		d.Comparable = true
	}
	return d
}

// hasMethod reports whether typ (or its pointer) has a method with the
// given name and parameter count. Signatures are checked loosely; the
// generated code is the final arbiter and fails compilation loudly.
func hasMethod(typ types.Type, pkg *types.Package, name string, params int) bool {
	obj, _, _ := types.LookupFieldOrMethod(typ, true, pkg, name)
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return false
	}
	return sig.Params().Len() == params
}

// embeddedName returns the member name an embedded field gets.
func embeddedName(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.StarExpr:
		return embeddedName(x.X)
	case *ast.SelectorExpr:
		return x.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(x.X)
	case *ast.IndexListExpr:
		return embeddedName(x.X)
	}
	return ""
}

// isSelector reports whether x is a selector whose final name is sel,
// e.g. eq.ValueObject regardless of the package alias.
func isSelector(x ast.Expr, sel string) bool {
	s, ok := x.(*ast.SelectorExpr)
	return ok && s.Sel.Name == sel
}

// wrapperElem returns the rendered type argument of an embedded
// eq.Wrapper[T], or "" when x is not a wrapper instantiation.
func wrapperElem(x ast.Expr) string {
	idx, ok := x.(*ast.IndexExpr)
	if !ok {
		return ""
	}
	if !isSelector(idx.X, "Wrapper") {
		return ""
	}
	return types.ExprString(idx.Index)
}

// receiverTypeName extracts the bare type name out of a method
// receiver, unwrapping pointers and type parameters.
func receiverTypeName(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.StarExpr:
		return receiverTypeName(x.X)
	case *ast.IndexExpr:
		return receiverTypeName(x.X)
	case *ast.IndexListExpr:
		return receiverTypeName(x.X)
	}
	return ""
}

// typeExprName names the type of a composite literal, tolerating a
// package qualifier.
func typeExprName(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return x.Sel.Name
	}
	return ""
}
