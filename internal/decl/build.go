package decl

import (
	"crypto/sha256"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"eqgen/internal/diag"
	"eqgen/internal/marker"
	"eqgen/internal/source"
)

// FileInput pairs a parsed Go file with its mirror in the FileSet.
type FileInput struct {
	AST     *ast.File
	Tok     *token.File
	ID      source.FileID
	Content []byte
}

// TypesContext carries optional go/types facts. All fields may be nil;
// the builder then falls back to purely syntactic answers.
type TypesContext struct {
	Pkg  *types.Package
	Info *types.Info
}

type builder struct {
	pkgPath string
	pkgName string
	tctx    TypesContext
	r       diag.Reporter

	file FileInput
	out  *Package
}

// BuildPackage converts parsed files into the declaration model. The
// result is a pure function of the files' syntax (plus type facts when
// given): no field of the returned Package aliases go/ast nodes.
func BuildPackage(pkgPath, pkgName string, files []FileInput, tctx TypesContext, r diag.Reporter) *Package {
	b := &builder{
		pkgPath: pkgPath,
		pkgName: pkgName,
		tctx:    tctx,
		r:       r,
		out:     &Package{Path: pkgPath, Name: pkgName},
	}
	// methods are collected per receiver name, attached after all type
	// declarations are known
	methods := make(map[string][]Method)

	for _, f := range files {
		b.file = f
		for _, d := range f.AST.Decls {
			switch d := d.(type) {
			case *ast.GenDecl:
				switch d.Tok {
				case token.TYPE:
					b.typeDecl(d)
				case token.VAR:
					b.varDecl(d)
				}
			case *ast.FuncDecl:
				if recv, m, ok := b.method(d); ok {
					methods[recv] = append(methods[recv], m)
				}
			}
		}
	}

	for _, t := range b.out.Types {
		t.Methods = methods[t.Name]
		for _, m := range t.Methods {
			t.MarkerErrors += m.MarkerErrors
		}
	}
	b.linkContractTypes()
	return b.out
}

func (b *builder) span(start, end token.Pos) source.Span {
	return source.MakeSpan(b.file.ID, b.file.Tok.Offset(start), b.file.Tok.Offset(end))
}

// errorCounter counts error-severity diagnostics on their way to the
// package reporter, so marker parse failures stay attributed to the
// declaration they came from.
type errorCounter struct {
	next diag.Reporter
	n    int
}

func (c *errorCounter) Report(d diag.Diagnostic) {
	if d.Severity >= diag.SevError {
		c.n++
	}
	c.next.Report(d)
}

// markersOf parses the eq: markers out of a doc comment group. The
// second result counts the error diagnostics the parse produced.
func (b *builder) markersOf(doc *ast.CommentGroup) ([]marker.Attr, int) {
	if doc == nil {
		return nil, 0
	}
	counter := &errorCounter{next: b.r}
	var attrs []marker.Attr
	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, "//")
		if !ok {
			continue // eq: markers live in line comments only
		}
		sp := b.span(c.Pos()+2, c.End())
		if attr, ok := marker.ParseLine(text, sp, counter); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs, counter.n
}

func (b *builder) typeDecl(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		doc := ts.Doc
		if doc == nil && len(d.Specs) == 1 {
			doc = d.Doc
		}
		attrs, nerr := b.markersOf(doc)
		t := &Type{
			Name:         ts.Name.Name,
			PkgPath:      b.pkgPath,
			PkgName:      b.pkgName,
			Span:         b.span(ts.Name.Pos(), ts.Name.End()),
			File:         b.file.ID,
			Attrs:        attrs,
			MarkerErrors: nerr,
		}
		declStart := d.Pos()
		if doc != nil && doc.Pos() < declStart {
			declStart = doc.Pos()
		}
		t.SrcHash = sha256.Sum256(b.span(declStart, ts.End()).Text(b.file.Content))

		switch {
		case ts.Assign.IsValid():
			t.Kind = KindAlias
		default:
			if st, ok := ts.Type.(*ast.StructType); ok {
				t.Kind = KindStruct
				b.structMembers(t, st)
			} else {
				t.Kind = KindOther
			}
		}
		b.out.Types = append(b.out.Types, t)
	}
}

func (b *builder) structMembers(t *Type, st *ast.StructType) {
	pos := 0
	for _, field := range st.Fields.List {
		attrs, nerr := b.markersOf(field.Doc)
		t.MarkerErrors += nerr
		desc := b.descriptor(field.Type)

		if len(field.Names) == 0 {
			name := embeddedName(field.Type)
			switch {
			case isSelector(field.Type, "ValueObject"):
				t.EmbedsValueObject = true
			case wrapperElem(field.Type) != "":
				t.WrapperElem = wrapperElem(field.Type)
			}
			t.Members = append(t.Members, Member{
				Name:     name,
				Kind:     MemberEmbedded,
				Type:     desc,
				DeclPos:  pos,
				Span:     b.span(field.Type.Pos(), field.Type.End()),
				Attrs:    attrs,
				Exported: ast.IsExported(name),
			})
			pos++
			continue
		}

		for _, name := range field.Names {
			t.Members = append(t.Members, Member{
				Name:     name.Name,
				Kind:     MemberField,
				Type:     desc,
				DeclPos:  pos,
				Span:     b.span(name.Pos(), name.End()),
				Attrs:    attrs,
				Exported: ast.IsExported(name.Name),
			})
			pos++
		}
	}
}

func (b *builder) method(d *ast.FuncDecl) (recv string, m Method, ok bool) {
	if d.Recv == nil || len(d.Recv.List) != 1 {
		return "", Method{}, false
	}
	recv = receiverTypeName(d.Recv.List[0].Type)
	if recv == "" {
		return "", Method{}, false
	}
	attrs, nerr := b.markersOf(d.Doc)
	m = Method{
		Name:         d.Name.Name,
		Span:         b.span(d.Name.Pos(), d.Name.End()),
		Attrs:        attrs,
		MarkerErrors: nerr,
	}
	if d.Type.Params != nil {
		for _, f := range d.Type.Params.List {
			n := len(f.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				m.Params = append(m.Params, types.ExprString(f.Type))
			}
		}
	}
	if d.Type.Results != nil {
		for _, f := range d.Type.Results.List {
			n := len(f.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				m.Results = append(m.Results, types.ExprString(f.Type))
			}
		}
	}
	return recv, m, true
}

func (b *builder) varDecl(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok || len(vs.Names) != len(vs.Values) {
			continue
		}
		for i, name := range vs.Names {
			typeName, args, ok := b.instanceValue(vs.Values[i])
			if !ok {
				continue
			}
			b.out.Instances = append(b.out.Instances, Instance{
				TypeName: typeName,
				VarName:  name.Name,
				Span:     b.span(name.Pos(), name.End()),
				Args:     args,
				File:     b.file.ID,
			})
		}
	}
}

// instanceValue recognizes the two constant-construction forms:
// a composite literal T{...} and a constructor call NewT(...).
func (b *builder) instanceValue(v ast.Expr) (string, []InstanceArg, bool) {
	switch v := v.(type) {
	case *ast.CompositeLit:
		name := typeExprName(v.Type)
		if name == "" {
			return "", nil, false
		}
		args := make([]InstanceArg, 0, len(v.Elts))
		for _, e := range v.Elts {
			if kv, ok := e.(*ast.KeyValueExpr); ok {
				e = kv.Value
			}
			args = append(args, b.instanceArg(e))
		}
		return name, args, true
	case *ast.CallExpr:
		fn, ok := v.Fun.(*ast.Ident)
		if !ok || !strings.HasPrefix(fn.Name, "New") {
			return "", nil, false
		}
		name := strings.TrimPrefix(fn.Name, "New")
		if name == "" {
			return "", nil, false
		}
		args := make([]InstanceArg, 0, len(v.Args))
		for _, e := range v.Args {
			args = append(args, b.instanceArg(e))
		}
		return name, args, true
	}
	return "", nil, false
}

func (b *builder) instanceArg(e ast.Expr) InstanceArg {
	arg := InstanceArg{Span: b.span(e.Pos(), e.End())}
	neg := false
	if u, ok := e.(*ast.UnaryExpr); ok && u.Op == token.SUB {
		neg = true
		e = u.X
	}
	lit, ok := e.(*ast.BasicLit)
	if !ok {
		return arg
	}
	switch lit.Kind {
	case token.INT:
		v, err := strconv.Atoi(lit.Value)
		if err != nil {
			return arg
		}
		if neg {
			v = -v
		}
		arg.Literal = true
		arg.IsInt = true
		arg.Int = v
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil || neg {
			return arg
		}
		arg.Literal = true
		arg.IsString = true
		arg.Str = s
	}
	return arg
}

// linkContractTypes marks member descriptors whose type is itself a
// contract-marked struct in this package: those get generated Equal
// and Hash methods, so Include members of that type compare via them.
func (b *builder) linkContractTypes() {
	contract := make(map[string]bool)
	for _, t := range b.out.Types {
		if t.HasMarker("contract") && t.Kind == KindStruct {
			contract[t.Name] = true
		}
	}
	var mark func(d *Descriptor)
	mark = func(d *Descriptor) {
		switch {
		case contract[d.Expr]:
			d.HasEqual = true
			d.HasHash = true
			// contract types embed the non-comparable base
			d.Comparable = false
		case d.IsPointer && strings.HasPrefix(d.Expr, "*") && contract[d.Expr[1:]]:
			// a pointer to a contract type stays identity-comparable, but
			// its pointee carries the generated methods
			d.HasEqual = true
			d.HasHash = true
		}
		if d.Elem != nil {
			mark(d.Elem)
		}
	}
	for _, t := range b.out.Types {
		for i := range t.Members {
			mark(&t.Members[i].Type)
		}
	}
}
