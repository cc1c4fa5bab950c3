package inspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"

	"github.com/billie-coop/fastclick/internal/debounce"
)

// Directive is the comment prefix that marks a method.
const Directive = "//fastclick:guard"

// Finding is one marked method.
type Finding struct {
	Package string
	Type    string
	Method  string
	Marker  debounce.Marker
	Pos     token.Position
}

// Scope returns the name of the declaring scope, for example
// "example.com/app/ui.MainView".
func (f Finding) Scope() string {
	if f.Type == "" {
		return f.Package
	}
	return f.Package + "." + f.Type
}

// DirectiveError reports a malformed marker comment.
type DirectiveError struct {
	Pos  token.Position
	Text string
	Err  error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: invalid directive %q: %v", e.Pos, e.Text, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Report collects findings and directive errors in source order.
type Report struct {
	Findings []Finding
	Errors   []error
}

// Load parses the packages matching patterns, relative to dir, and scans
// them for markers.
func Load(dir string, patterns ...string) (*Report, error) {
	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:   dir,
		Tests: false,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	report := &Report{}
	var loadErrs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e)
		}
	})
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("load packages: %w", errors.Join(loadErrs...))
	}

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			report.ScanFile(pkg.Fset, pkg.PkgPath, file)
		}
	}
	return report, nil
}

// ScanFile adds the markers declared in file to the report.
func (r *Report) ScanFile(fset *token.FileSet, pkgPath string, file *ast.File) {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		var found *Finding
		for _, c := range fn.Doc.List {
			args, ok := cutDirective(c.Text)
			if !ok {
				continue
			}
			pos := fset.Position(c.Slash)
			if found != nil {
				r.Errors = append(r.Errors, &DirectiveError{Pos: pos, Text: c.Text, Err: errors.New("method already carries a marker")})
				continue
			}
			marker, err := parseArgs(args)
			if err != nil {
				r.Errors = append(r.Errors, &DirectiveError{Pos: pos, Text: c.Text, Err: err})
				continue
			}
			marker.Method = fn.Name.Name
			found = &Finding{
				Package: pkgPath,
				Type:    receiverType(fn),
				Method:  fn.Name.Name,
				Marker:  marker,
				Pos:     fset.Position(fn.Pos()),
			}
		}
		if found != nil {
			r.Findings = append(r.Findings, *found)
		}
	}
}

// Validate returns one DuplicateIdentityError per identity reused within a
// declaring scope, followed by any directive errors.
func (r *Report) Validate() []error {
	type key struct {
		scope string
		id    int
	}
	seen := make(map[key]Finding)

	var errs []error
	for _, f := range r.Findings {
		k := key{f.Scope(), f.Marker.ID}
		if prev, dup := seen[k]; dup {
			errs = append(errs, &debounce.DuplicateIdentityError{
				Scope:    f.Scope(),
				Identity: f.Marker.ID,
				First:    prev.Method,
				Second:   f.Method,
				Pos:      f.Pos.String(),
			})
			continue
		}
		seen[k] = f
	}
	return append(errs, r.Errors...)
}

// Scopes groups the markers by declaring scope, ready for debounce.NewScope.
func (r *Report) Scopes() map[string][]debounce.Marker {
	out := make(map[string][]debounce.Marker)
	for _, f := range r.Findings {
		out[f.Scope()] = append(out[f.Scope()], f.Marker)
	}
	return out
}

func cutDirective(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, Directive)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func parseArgs(args string) (debounce.Marker, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return debounce.Marker{}, errors.New("missing identity")
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return debounce.Marker{}, fmt.Errorf("identity must be an integer: %w", err)
	}
	m := debounce.Marker{ID: id}

	for _, opt := range fields[1:] {
		name, value, ok := strings.Cut(opt, "=")
		if !ok {
			return debounce.Marker{}, fmt.Errorf("option %q is not key=value", opt)
		}
		switch name {
		case "window":
			d, err := time.ParseDuration(value)
			if err != nil {
				return debounce.Marker{}, fmt.Errorf("window: %w", err)
			}
			if d <= 0 {
				return debounce.Marker{}, fmt.Errorf("window must be positive, got %s", d)
			}
			m.Window = d
		default:
			return debounce.Marker{}, fmt.Errorf("unknown option %q", name)
		}
	}
	return m, nil
}

func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}
