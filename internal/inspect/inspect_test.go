package inspect

import (
	"errors"
	"go/parser"
	"go/token"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/fastclick/internal/debounce"
)

func scan(t *testing.T, src string) *Report {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	r := &Report{}
	r.ScanFile(fset, "example.com/ui", file)
	return r
}

func TestScanFileFindsMarkers(t *testing.T) {
	r := scan(t, `package ui

type View struct{}

// doClickFilter handles the filter button.
//
//fastclick:guard 1
func (v *View) doClickFilter() {}

//fastclick:guard 2 window=750ms
func (v *View) doClickSave() {}

//fastclick:guarded 3
func (v *View) notAMarker() {}

//fastclick:guard 4
func helper() {}
`)

	require.Empty(t, r.Errors)
	require.Len(t, r.Findings, 3)

	assert.Equal(t, "example.com/ui.View", r.Findings[0].Scope())
	assert.Equal(t, debounce.Mark(1, "doClickFilter"), r.Findings[0].Marker)
	assert.Equal(t, 8, r.Findings[0].Pos.Line)

	assert.Equal(t, 750*time.Millisecond, r.Findings[1].Marker.Window)

	assert.Equal(t, "", r.Findings[2].Type)
	assert.Equal(t, "example.com/ui", r.Findings[2].Scope())

	assert.Empty(t, r.Validate())
	assert.Len(t, r.Scopes()["example.com/ui.View"], 2)
}

func TestScanFileDirectiveErrors(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		wantErr string
	}{
		{"missing identity", "//fastclick:guard", "missing identity"},
		{"non-integer identity", "//fastclick:guard abc", "must be an integer"},
		{"bad option", "//fastclick:guard 1 window", "not key=value"},
		{"unknown option", "//fastclick:guard 1 scope=x", "unknown option"},
		{"bad window", "//fastclick:guard 1 window=soon", "window"},
		{"zero window", "//fastclick:guard 1 window=0s", "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := scan(t, "package ui\n\ntype V struct{}\n\n"+tt.comment+"\nfunc (v *V) m() {}\n")
			require.Len(t, r.Errors, 1)
			assert.Empty(t, r.Findings)

			var de *DirectiveError
			require.True(t, errors.As(r.Errors[0], &de))
			assert.Contains(t, de.Error(), tt.wantErr)
			assert.Equal(t, 5, de.Pos.Line)
		})
	}
}

func TestScanFileRejectsSecondMarker(t *testing.T) {
	r := scan(t, `package ui

type V struct{}

//fastclick:guard 1
//fastclick:guard 2
func (v *V) m() {}
`)
	require.Len(t, r.Findings, 1)
	assert.Equal(t, 1, r.Findings[0].Marker.ID)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Error(), "already carries a marker")
}

func TestValidateReportsDuplicatesPerDeclaringType(t *testing.T) {
	r := scan(t, `package ui

type Base struct{}

//fastclick:guard 1
func (b *Base) onBack() {}

type View struct{ Base }

//fastclick:guard 1
func (v *View) a() {}

//fastclick:guard 1
func (v View) b() {}

type Other struct{}

//fastclick:guard 1
func (o *Other) a() {}
`)

	errs := r.Validate()
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], debounce.ErrDuplicateIdentity)

	var dup *debounce.DuplicateIdentityError
	require.True(t, errors.As(errs[0], &dup))
	assert.Equal(t, "example.com/ui.View", dup.Scope)
	assert.Equal(t, "a", dup.First)
	assert.Equal(t, "b", dup.Second)
	assert.Contains(t, dup.Pos, "src.go:14")
}

func TestLoadFixturePackage(t *testing.T) {
	r, err := Load(".", "./testdata/views")
	require.NoError(t, err)

	require.Len(t, r.Findings, 5)
	byMethod := make(map[string]Finding)
	for _, f := range r.Findings {
		byMethod[f.Method] = f
	}
	assert.Equal(t, "Base", byMethod["onBack"].Type)
	assert.Equal(t, "List", byMethod["onSelect"].Type)
	assert.Equal(t, time.Second, byMethod["doClickSave"].Marker.Window)

	errs := r.Validate()
	require.Len(t, errs, 2)

	var dup *debounce.DuplicateIdentityError
	require.True(t, errors.As(errs[0], &dup))
	assert.Equal(t, 2, dup.Identity)
	assert.Equal(t, "doClickSave", dup.First)
	assert.Equal(t, "doClickShare", dup.Second)

	var de *DirectiveError
	assert.True(t, errors.As(errs[1], &de))
}
