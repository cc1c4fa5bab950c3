// Package inspect finds debounce markers in Go source and checks that their
// identities are unique within each declaring type.
//
// A marker is a directive comment in a method's doc comment:
//
//	//fastclick:guard 1
//	func (v *MainView) doClickFilter() { ... }
//
//	//fastclick:guard 2 window=1s
//	func (v *MainView) doClickSave() { ... }
//
// The declaring type is the receiver's base type. A method promoted through
// embedding is checked with the type that declares it, not the embedding
// type. Plain functions carrying a marker share one package-level scope.
package inspect
