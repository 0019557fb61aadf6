// Package source defines the structural, mutable representation of a source file
// that transformation passes rewrite.
package source

import (
	"strings"

	"github.com/viant/unify/namepath"
)

// FileExtension of handled source units
const FileExtension = ".java"

// Unit represents one source file: a namespace, an import table and its top level declarations
type Unit struct {
	Namespace namepath.Path  // containing namespace (package declaration)
	Name      string         // file name, e.g. Circle.java
	URL       string         // location the unit was read from
	Header    string         // leading text before the package declaration
	Imports   []*Import      // ordered import table
	Types     []*Declaration // top level declarations, root first

	hash uint64
}

// Import represents one import table entry
type Import struct {
	Path     namepath.Path
	Static   bool
	OnDemand bool // wildcard import, e.g. shapes.*
}

// String returns import target as written
func (i *Import) String() string {
	if i.OnDemand {
		return i.Path.String() + ".*"
	}
	return i.Path.String()
}

// BaseName returns the file name without extension
func (u *Unit) BaseName() string {
	return strings.TrimSuffix(u.Name, FileExtension)
}

// Identity returns namespace qualified file name
func (u *Unit) Identity() string {
	return u.Namespace.Append(u.BaseName()).String() + FileExtension
}

// Root returns the top level declaration matching the file name, or the first one
func (u *Unit) Root() *Declaration {
	if len(u.Types) == 0 {
		return nil
	}
	base := u.BaseName()
	for _, candidate := range u.Types {
		if candidate.Name == base {
			return candidate
		}
	}
	return u.Types[0]
}

// FullName returns the fully qualified name of the root declaration
func (u *Unit) FullName() namepath.Path {
	root := u.Root()
	if root == nil {
		return u.Namespace.Append(u.BaseName())
	}
	return u.Namespace.Append(root.Name)
}

// Declaration returns the top level declaration with supplied name
func (u *Unit) Declaration(name string) *Declaration {
	for _, candidate := range u.Types {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Declarations returns all declarations including nested ones with their qualified names
func (u *Unit) Declarations() []*Qualified {
	var result []*Qualified
	for _, decl := range u.Types {
		result = appendQualified(result, u.Namespace.Append(decl.Name), decl, true)
	}
	return result
}

// Qualified pairs a declaration with its fully qualified name
type Qualified struct {
	Name     namepath.Path
	Decl     *Declaration
	TopLevel bool
}

func appendQualified(result []*Qualified, name namepath.Path, decl *Declaration, topLevel bool) []*Qualified {
	result = append(result, &Qualified{Name: name, Decl: decl, TopLevel: topLevel})
	for _, nested := range decl.Types {
		result = appendQualified(result, name.Append(nested.Name), nested, false)
	}
	return result
}

// Import returns the import with the supplied target
func (u *Unit) Import(path namepath.Path) *Import {
	for _, candidate := range u.Imports {
		if !candidate.OnDemand && !candidate.Static && candidate.Path.Equal(path) {
			return candidate
		}
	}
	return nil
}

// HasImport returns true if a single type import for path exists
func (u *Unit) HasImport(path namepath.Path) bool {
	return u.Import(path) != nil
}

// AddImport appends a single type import unless already present or the type lives in the unit namespace
func (u *Unit) AddImport(path namepath.Path) bool {
	if u.HasImport(path) || path.Parent().Equal(u.Namespace) && path.HasMultipleSegments() {
		return false
	}
	u.Imports = append(u.Imports, &Import{Path: path})
	return true
}

// RemoveImport removes single type import, returns false if it was not present
func (u *Unit) RemoveImport(path namepath.Path) bool {
	for i, candidate := range u.Imports {
		if !candidate.OnDemand && !candidate.Static && candidate.Path.Equal(path) {
			u.Imports = append(u.Imports[:i], u.Imports[i+1:]...)
			return true
		}
	}
	return false
}

// ImportFor returns a single type import whose last segment equals simple name
func (u *Unit) ImportFor(simpleName string) *Import {
	for _, candidate := range u.Imports {
		if !candidate.OnDemand && !candidate.Static && candidate.Path.LastSegment() == simpleName {
			return candidate
		}
	}
	return nil
}

// OnDemandImports returns the namespaces imported with a wildcard
func (u *Unit) OnDemandImports() []namepath.Path {
	var result []namepath.Path
	for _, candidate := range u.Imports {
		if candidate.OnDemand && !candidate.Static {
			result = append(result, candidate.Path)
		}
	}
	return result
}

// SetHash records content hash of the unit as read from storage
func (u *Unit) SetHash(hash uint64) {
	u.hash = hash
}

// Hash returns content hash recorded when the unit was read
func (u *Unit) Hash() uint64 {
	return u.hash
}
