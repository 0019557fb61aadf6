// Package refactor implements identity changing edits (rename, move) of top level declarations.
// An operation is first attempted against the current units, which validates it and computes
// every dependent edit without mutating anything; the returned Change is then applied as a whole.
package refactor

import (
	"fmt"

	"github.com/viant/unify/config"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// Operation changes the identity of a top level declaration
type Operation interface {
	// Target returns the fully qualified name of the declaration
	Target() namepath.Path
	// Destination returns the fully qualified name after the operation
	Destination() namepath.Path
	String() string
}

// Rename changes the simple name of a declaration, its constructors and file name
type Rename struct {
	From    namepath.Path
	NewName string
}

func (r *Rename) Target() namepath.Path { return r.From }

func (r *Rename) Destination() namepath.Path { return r.From.WithLastSegment(r.NewName) }

func (r *Rename) String() string { return fmt.Sprintf("rename %v to %v", r.From, r.NewName) }

// Move relocates a declaration with its unit to another namespace
type Move struct {
	From      namepath.Path
	Namespace namepath.Path
}

func (m *Move) Target() namepath.Path { return m.From }

func (m *Move) Destination() namepath.Path { return m.Namespace.Append(m.From.LastSegment()) }

func (m *Move) String() string { return fmt.Sprintf("move %v to %v", m.From, m.Namespace) }

// ValidationError reports an operation rejected before any edit was computed
type ValidationError struct {
	Operation string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Operation, e.Reason)
}

func invalid(op Operation, format string, args ...interface{}) error {
	return &ValidationError{Operation: op.String(), Reason: fmt.Sprintf(format, args...)}
}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true, "case": true,
	"catch": true, "char": true, "class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true, "extends": true, "final": true,
	"finally": true, "float": true, "for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true, "switch": true, "synchronized": true,
	"this": true, "throw": true, "throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true, "true": true, "false": true, "null": true,
}

func validName(name string) bool {
	return config.IsIdentifier(name) && !keywords[name]
}

// validate checks naming rules and collisions with existing declarations
func validate(op Operation, unit *source.Unit, units []*source.Unit) error {
	from, to := op.Target(), op.Destination()
	if from.Equal(to) {
		return invalid(op, "destination equals current name")
	}
	if !validName(to.LastSegment()) {
		return invalid(op, "%q is not a valid type name", to.LastSegment())
	}
	for _, segment := range to.Parent().Segments() {
		if !validName(segment) {
			return invalid(op, "%q is not a valid namespace segment", segment)
		}
	}
	if !to.HasMultipleSegments() {
		return invalid(op, "destination namespace is empty")
	}
	if len(unit.Types) > 1 && !from.Parent().Equal(to.Parent()) {
		// units with secondary top level types are only renamed in place
		return invalid(op, "%v declares %d top level types", unit.Identity(), len(unit.Types))
	}
	for _, candidate := range units {
		if candidate == unit || !candidate.Namespace.Equal(to.Parent()) {
			continue
		}
		if candidate.BaseName() == to.LastSegment() || candidate.Declaration(to.LastSegment()) != nil {
			return invalid(op, "%v already declared in %v", to, candidate.Identity())
		}
	}
	if from.Parent().Equal(to.Parent()) && unit.Declaration(to.LastSegment()) != nil {
		return invalid(op, "%v already declared in %v", to, unit.Identity())
	}
	return nil
}

// lookup returns the unit whose root declaration has the supplied fully qualified name
func lookup(units []*source.Unit, name namepath.Path) *source.Unit {
	for _, unit := range units {
		if unit.Root() != nil && unit.FullName().Equal(name) {
			return unit
		}
	}
	return nil
}
