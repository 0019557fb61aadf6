package refactor

import (
	"fmt"
	"sync"

	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// EditKind classifies an edit
type EditKind string

const (
	EditIdentity  EditKind = "identity"
	EditImport    EditKind = "import"
	EditReference EditKind = "reference"
)

// Edit is a single computed modification of a unit
type Edit struct {
	Unit   *source.Unit
	Kind   EditKind
	Before string
	After  string
	apply  func()
}

// Change holds every edit computed for an operation
type Change struct {
	Operation Operation
	From      namepath.Path
	To        namepath.Path
	Unit      *source.Unit // unit whose identity changes
	// PreviousIdentity is the identity of Unit before the change, used to remove the stale file
	PreviousIdentity string
	Edits            []*Edit
	applied          bool
}

// Attempt validates op against units and computes the full set of dependent edits; units are not modified
func Attempt(op Operation, units []*source.Unit) (*Change, error) {
	unit := lookup(units, op.Target())
	if unit == nil {
		return nil, invalid(op, "declaration %v not found", op.Target())
	}
	if err := validate(op, unit, units); err != nil {
		return nil, err
	}
	change := &Change{
		Operation:        op,
		From:             op.Target(),
		To:               op.Destination(),
		Unit:             unit,
		PreviousIdentity: unit.Identity(),
	}
	for _, candidate := range units {
		if err := change.computeReferences(candidate); err != nil {
			return nil, err
		}
		change.computeImports(candidate)
	}
	if change.moved() {
		change.computeNamespacePeers(units)
	}
	change.computeIdentity()
	return change, nil
}

// Apply performs all edits; a change is applied at most once
func (c *Change) Apply() {
	if c.applied {
		return
	}
	c.applied = true
	for _, edit := range c.Edits {
		edit.apply()
	}
}

// Units returns distinct units touched by the change
func (c *Change) Units() []*source.Unit {
	var result []*source.Unit
	seen := map[*source.Unit]bool{}
	for _, edit := range c.Edits {
		if !seen[edit.Unit] {
			seen[edit.Unit] = true
			result = append(result, edit.Unit)
		}
	}
	return result
}

func (c *Change) moved() bool {
	return !c.From.Parent().Equal(c.To.Parent())
}

func (c *Change) add(unit *source.Unit, kind EditKind, before, after string, apply func()) {
	c.Edits = append(c.Edits, &Edit{Unit: unit, Kind: kind, Before: before, After: after, apply: apply})
}

// sees returns true if candidate can refer to the target by its simple name
func (c *Change) sees(candidate *source.Unit) bool {
	if candidate == c.Unit || candidate.Namespace.Equal(c.From.Parent()) || candidate.HasImport(c.From) {
		return true
	}
	for _, namespace := range candidate.OnDemandImports() {
		if namespace.Equal(c.From.Parent()) {
			return true
		}
	}
	return false
}

func (c *Change) computeReferences(candidate *source.Unit) error {
	rename := &java.TypeRename{From: c.From, To: c.To, Simple: c.sees(candidate)}
	for _, aFragment := range fragmentsOf(candidate) {
		updated, err := java.RenameType(*aFragment.text, aFragment.kind, rename)
		if err != nil {
			return fmt.Errorf("failed to compute references in %v: %w", candidate.Identity(), err)
		}
		if updated == *aFragment.text {
			continue
		}
		target := aFragment.text
		c.add(candidate, EditReference, *target, updated, func() { *target = updated })
	}
	return nil
}

func (c *Change) computeImports(candidate *source.Unit) {
	for _, anImport := range candidate.Imports {
		if !anImport.Path.HasPrefix(c.From) {
			continue
		}
		updated := c.To
		if anImport.Path.Len() > c.From.Len() {
			updated = c.To.Concat(anImport.Path.TrimPrefix(c.From))
		}
		target := anImport
		c.add(candidate, EditImport, anImport.Path.String(), updated.String(), func() { target.Path = updated })
	}
	if !c.moved() || candidate == c.Unit || candidate.Namespace.Equal(c.To.Parent()) || candidate.HasImport(c.From) {
		return
	}
	// units that saw the type through their namespace or a wildcard need an explicit import
	if c.sees(candidate) && referencesSimple(candidate, c.From.LastSegment()) && candidate.ImportFor(c.From.LastSegment()) == nil {
		c.add(candidate, EditImport, "", c.To.String(), func() { candidate.AddImport(c.To) })
	}
}

// computeNamespacePeers imports former namespace peers the moved unit refers to by simple name
func (c *Change) computeNamespacePeers(units []*source.Unit) {
	for _, peer := range units {
		if peer == c.Unit || !peer.Namespace.Equal(c.From.Parent()) {
			continue
		}
		for _, decl := range peer.Types {
			if decl.Modifiers.Visibility != source.Public {
				continue
			}
			name := peer.Namespace.Append(decl.Name)
			if c.Unit.ImportFor(decl.Name) != nil || !referencesSimple(c.Unit, decl.Name) {
				continue
			}
			c.add(c.Unit, EditImport, "", name.String(), func() { c.Unit.AddImport(name) })
		}
	}
}

func (c *Change) computeIdentity() {
	unit := c.Unit
	root := unit.Root()
	oldName, newName := c.From.LastSegment(), c.To.LastSegment()
	if oldName != newName {
		c.add(unit, EditIdentity, root.Name, newName, func() {
			root.Name = newName
			if unit.BaseName() == oldName {
				unit.Name = newName + source.FileExtension
			}
		})
		for _, ctor := range root.Constructors() {
			constructor := ctor
			c.add(unit, EditIdentity, constructor.Name, newName, func() { constructor.Name = newName })
		}
	}
	if c.moved() {
		namespace := c.To.Parent()
		c.add(unit, EditIdentity, unit.Namespace.String(), namespace.String(), func() { unit.Namespace = namespace })
	}
}

func referencesSimple(unit *source.Unit, name string) bool {
	simple := namepath.New(name)
	for _, aFragment := range fragmentsOf(unit) {
		if java.ReferencesType(*aFragment.text, aFragment.kind, simple) {
			return true
		}
	}
	return false
}

// Refactorer serializes operations; a move changes namespace membership other operations depend on
type Refactorer struct {
	mux sync.Mutex
}

// Perform attempts op and applies the resulting change
func (r *Refactorer) Perform(op Operation, units []*source.Unit) (*Change, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	change, err := Attempt(op, units)
	if err != nil {
		return nil, err
	}
	change.Apply()
	return change, nil
}
