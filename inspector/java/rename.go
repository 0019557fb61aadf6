package java

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// TypeRename describes a type identity change applied to code fragments
type TypeRename struct {
	From namepath.Path
	To   namepath.Path
	// Simple enables rewriting of unqualified references; set when the fragment can see From by its simple name
	Simple bool
}

// RenameType rewrites references to the renamed type within fragment
func RenameType(text string, kind FragmentKind, rename *TypeRename) (string, error) {
	if rename.From.Equal(rename.To) {
		return text, nil
	}
	return rewriteFragment(text, kind, rename.rule)
}

func (t *TypeRename) rule(node *sitter.Node, r *renderer) (string, bool) {
	switch node.Type() {
	case "scoped_type_identifier", "scoped_identifier", "field_access":
		if source.NormalizeType(r.text(node)) == t.From.String() {
			return t.To.String(), true
		}
	case "type_identifier", "identifier":
		if !t.Simple || r.text(node) != t.From.LastSegment() || isMemberName(node) {
			return "", false
		}
		return t.To.LastSegment(), true
	}
	return "", false
}

// ReferencesType returns true if fragment mentions the type by simple or qualified name
func ReferencesType(text string, kind FragmentKind, name namepath.Path) bool {
	root, src, err := parseFragment(text, kind)
	if err != nil {
		return false
	}
	found := false
	walk(root, func(node *sitter.Node) {
		if found {
			return
		}
		switch node.Type() {
		case "scoped_type_identifier", "scoped_identifier", "field_access":
			found = source.NormalizeType(node.Content(src)) == name.String()
		case "type_identifier", "identifier":
			found = node.Content(src) == name.LastSegment() && !isMemberName(node)
		}
	})
	return found
}
