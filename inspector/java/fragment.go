package java

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// FragmentKind identifies how a code fragment is framed for parsing
type FragmentKind int

const (
	// Block is a method or constructor body including braces
	Block FragmentKind = iota
	// Expression is a field initializer
	Expression
	// TypeRef is a type reference such as List<Circle>
	TypeRef
	// TypeParams is a type parameter list such as <T extends Shape>
	TypeParams
)

var frames = map[FragmentKind][2]string{
	Block:      {"class __UnifyFragment__ { void __fragment__() ", " }"},
	Expression: {"class __UnifyFragment__ { Object __fragment__ = ", "; }"},
	TypeRef:    {"class __UnifyFragment__ { ", " __fragment__; }"},
	TypeParams: {"class __UnifyFragment__", " {}"},
}

// rule returns replacement text for a node, r renders sub nodes
type rule func(node *sitter.Node, r *renderer) (string, bool)

type renderer struct {
	src  []byte
	rule rule
}

// render returns node text with rule replacements applied bottom up
func (r *renderer) render(node *sitter.Node) string {
	if replacement, ok := r.rule(node, r); ok {
		return replacement
	}
	count := int(node.ChildCount())
	if count == 0 {
		return node.Content(r.src)
	}
	builder := &strings.Builder{}
	pos := node.StartByte()
	for i := 0; i < count; i++ {
		child := node.Child(i)
		if child.StartByte() > pos {
			builder.Write(r.src[pos:child.StartByte()])
		}
		builder.WriteString(r.render(child))
		if child.EndByte() > pos {
			pos = child.EndByte()
		}
	}
	if node.EndByte() > pos {
		builder.Write(r.src[pos:node.EndByte()])
	}
	return builder.String()
}

func (r *renderer) text(node *sitter.Node) string {
	return node.Content(r.src)
}

// parseFragment frames text so that it parses as a compilation unit
func parseFragment(text string, kind FragmentKind) (*sitter.Node, []byte, error) {
	frame := frames[kind]
	src := []byte(frame[0] + text + frame[1])
	tree, err := parse(src)
	if err != nil {
		return nil, nil, err
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, nil, fmt.Errorf("failed to parse fragment %q", text)
	}
	return root, src, nil
}

// rewriteFragment applies rule across fragment and strips the frame
func rewriteFragment(text string, kind FragmentKind, aRule rule) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	root, src, err := parseFragment(text, kind)
	if err != nil {
		return text, err
	}
	r := &renderer{src: src, rule: aRule}
	rendered := string(src[:root.StartByte()]) + r.render(root) + string(src[root.EndByte():])
	frame := frames[kind]
	if !strings.HasPrefix(rendered, frame[0]) || !strings.HasSuffix(rendered, frame[1]) {
		return text, fmt.Errorf("fragment frame was altered while rewriting %q", text)
	}
	return rendered[len(frame[0]) : len(rendered)-len(frame[1])], nil
}

// walk visits node and all descendants
func walk(node *sitter.Node, visit func(node *sitter.Node)) {
	visit(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// isMemberName returns true when identifier names a member of another expression or a declaration
func isMemberName(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "field_access":
		return sameNode(parent.ChildByFieldName("field"), node)
	case "method_invocation":
		return sameNode(parent.ChildByFieldName("name"), node)
	case "method_reference":
		return parent.NamedChildCount() > 1 && sameNode(parent.NamedChild(int(parent.NamedChildCount())-1), node)
	case "variable_declarator", "formal_parameter", "catch_formal_parameter", "enhanced_for_statement",
		"resource", "method_declaration", "constructor_declaration", "class_declaration", "interface_declaration",
		"enum_declaration":
		return sameNode(parent.ChildByFieldName("name"), node)
	case "element_value_pair":
		return sameNode(parent.ChildByFieldName("key"), node)
	case "labeled_statement", "break_statement", "continue_statement", "inferred_parameters":
		return true
	case "lambda_expression":
		return sameNode(parent.ChildByFieldName("parameters"), node)
	case "scoped_identifier", "scoped_type_identifier":
		return !sameNode(parent.Child(0), node)
	}
	return false
}
