package java

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

// Accessor names the methods that replace direct access to a field
type Accessor struct {
	Owner  string // qualified name of the declaring class
	Field  string
	Getter string
	Setter string // empty when the field is read only
}

// Scope describes the fields a body can reach
type Scope struct {
	// Members are fields reachable by bare name or through this
	Members map[string]*Accessor
	// Types holds declared types of fields reachable by bare name, encapsulated or not
	Types map[string]string
	// Params holds declared parameter types
	Params map[string]string
	// Selected returns accessors of fields selected through a receiver of the declared type;
	// resolved is false when the type is unknown
	Selected func(typeRef string) (accessors map[string]*Accessor, resolved bool)
	// Known returns true for a field name encapsulated in any class
	Known func(field string) bool
}

// Retention reports a field access left in place
type Retention struct {
	Owner  string // empty when the receiver type is unknown
	Field  string
	Reason string
}

// EncapsulateFields rewrites reads and writes of fields within a method body into accessor calls.
// Bare references shadowed by a parameter or a local declaration are left untouched.
func EncapsulateFields(body string, scope *Scope) (string, []*Retention, error) {
	return encapsulate(body, Block, scope)
}

// EncapsulateInitializer rewrites field reads within a field initializer expression
func EncapsulateInitializer(expr string, scope *Scope) (string, []*Retention, error) {
	return encapsulate(expr, Expression, scope)
}

func encapsulate(text string, kind FragmentKind, scope *Scope) (string, []*Retention, error) {
	if strings.TrimSpace(text) == "" || (len(scope.Members) == 0 && scope.Selected == nil) {
		return text, nil, nil
	}
	root, src, err := parseFragment(text, kind)
	if err != nil {
		return text, nil, err
	}
	e := newEncapsulator(scope)
	walk(root, func(node *sitter.Node) {
		e.collectDeclared(node, src)
	})
	rewritten, err := rewriteFragment(text, kind, e.rule)
	if err != nil {
		return text, nil, err
	}
	return rewritten, e.retained, nil
}

type encapsulator struct {
	scope    *Scope
	locals   map[string]string // parameters and local variables with declared type, empty when unknown
	retained []*Retention
	seen     map[string]bool
}

func newEncapsulator(scope *Scope) *encapsulator {
	e := &encapsulator{scope: scope, locals: map[string]string{}, seen: map[string]bool{}}
	for name, declared := range scope.Params {
		e.locals[name] = declared
	}
	return e
}

func (e *encapsulator) declare(name, declared string) {
	if prev, ok := e.locals[name]; ok && prev != declared {
		declared = ""
	}
	e.locals[name] = declared
}

func (e *encapsulator) collectDeclared(node *sitter.Node, src []byte) {
	switch node.Type() {
	case "variable_declarator":
		name := node.ChildByFieldName("name")
		if name == nil {
			return
		}
		declared := ""
		if parent := node.Parent(); parent != nil {
			if typeNode := parent.ChildByFieldName("type"); typeNode != nil {
				declared = typeNode.Content(src)
			}
		}
		if declared == "var" {
			declared = ""
			if value := node.ChildByFieldName("value"); value != nil && value.Type() == "object_creation_expression" {
				if typeNode := value.ChildByFieldName("type"); typeNode != nil {
					declared = typeNode.Content(src)
				}
			}
		}
		e.declare(name.Content(src), declared)
	case "formal_parameter", "catch_formal_parameter", "enhanced_for_statement", "resource":
		name := node.ChildByFieldName("name")
		if name == nil {
			return
		}
		declared := ""
		if typeNode := node.ChildByFieldName("type"); typeNode != nil && node.Type() != "catch_formal_parameter" {
			declared = typeNode.Content(src)
		}
		e.declare(name.Content(src), declared)
	case "inferred_parameters":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			e.declare(node.NamedChild(i).Content(src), "")
		}
	case "lambda_expression":
		if params := node.ChildByFieldName("parameters"); params != nil && params.Type() == "identifier" {
			e.declare(params.Content(src), "")
		}
	}
}

func (e *encapsulator) retain(owner, field, reason string) {
	key := owner + "#" + field + "#" + reason
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.retained = append(e.retained, &Retention{Owner: owner, Field: field, Reason: reason})
}

func (e *encapsulator) known(field string) bool {
	return e.scope.Known != nil && e.scope.Known(field)
}

// typeOf returns the declared type of an expression or empty when it cannot be told without type inference
func (e *encapsulator) typeOf(node *sitter.Node, r *renderer) string {
	switch node.Type() {
	case "identifier":
		name := r.text(node)
		if declared, ok := e.locals[name]; ok {
			return declared
		}
		return e.scope.Types[name]
	case "parenthesized_expression":
		if node.NamedChildCount() == 1 {
			return e.typeOf(node.NamedChild(0), r)
		}
	case "cast_expression", "object_creation_expression":
		if typeNode := node.ChildByFieldName("type"); typeNode != nil {
			return r.text(typeNode)
		}
	case "array_access":
		if array := node.ChildByFieldName("array"); array != nil {
			declared := strings.Join(strings.Fields(e.typeOf(array, r)), "")
			if strings.HasSuffix(declared, "[]") {
				return strings.TrimSuffix(declared, "[]")
			}
		}
	case "field_access":
		object := node.ChildByFieldName("object")
		field := node.ChildByFieldName("field")
		if object != nil && field != nil && object.Type() == "this" {
			return e.scope.Types[r.text(field)]
		}
	}
	return ""
}

// isTypeName returns true for an identifier that names a type rather than a variable
func (e *encapsulator) isTypeName(node *sitter.Node, r *renderer) bool {
	if node.Type() != "identifier" {
		return false
	}
	name := r.text(node)
	if _, ok := e.locals[name]; ok {
		return false
	}
	if _, ok := e.scope.Types[name]; ok {
		return false
	}
	for _, first := range name {
		return unicode.IsUpper(first)
	}
	return false
}

// fieldReference resolves node to an encapsulated field; receiver prefixes accessor calls
func (e *encapsulator) fieldReference(node *sitter.Node, r *renderer) (accessor *Accessor, receiver string) {
	switch node.Type() {
	case "field_access":
		object := node.ChildByFieldName("object")
		field := node.ChildByFieldName("field")
		if object == nil || field == nil {
			return nil, ""
		}
		name := r.text(field)
		switch object.Type() {
		case "this":
			return e.scope.Members[name], "this."
		case "super":
			return e.scope.Members[name], "super."
		}
		declared := e.typeOf(object, r)
		if declared == "" {
			if e.known(name) && !e.isTypeName(object, r) {
				e.retain("", name, "receiver type of "+r.text(node)+" is unknown")
			}
			return nil, ""
		}
		if e.scope.Selected == nil {
			return nil, ""
		}
		accessors, resolved := e.scope.Selected(declared)
		if !resolved {
			if e.known(name) {
				e.retain("", name, "receiver type "+declared+" of "+r.text(node)+" is unknown")
			}
			return nil, ""
		}
		if accessor = accessors[name]; accessor == nil {
			return nil, ""
		}
		return accessor, r.render(object) + "."
	case "identifier":
		name := r.text(node)
		if _, local := e.locals[name]; local || isMemberName(node) {
			return nil, ""
		}
		return e.scope.Members[name], ""
	case "parenthesized_expression":
		if node.NamedChildCount() == 1 {
			return e.fieldReference(node.NamedChild(0), r)
		}
	}
	return nil, ""
}

// statementContext returns true when the value of node is discarded
func statementContext(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "expression_statement":
		return true
	case "for_statement":
		return !sameNode(parent.ChildByFieldName("condition"), node)
	}
	return false
}

// isWriteTarget returns true for the left side of an assignment or the operand of an update
func isWriteTarget(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "assignment_expression":
		return sameNode(parent.ChildByFieldName("left"), node)
	case "update_expression":
		return true
	}
	return false
}

// writer resolves the written field of an assignment or update, retaining fields that cannot take a setter call
func (e *encapsulator) writer(node, target *sitter.Node, r *renderer) (*Accessor, string) {
	accessor, receiver := e.fieldReference(target, r)
	if accessor == nil {
		return nil, ""
	}
	if accessor.Setter == "" {
		e.retain(accessor.Owner, accessor.Field, r.text(node)+" writes a read only field")
		return nil, ""
	}
	if !statementContext(node) {
		e.retain(accessor.Owner, accessor.Field, r.text(node)+" is used as a value")
		return nil, ""
	}
	return accessor, receiver
}

func (e *encapsulator) rule(node *sitter.Node, r *renderer) (string, bool) {
	switch node.Type() {
	case "assignment_expression":
		left := node.ChildByFieldName("left")
		right := node.ChildByFieldName("right")
		operator := node.ChildByFieldName("operator")
		if left == nil || right == nil || operator == nil {
			return "", false
		}
		accessor, receiver := e.writer(node, left, r)
		if accessor == nil {
			return "", false
		}
		value := r.render(right)
		if op := r.text(operator); op != "=" {
			value = receiver + accessor.Getter + "() " + strings.TrimSuffix(op, "=") + " (" + value + ")"
		}
		return receiver + accessor.Setter + "(" + value + ")", true
	case "update_expression":
		var operand *sitter.Node
		op := ""
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "++":
				op = "+"
			case "--":
				op = "-"
			default:
				if child.IsNamed() {
					operand = child
				}
			}
		}
		if operand == nil || op == "" {
			return "", false
		}
		accessor, receiver := e.writer(node, operand, r)
		if accessor == nil {
			return "", false
		}
		return receiver + accessor.Setter + "(" + receiver + accessor.Getter + "() " + op + " 1)", true
	case "field_access", "identifier":
		if isWriteTarget(node) {
			return "", false
		}
		accessor, receiver := e.fieldReference(node, r)
		if accessor == nil {
			return "", false
		}
		return receiver + accessor.Getter + "()", true
	}
	return "", false
}

// AssignedFields returns the names of fields written by assignment or update expressions within body
func AssignedFields(body string, names []string, params []string) (map[string]bool, error) {
	result := map[string]bool{}
	if len(names) == 0 || strings.TrimSpace(body) == "" {
		return result, nil
	}
	root, src, err := parseFragment(body, Block)
	if err != nil {
		return nil, err
	}
	scope := &Scope{Members: map[string]*Accessor{}}
	for _, name := range names {
		scope.Members[name] = &Accessor{Field: name}
	}
	e := newEncapsulator(scope)
	for _, param := range params {
		e.declare(param, "")
	}
	walk(root, func(node *sitter.Node) {
		e.collectDeclared(node, src)
	})
	r := &renderer{src: src}
	walk(root, func(node *sitter.Node) {
		var target *sitter.Node
		switch node.Type() {
		case "assignment_expression":
			target = node.ChildByFieldName("left")
		case "update_expression":
			for i := 0; i < int(node.NamedChildCount()); i++ {
				target = node.NamedChild(i)
			}
		}
		if target == nil {
			return
		}
		if accessor, _ := e.fieldReference(target, r); accessor != nil {
			result[accessor.Field] = true
		}
	})
	return result, nil
}
