package source

import (
	"strings"
)

// Kind identifies declaration variant
type Kind string

const (
	KindClass      Kind = "class"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindAnnotation Kind = "annotation"
	KindRecord     Kind = "record"
)

// Visibility represents access level
type Visibility string

const (
	Package   Visibility = ""
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Modifiers holds visibility, flags and annotations
type Modifiers struct {
	Annotations []string // raw annotations, e.g. @Override
	Visibility  Visibility
	Static      bool
	Final       bool
	Abstract    bool
	Other       []string // remaining keywords: synchronized, transient, volatile, default ...
}

// Declaration represents a class or interface (enum and annotation types are carried verbatim in Raw)
type Declaration struct {
	Kind            Kind
	Name            string
	Doc             string // leading comments
	Modifiers       Modifiers
	TypeParams      string   // raw type parameters, e.g. <T extends Shape>
	SuperType       string   // at most one, classes only
	SuperInterfaces []string // implements (class) or extends (interface) list
	Fields          []*Field
	Methods         []*Method
	Types           []*Declaration // nested declarations
	Blocks          []string       // initializer blocks and members carried verbatim
	EnumConstants   string
	Raw             string // verbatim text for declarations that are not rewritten
}

// Field represents a field declaration with a single declarator
type Field struct {
	Doc       string
	Modifiers Modifiers
	Type      string
	Name      string
	Init      string // raw initializer expression
}

// Method represents a method or constructor
type Method struct {
	Doc         string
	Modifiers   Modifiers
	TypeParams  string
	Result      string // empty for constructors
	Name        string
	Parameters  []*Parameter
	Throws      []string
	Body        string // raw block including braces; empty for abstract/interface methods
	Constructor bool
}

// Parameter represents a formal parameter
type Parameter struct {
	Modifiers string // raw, e.g. final or annotations
	Type      string
	Name      string
	Variadic  bool
}

// IsClass returns true for a class declaration
func (d *Declaration) IsClass() bool {
	return d.Kind == KindClass
}

// IsInterface returns true for an interface declaration
func (d *Declaration) IsInterface() bool {
	return d.Kind == KindInterface
}

// Field returns field by name
func (d *Declaration) Field(name string) *Field {
	for _, field := range d.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// AddField appends a field, returns false if a field with the same name exists
func (d *Declaration) AddField(field *Field) bool {
	if d.Field(field.Name) != nil {
		return false
	}
	d.Fields = append(d.Fields, field)
	return true
}

// RemoveField removes a field by name
func (d *Declaration) RemoveField(name string) bool {
	for i, field := range d.Fields {
		if field.Name == name {
			d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// MethodsNamed returns all overloads with supplied name, constructors excluded
func (d *Declaration) MethodsNamed(name string) []*Method {
	var result []*Method
	for _, method := range d.Methods {
		if !method.Constructor && method.Name == name {
			result = append(result, method)
		}
	}
	return result
}

// Method returns a non constructor method matching name and parameter types
func (d *Declaration) Method(name string, paramTypes ...string) *Method {
	for _, method := range d.MethodsNamed(name) {
		if method.HasParameterTypes(paramTypes...) {
			return method
		}
	}
	return nil
}

// AddMethod appends a method
func (d *Declaration) AddMethod(method *Method) {
	d.Methods = append(d.Methods, method)
}

// RemoveMethod removes the supplied method instance
func (d *Declaration) RemoveMethod(method *Method) bool {
	for i, candidate := range d.Methods {
		if candidate == method {
			d.Methods = append(d.Methods[:i], d.Methods[i+1:]...)
			return true
		}
	}
	return false
}

// Constructors returns constructor declarations
func (d *Declaration) Constructors() []*Method {
	var result []*Method
	for _, method := range d.Methods {
		if method.Constructor {
			result = append(result, method)
		}
	}
	return result
}

// HasZeroArgConstructor returns true if an explicit no-arg constructor exists
func (d *Declaration) HasZeroArgConstructor() bool {
	for _, ctor := range d.Constructors() {
		if len(ctor.Parameters) == 0 {
			return true
		}
	}
	return false
}

// Nested returns nested declaration by name
func (d *Declaration) Nested(name string) *Declaration {
	for _, candidate := range d.Types {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// HasParameterTypes compares parameter types ignoring whitespace
func (m *Method) HasParameterTypes(types ...string) bool {
	if len(types) != len(m.Parameters) {
		return false
	}
	for i, param := range m.Parameters {
		if NormalizeType(param.Type) != NormalizeType(types[i]) {
			return false
		}
	}
	return true
}

// Signature returns name with parameter types, e.g. setRadius(double)
func (m *Method) Signature() string {
	var types []string
	for _, param := range m.Parameters {
		paramType := NormalizeType(param.Type)
		if param.Variadic {
			paramType += "..."
		}
		types = append(types, paramType)
	}
	return m.Name + "(" + strings.Join(types, ",") + ")"
}

// NormalizeType removes whitespace from a type reference
func NormalizeType(typeRef string) string {
	return strings.Join(strings.Fields(typeRef), "")
}

// BaseType strips type arguments and array dimensions: java.util.List<Circle>[] -> java.util.List
func BaseType(typeRef string) string {
	typeRef = NormalizeType(typeRef)
	if idx := strings.IndexAny(typeRef, "<["); idx != -1 {
		typeRef = typeRef[:idx]
	}
	return strings.TrimSuffix(typeRef, "...")
}

// Capitalize upper-cases the first letter
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
