package java

import (
	"strings"

	"github.com/viant/unify/source"
)

// DefaultIndent used by the emitter
const DefaultIndent = "    "

// Emitter renders a source unit back to Java text
type Emitter struct {
	Indent string
}

// NewEmitter creates an emitter with default indentation
func NewEmitter() *Emitter {
	return &Emitter{Indent: DefaultIndent}
}

// Emit renders unit
func (e *Emitter) Emit(unit *source.Unit) ([]byte, error) {
	builder := &strings.Builder{}
	if unit.Header != "" {
		builder.WriteString(unit.Header)
		builder.WriteString("\n")
	}
	if !unit.Namespace.IsZero() {
		builder.WriteString("package ")
		builder.WriteString(unit.Namespace.String())
		builder.WriteString(";\n\n")
	}
	if len(unit.Imports) > 0 {
		for _, anImport := range unit.Imports {
			builder.WriteString("import ")
			if anImport.Static {
				builder.WriteString("static ")
			}
			builder.WriteString(anImport.String())
			builder.WriteString(";\n")
		}
		builder.WriteString("\n")
	}
	for i, decl := range unit.Types {
		if i > 0 {
			builder.WriteString("\n")
		}
		e.emitDeclaration(builder, decl, 0)
	}
	return []byte(builder.String()), nil
}

func (e *Emitter) indent(depth int) string {
	indent := e.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	return strings.Repeat(indent, depth)
}

func (e *Emitter) emitDoc(builder *strings.Builder, doc string, depth int) {
	if doc == "" {
		return
	}
	builder.WriteString(reindent(doc, e.indent(depth)))
	builder.WriteString("\n")
}

func (e *Emitter) emitDeclaration(builder *strings.Builder, decl *source.Declaration, depth int) {
	indent := e.indent(depth)
	e.emitDoc(builder, decl.Doc, depth)
	if decl.Raw != "" {
		builder.WriteString(indent)
		builder.WriteString(decl.Raw)
		builder.WriteString("\n")
		return
	}
	e.emitAnnotations(builder, decl.Modifiers, indent)
	builder.WriteString(indent)
	writeKeywords(builder, decl.Modifiers)
	builder.WriteString(string(decl.Kind))
	builder.WriteString(" ")
	builder.WriteString(decl.Name)
	builder.WriteString(decl.TypeParams)
	if decl.SuperType != "" && decl.IsClass() {
		builder.WriteString(" extends ")
		builder.WriteString(decl.SuperType)
	}
	if len(decl.SuperInterfaces) > 0 {
		if decl.IsInterface() {
			builder.WriteString(" extends ")
		} else {
			builder.WriteString(" implements ")
		}
		builder.WriteString(strings.Join(decl.SuperInterfaces, ", "))
	}
	builder.WriteString(" {\n")

	memberIndent := e.indent(depth + 1)
	sections := 0
	if len(decl.Fields) > 0 {
		for _, field := range decl.Fields {
			e.emitField(builder, field, depth+1)
		}
		sections++
	}
	for _, block := range decl.Blocks {
		if sections > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(memberIndent)
		builder.WriteString(block)
		builder.WriteString("\n")
		sections++
	}
	for _, method := range decl.Methods {
		if sections > 0 {
			builder.WriteString("\n")
		}
		e.emitMethod(builder, method, depth+1)
		sections++
	}
	for _, nested := range decl.Types {
		if sections > 0 {
			builder.WriteString("\n")
		}
		e.emitDeclaration(builder, nested, depth+1)
		sections++
	}
	builder.WriteString(indent)
	builder.WriteString("}\n")
}

func (e *Emitter) emitAnnotations(builder *strings.Builder, modifiers source.Modifiers, indent string) {
	for _, annotation := range modifiers.Annotations {
		builder.WriteString(indent)
		builder.WriteString(annotation)
		builder.WriteString("\n")
	}
}

func (e *Emitter) emitField(builder *strings.Builder, field *source.Field, depth int) {
	indent := e.indent(depth)
	e.emitDoc(builder, field.Doc, depth)
	e.emitAnnotations(builder, field.Modifiers, indent)
	builder.WriteString(indent)
	writeKeywords(builder, field.Modifiers)
	builder.WriteString(field.Type)
	builder.WriteString(" ")
	builder.WriteString(field.Name)
	if field.Init != "" {
		builder.WriteString(" = ")
		builder.WriteString(field.Init)
	}
	builder.WriteString(";\n")
}

func (e *Emitter) emitMethod(builder *strings.Builder, method *source.Method, depth int) {
	indent := e.indent(depth)
	e.emitDoc(builder, method.Doc, depth)
	e.emitAnnotations(builder, method.Modifiers, indent)
	builder.WriteString(indent)
	writeKeywords(builder, method.Modifiers)
	if method.TypeParams != "" {
		builder.WriteString(method.TypeParams)
		builder.WriteString(" ")
	}
	if !method.Constructor {
		builder.WriteString(method.Result)
		builder.WriteString(" ")
	}
	builder.WriteString(method.Name)
	builder.WriteString("(")
	for i, param := range method.Parameters {
		if i > 0 {
			builder.WriteString(", ")
		}
		if param.Modifiers != "" {
			builder.WriteString(param.Modifiers)
			builder.WriteString(" ")
		}
		builder.WriteString(param.Type)
		if param.Variadic {
			builder.WriteString("...")
		}
		builder.WriteString(" ")
		builder.WriteString(param.Name)
	}
	builder.WriteString(")")
	if len(method.Throws) > 0 {
		builder.WriteString(" throws ")
		builder.WriteString(strings.Join(method.Throws, ", "))
	}
	if method.Body == "" {
		builder.WriteString(";\n")
		return
	}
	builder.WriteString(" ")
	builder.WriteString(method.Body)
	builder.WriteString("\n")
}

func writeKeywords(builder *strings.Builder, modifiers source.Modifiers) {
	if modifiers.Visibility != source.Package {
		builder.WriteString(string(modifiers.Visibility))
		builder.WriteString(" ")
	}
	if modifiers.Abstract {
		builder.WriteString("abstract ")
	}
	if modifiers.Static {
		builder.WriteString("static ")
	}
	if modifiers.Final {
		builder.WriteString("final ")
	}
	for _, keyword := range modifiers.Other {
		builder.WriteString(keyword)
		builder.WriteString(" ")
	}
}

// Block formats a method body whose method is emitted at depth
func (e *Emitter) Block(depth int, statements ...string) string {
	builder := &strings.Builder{}
	builder.WriteString("{\n")
	for _, statement := range statements {
		builder.WriteString(e.indent(depth + 1))
		builder.WriteString(statement)
		builder.WriteString("\n")
	}
	builder.WriteString(e.indent(depth))
	builder.WriteString("}")
	return builder.String()
}
