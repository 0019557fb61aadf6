package refactor

import (
	"strings"

	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/source"
)

// fragment points at rewritable text of a declaration
type fragment struct {
	text *string
	kind java.FragmentKind
}

// fragmentsOf returns type references, initializers and bodies of all declarations in unit;
// declarations carried verbatim and initializer blocks are not rewritten
func fragmentsOf(unit *source.Unit) []fragment {
	var result []fragment
	for _, decl := range unit.Types {
		result = appendDeclaration(result, decl)
	}
	return result
}

func appendDeclaration(result []fragment, decl *source.Declaration) []fragment {
	if decl.Raw != "" {
		return result
	}
	result = appendFragment(result, &decl.TypeParams, java.TypeParams)
	result = appendFragment(result, &decl.SuperType, java.TypeRef)
	for i := range decl.SuperInterfaces {
		result = appendFragment(result, &decl.SuperInterfaces[i], java.TypeRef)
	}
	for _, field := range decl.Fields {
		result = appendFragment(result, &field.Type, java.TypeRef)
		result = appendFragment(result, &field.Init, java.Expression)
	}
	for _, method := range decl.Methods {
		result = appendFragment(result, &method.TypeParams, java.TypeParams)
		result = appendFragment(result, &method.Result, java.TypeRef)
		for _, param := range method.Parameters {
			result = appendFragment(result, &param.Type, java.TypeRef)
		}
		for i := range method.Throws {
			result = appendFragment(result, &method.Throws[i], java.TypeRef)
		}
		result = appendFragment(result, &method.Body, java.Block)
	}
	for _, nested := range decl.Types {
		result = appendDeclaration(result, nested)
	}
	return result
}

func appendFragment(result []fragment, text *string, kind java.FragmentKind) []fragment {
	if trimmed := strings.TrimSpace(*text); trimmed == "" || trimmed == "void" {
		return result
	}
	return append(result, fragment{text: text, kind: kind})
}
