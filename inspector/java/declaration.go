package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// parsePackageDeclaration extracts the package name from a Java source file
func parsePackageDeclaration(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			return child.Content(src)
		}
	}
	return ""
}

// parseImportDeclaration extracts an import table entry
func parseImportDeclaration(node *sitter.Node, src []byte) *source.Import {
	anImport := &source.Import{}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "static":
			anImport.Static = true
		case "asterisk":
			anImport.OnDemand = true
		case "scoped_identifier", "identifier":
			anImport.Path = namepath.Parse(child.Content(src))
		}
	}
	if anImport.Path.IsZero() {
		return nil
	}
	return anImport
}

// parseTypeDeclaration extracts a class or interface; other kinds are carried verbatim
func parseTypeDeclaration(node *sitter.Node, src []byte) *source.Declaration {
	decl := &source.Declaration{}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		decl.Name = nameNode.Content(src)
	}
	switch node.Type() {
	case "class_declaration":
		decl.Kind = source.KindClass
	case "interface_declaration":
		decl.Kind = source.KindInterface
	case "enum_declaration":
		decl.Kind = source.KindEnum
		decl.Raw = node.Content(src)
		return decl
	case "record_declaration":
		decl.Kind = source.KindRecord
		decl.Raw = node.Content(src)
		return decl
	default:
		decl.Kind = source.KindAnnotation
		decl.Raw = node.Content(src)
		return decl
	}
	decl.Modifiers = parseModifiers(modifiersNode(node), src)
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		decl.TypeParams = typeParams.Content(src)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "superclass":
			if child.NamedChildCount() > 0 {
				decl.SuperType = child.NamedChild(0).Content(src)
			}
		case "super_interfaces", "extends_interfaces":
			decl.SuperInterfaces = append(decl.SuperInterfaces, parseTypeList(child, src)...)
		}
	}
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		parseBody(decl, bodyNode, src)
	}
	return decl
}

func parseTypeList(node *sitter.Node, src []byte) []string {
	var result []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "type_list" {
			return parseTypeList(child, src)
		}
		result = append(result, child.Content(src))
	}
	return result
}

// parseBody extracts members of a class or interface body
func parseBody(decl *source.Declaration, bodyNode *sitter.Node, src []byte) {
	var pending []string
	for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
		child := bodyNode.NamedChild(i)
		doc := joinLines(pending)
		switch child.Type() {
		case "line_comment", "block_comment", "comment":
			pending = append(pending, child.Content(src))
			continue
		case "field_declaration", "constant_declaration":
			for _, field := range parseFieldDeclaration(child, src) {
				field.Doc, doc = doc, ""
				decl.Fields = append(decl.Fields, field)
			}
		case "method_declaration", "constructor_declaration":
			method := parseMethodDeclaration(child, src)
			method.Doc = doc
			decl.Methods = append(decl.Methods, method)
		case "class_declaration", "interface_declaration", "enum_declaration",
			"annotation_type_declaration", "record_declaration":
			nested := parseTypeDeclaration(child, src)
			nested.Doc = doc
			decl.Types = append(decl.Types, nested)
		default:
			block := child.Content(src)
			if doc != "" {
				block = doc + "\n" + block
			}
			decl.Blocks = append(decl.Blocks, block)
		}
		pending = nil
	}
}

// parseFieldDeclaration splits a field declaration into one field per declarator
func parseFieldDeclaration(node *sitter.Node, src []byte) []*source.Field {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	modifiers := parseModifiers(modifiersNode(node), src)
	var fields []*source.Field
	for i := 0; i < int(node.NamedChildCount()); i++ {
		declarator := node.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		field := &source.Field{
			Modifiers: modifiers,
			Type:      typeNode.Content(src),
			Name:      nameNode.Content(src),
		}
		if dimensions := declarator.ChildByFieldName("dimensions"); dimensions != nil {
			field.Type += dimensions.Content(src)
		}
		if value := declarator.ChildByFieldName("value"); value != nil {
			field.Init = value.Content(src)
		}
		fields = append(fields, field)
	}
	return fields
}

// parseMethodDeclaration extracts method or constructor information
func parseMethodDeclaration(node *sitter.Node, src []byte) *source.Method {
	method := &source.Method{
		Constructor: node.Type() == "constructor_declaration",
		Modifiers:   parseModifiers(modifiersNode(node), src),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		method.Name = nameNode.Content(src)
	}
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		method.TypeParams = typeParams.Content(src)
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		method.Result = typeNode.Content(src)
		if dimensions := node.ChildByFieldName("dimensions"); dimensions != nil {
			method.Result += dimensions.Content(src)
		}
	}
	if parametersNode := node.ChildByFieldName("parameters"); parametersNode != nil {
		method.Parameters = parseParameters(parametersNode, src)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "throws" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				method.Throws = append(method.Throws, child.NamedChild(j).Content(src))
			}
		}
	}
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		method.Body = bodyNode.Content(src)
	}
	return method
}

// parseParameters extracts formal and variadic parameters
func parseParameters(node *sitter.Node, src []byte) []*source.Parameter {
	var params []*source.Parameter
	for i := 0; i < int(node.NamedChildCount()); i++ {
		paramNode := node.NamedChild(i)
		switch paramNode.Type() {
		case "formal_parameter":
			param := &source.Parameter{}
			if typeNode := paramNode.ChildByFieldName("type"); typeNode != nil {
				param.Type = typeNode.Content(src)
			}
			if nameNode := paramNode.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(src)
			}
			if dimensions := paramNode.ChildByFieldName("dimensions"); dimensions != nil {
				param.Type += dimensions.Content(src)
			}
			if mods := modifiersNode(paramNode); mods != nil {
				param.Modifiers = mods.Content(src)
			}
			params = append(params, param)
		case "spread_parameter":
			param := &source.Parameter{Variadic: true}
			for j := 0; j < int(paramNode.NamedChildCount()); j++ {
				child := paramNode.NamedChild(j)
				switch child.Type() {
				case "modifiers":
					param.Modifiers = child.Content(src)
				case "variable_declarator":
					if nameNode := child.ChildByFieldName("name"); nameNode != nil {
						param.Name = nameNode.Content(src)
					}
				default:
					if param.Type == "" {
						param.Type = child.Content(src)
					}
				}
			}
			params = append(params, param)
		}
	}
	return params
}

func modifiersNode(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "modifiers" {
			return child
		}
	}
	return nil
}

// parseModifiers extracts visibility, flags and annotations
func parseModifiers(node *sitter.Node, src []byte) source.Modifiers {
	modifiers := source.Modifiers{}
	if node == nil {
		return modifiers
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "marker_annotation", "annotation":
			modifiers.Annotations = append(modifiers.Annotations, child.Content(src))
		case "public":
			modifiers.Visibility = source.Public
		case "protected":
			modifiers.Visibility = source.Protected
		case "private":
			modifiers.Visibility = source.Private
		case "static":
			modifiers.Static = true
		case "final":
			modifiers.Final = true
		case "abstract":
			modifiers.Abstract = true
		case "line_comment", "block_comment", "comment":
		default:
			if keyword := strings.TrimSpace(child.Content(src)); keyword != "" {
				modifiers.Other = append(modifiers.Other, keyword)
			}
		}
	}
	return modifiers
}
