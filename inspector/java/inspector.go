package java

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// Inspector parses Java source into source units
type Inspector struct {
	// Strict rejects sources with syntax errors
	Strict bool
}

// NewInspector creates a new Java Inspector
func NewInspector() *Inspector {
	return &Inspector{Strict: true}
}

// InspectSource parses Java source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*source.Unit, error) {
	return i.InspectUnit("", src)
}

// InspectUnit parses Java source code of the supplied file name
func (i *Inspector) InspectUnit(fileName string, src []byte) (*source.Unit, error) {
	tree, err := parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
	}
	rootNode := tree.RootNode()
	if i.Strict && rootNode.HasError() {
		return nil, fmt.Errorf("failed to parse %s: syntax error at %v", fileName, firstError(rootNode))
	}
	unit := i.processJavaFile(rootNode, src)
	unit.Name = fileName
	if unit.Name == "" {
		if root := unit.Root(); root != nil {
			unit.Name = root.Name + source.FileExtension
		}
	}
	if hash, err := source.Hash(src); err == nil {
		unit.SetHash(hash)
	}
	return unit, nil
}

func parse(src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return parser.ParseCtx(context.Background(), nil, src)
}

// processJavaFile extracts package, imports and type declarations
func (i *Inspector) processJavaFile(rootNode *sitter.Node, src []byte) *source.Unit {
	unit := &source.Unit{}
	var pending []string
	for j := 0; j < int(rootNode.NamedChildCount()); j++ {
		childNode := rootNode.NamedChild(j)
		switch childNode.Type() {
		case "line_comment", "block_comment", "comment":
			pending = append(pending, childNode.Content(src))
		case "package_declaration":
			unit.Namespace = namepath.Parse(parsePackageDeclaration(childNode, src))
			unit.Header = joinLines(pending)
			pending = nil
		case "import_declaration":
			if anImport := parseImportDeclaration(childNode, src); anImport != nil {
				unit.Imports = append(unit.Imports, anImport)
			}
			pending = nil
		case "class_declaration", "interface_declaration", "enum_declaration",
			"annotation_type_declaration", "record_declaration":
			decl := parseTypeDeclaration(childNode, src)
			decl.Doc = joinLines(pending)
			pending = nil
			unit.Types = append(unit.Types, decl)
		}
	}
	return unit
}

func firstError(node *sitter.Node) string {
	if node.Type() == "ERROR" || node.IsMissing() {
		return fmt.Sprintf("%v", node.StartPoint())
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstError(child)
		}
	}
	return fmt.Sprintf("%v", node.StartPoint())
}
