package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/repository"
	"github.com/viant/unify/source"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the declaration tree of a source unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}

type declarationView struct {
	Kind            string             `yaml:"kind"`
	Name            string             `yaml:"name"`
	Doc             string             `yaml:"doc,omitempty"`
	SuperType       string             `yaml:"superType,omitempty"`
	SuperInterfaces []string           `yaml:"superInterfaces,omitempty"`
	Fields          []string           `yaml:"fields,omitempty"`
	Methods         []string           `yaml:"methods,omitempty"`
	Types           []*declarationView `yaml:"types,omitempty"`
}

type unitView struct {
	Identity string             `yaml:"identity"`
	Imports  []string           `yaml:"imports,omitempty"`
	Types    []*declarationView `yaml:"types"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	URL, err := location(args[0])
	if err != nil {
		return err
	}
	unit, err := repository.NewWorkspace(afs.New(), "", logger).Read(ctx, URL)
	if err != nil {
		return err
	}
	view := &unitView{Identity: unit.Identity()}
	for _, anImport := range unit.Imports {
		imported := anImport.String()
		if anImport.Static {
			imported = "static " + imported
		}
		view.Imports = append(view.Imports, imported)
	}
	for _, decl := range unit.Types {
		view.Types = append(view.Types, newDeclarationView(decl))
	}
	encoded, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(encoded))
	return nil
}

func newDeclarationView(decl *source.Declaration) *declarationView {
	view := &declarationView{
		Kind:            string(decl.Kind),
		Name:            decl.Name,
		Doc:             java.CleanComment(decl.Doc),
		SuperType:       decl.SuperType,
		SuperInterfaces: decl.SuperInterfaces,
	}
	for _, field := range decl.Fields {
		view.Fields = append(view.Fields, field.Type+" "+field.Name)
	}
	for _, method := range decl.Methods {
		view.Methods = append(view.Methods, method.Signature())
	}
	for _, nested := range decl.Types {
		view.Types = append(view.Types, newDeclarationView(nested))
	}
	return view
}
