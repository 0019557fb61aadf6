package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/refactor"
	"github.com/viant/unify/repository"
)

var renameCmd = &cobra.Command{
	Use:   "rename <type> <newName>",
	Short: "Rename a top level type and every reference to it",
	Long: `Example:
  unify rename model.shapes.ShapesFactory ShapesFactoryGen --src src`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return perform(cmd, &refactor.Rename{From: namepath.Parse(args[0]), NewName: args[1]})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <type> <namespace>",
	Short: "Move a top level type to another namespace",
	Long: `Example:
  unify move shapes.Circle figures --src src`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return perform(cmd, &refactor.Move{From: namepath.Parse(args[0]), Namespace: namepath.Parse(args[1])})
	},
}

func init() {
	RootCmd.AddCommand(renameCmd)
	RootCmd.AddCommand(moveCmd)
}

func perform(cmd *cobra.Command, op refactor.Operation) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	srcLocation, err := location(srcURL)
	if err != nil {
		return err
	}
	workspace := repository.NewWorkspace(afs.New(), srcLocation, logger)
	units, err := workspace.Load(ctx)
	if err != nil {
		return err
	}
	change, err := (&refactor.Refactorer{}).Perform(op, units)
	if err != nil {
		return err
	}
	result, err := workspace.Flush(ctx, change.Units())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%v: %d edits in %d units\n", op, len(change.Edits), len(change.Units()))
	for _, URL := range result.Written {
		fmt.Fprintf(out, "  written %s\n", URL)
	}
	for _, URL := range result.Deleted {
		fmt.Fprintf(out, "  deleted %s\n", URL)
	}
	return nil
}
