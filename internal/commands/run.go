package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/unify/metamodel"
	"github.com/viant/unify/pipeline"
	"github.com/viant/unify/repository"
)

var (
	metamodelURL string
	reportURL    string
	notifyURL    string
	dryRun       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all transformation passes",
	Long: `Loads the metamodel and every source unit under --src, runs the passes in order
and writes back changed units.

Example:
  unify run --metamodel model/shapes.yaml --src src/main/java
  unify run -m model/shapes.yaml -s src --report unify-report.yaml --dry-run`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&metamodelURL, "metamodel", "m", "", "Metamodel document URL")
	runCmd.Flags().StringVar(&reportURL, "report", "", "Write YAML report to URL")
	runCmd.Flags().StringVar(&notifyURL, "notify", "", "Touch URL after the run to trigger a rebuild")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not write changed units")
	_ = runCmd.MarkFlagRequired("metamodel")
	RootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fs := afs.New()
	modelLocation, err := location(metamodelURL)
	if err != nil {
		return err
	}
	model, err := metamodel.Load(ctx, fs, modelLocation)
	if err != nil {
		return err
	}
	srcLocation, err := location(srcURL)
	if err != nil {
		return err
	}
	workspace := repository.NewWorkspace(fs, srcLocation, logger)
	units, err := workspace.Load(ctx)
	if err != nil {
		return err
	}
	options := []pipeline.Option{pipeline.WithLogger(logger), pipeline.WithDetector(repository.NewDetector(fs))}
	if !dryRun {
		options = append(options, pipeline.WithFlush(workspace.Flush))
	}
	if notifyURL != "" {
		options = append(options, pipeline.WithRebuildHook(func(ctx context.Context) error {
			return fs.Upload(ctx, notifyURL, 0644, strings.NewReader(time.Now().Format(time.RFC3339)))
		}))
	}
	report, err := pipeline.New(cfg, model, options...).Run(ctx, units)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.String())
	if reportURL == "" {
		return nil
	}
	encoded, err := report.YAML()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err = fs.Upload(ctx, reportURL, 0644, bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("failed to write report %v: %w", reportURL, err)
	}
	return nil
}
