// Package commands implements the unify command line interface.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/unify/config"
)

var (
	verbose    bool
	configPath string
	srcURL     string
	logger     *slog.Logger
)

// RootCmd is the root command for unify
var RootCmd = &cobra.Command{
	Use:   "unify",
	Short: "unify - merges origin sources with a generated model layer",
	Long: `unify adapts hand-written origin sources so that they participate in the type
hierarchy of a generated model layer, and adapts the generated layer to compile
against the adapted origin sources.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every rewritten unit")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "unify.yaml", "Path to configuration file")
	RootCmd.PersistentFlags().StringVarP(&srcURL, "src", "s", ".", "Source root URL")
}

// loadConfig reads configuration; a missing default file falls back to defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// location converts a local path into an absolute file location, URLs are returned unchanged
func location(path string) (string, error) {
	if strings.Contains(path, "://") {
		return path, nil
	}
	return filepath.Abs(path)
}
