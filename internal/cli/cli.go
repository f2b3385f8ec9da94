// Package cli implements the angraph command-line interface.
//
// Two commands cover the two pipelines: "load" merges a parsed-source JSON
// document into Neo4j, "export" writes the graph's schema and contents back
// to JSON artifacts. All commands support --verbose (-v) for debug-level
// logging; loggers are passed through context.Context.
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/angraph/angraph/pkg/buildinfo"
)

const (
	// appName is the application name used for display.
	appName = "angraph"

	// defaultOutputDir is the project-standard artifact directory, shared
	// with the upstream parser.
	defaultOutputDir = "output"
)

// defaultInputFile is where the upstream parser drops its output.
var defaultInputFile = filepath.Join(defaultOutputDir, "parsed_angular_data.json")

// Execute runs the angraph CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "angraph loads parsed Angular entities into Neo4j and exports the graph",
		Long:         `angraph ingests the JSON document produced by the Angular source parser into a Neo4j property graph, and exports that graph's schema and full contents back to JSON with inferred JSON Schemas.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLoadCmd())
	root.AddCommand(newExportCmd())

	return root.ExecuteContext(ctx)
}

// shortRunID returns a per-run correlation id for log lines.
func shortRunID() string {
	return uuid.NewString()[:8]
}
