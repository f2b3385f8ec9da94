package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/angraph/angraph/pkg/exporter"
	"github.com/angraph/angraph/pkg/graphstore"
	"github.com/angraph/angraph/pkg/output"
	"github.com/angraph/angraph/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	out    string // output directory
	config string // optional TOML config file
	viz    bool   // additionally render a DOT/SVG diagram
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	opts := exportOpts{out: defaultOutputDir}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph schema and contents to JSON",
		Long: `Export the graph to four JSON artifacts: the architecture summary
(distinct node and relationship types with inferred property types), the
full data model (every node and relationship), and an inferred JSON Schema
for each. A failed artifact is logged; the rest are still written.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory for export artifacts")
	cmd.Flags().StringVar(&opts.config, "config", "", "optional TOML config file for store settings")
	cmd.Flags().BoolVar(&opts.viz, "viz", false, "also write a DOT and SVG diagram of the architecture summary")

	return cmd
}

func runExport(ctx context.Context, opts exportOpts) error {
	logger := loggerFromContext(ctx).With("run", shortRunID())

	cfg, err := graphstore.LoadConfig(opts.config)
	if err != nil {
		return err
	}

	// Probe the output location before touching the store: an unwritable
	// directory aborts the whole run.
	dir, err := output.Prepare(opts.out)
	if err != nil {
		return err
	}
	logger.Infof("output directory: %s", dir.Path)

	logger.Infof("connecting to %s", cfg.Redacted())
	sp := newSpinnerWithContext(ctx, "connecting to Neo4j")
	sp.Start()
	store, err := graphstore.Connect(ctx, cfg)
	sp.Stop()
	if err != nil {
		printError("could not reach Neo4j at %s", cfg.URI)
		return err
	}
	defer store.Close(ctx)

	sess := store.Session(ctx)
	defer sess.Close(ctx)

	prog := newProgress(logger)
	exp := exporter.New(sess, dir, logger)
	arch := exp.ExportArchitecture(ctx)
	model := exp.ExportDataModel(ctx)
	prog.done("Export complete")

	if opts.viz {
		writeDiagram(ctx, dir, arch, logger)
	}

	printSuccess("exported %d nodes and %d relationships to %s",
		len(model.Nodes), len(model.Relationships), dir.Path)
	return nil
}

// writeDiagram renders the architecture summary as DOT and SVG. Failures
// are logged and do not fail the export.
func writeDiagram(ctx context.Context, dir *output.Dir, arch *exporter.ArchitectureDoc, logger interface {
	Errorf(string, ...any)
	Infof(string, ...any)
}) {
	dot := render.ToDOT(arch)
	if err := dir.WriteBytes(output.FileArchitectureDOT, []byte(dot)); err != nil {
		logger.Errorf("write %s: %v", output.FileArchitectureDOT, err)
		return
	}
	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		logger.Errorf("render architecture diagram: %v", err)
		return
	}
	if err := dir.WriteBytes(output.FileArchitectureSVG, svg); err != nil {
		logger.Errorf("write %s: %v", output.FileArchitectureSVG, err)
		return
	}
	logger.Infof("wrote architecture diagram to %s", dir.Join(output.FileArchitectureSVG))
}
