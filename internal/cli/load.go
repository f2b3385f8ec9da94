package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/angraph/angraph/pkg/entity"
	"github.com/angraph/angraph/pkg/errors"
	"github.com/angraph/angraph/pkg/graphstore"
	"github.com/angraph/angraph/pkg/loader"
)

// loadOpts holds the command-line flags for the load command.
type loadOpts struct {
	file   string // input document path
	config string // optional TOML config file
	clear  bool   // wipe the graph before loading
}

// newLoadCmd creates the load command.
func newLoadCmd() *cobra.Command {
	opts := loadOpts{file: defaultInputFile}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load parsed Angular entities into Neo4j",
		Long: `Load the parsed-source JSON document into the Neo4j property graph.

Nodes are merged first, keyed by their business id, then DEFINED_IN
containment edges and explicitly declared relationships. Unresolvable
relationship targets become placeholder nodes. Malformed records are
skipped with a warning; the load continues.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runLoad(c.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", opts.file, "path to the parsed-source JSON document")
	cmd.Flags().StringVar(&opts.config, "config", "", "optional TOML config file for store settings")
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "clear the Neo4j database before loading")

	return cmd
}

func runLoad(ctx context.Context, opts loadOpts) error {
	logger := loggerFromContext(ctx).With("run", shortRunID())

	cfg, err := graphstore.LoadConfig(opts.config)
	if err != nil {
		return err
	}

	doc, err := entity.ReadFile(opts.file)
	if err != nil {
		code := errors.ErrCodeInvalidInput
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrCodeFileNotFound
		}
		return errors.Wrap(code, err, "read parsed data file %s", opts.file)
	}

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

	// Best-effort: restricted users may not be allowed to manage schema.
	if err := graphstore.EnsureConstraints(ctx, sess); err != nil {
		logger.Warnf("ensure constraints: %v", err)
	}

	if opts.clear {
		logger.Info("clearing existing database")
		if err := graphstore.Clear(ctx, sess); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	stats := loader.New(sess, logger).Load(ctx, doc)
	prog.done(fmt.Sprintf("Merged %d nodes and %d relationships",
		stats.NodesMerged, stats.ExplicitEdges+stats.DefinedInEdges))

	printSuccess("loaded %s (%d nodes, %d relationships, %d errors)",
		opts.file, stats.NodesMerged, stats.ExplicitEdges+stats.DefinedInEdges, stats.QueryErrors)
	return nil
}
