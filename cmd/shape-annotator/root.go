package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-annotator/internal/annotate"
	"github.com/ironsheep/shape-annotator/internal/config"
	"github.com/ironsheep/shape-annotator/internal/vision"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "shape-annotator",
		Short:         "Find, classify and label the shapes in an image",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend,
		"vision backend (env SHAPES_BACKEND)")

	root.AddCommand(
		newAnnotateCmd(cfg),
		newServeCmd(cfg),
		newVersionCmd(),
	)
	return root
}

// openPipeline builds a pipeline on the configured backend. Per-region
// debug output goes to the standard logger when debug logging is on.
func openPipeline(cfg *config.Config) (*annotate.Pipeline, error) {
	backend, err := vision.Open(cfg.Backend)
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	if cfg.Debug() {
		logger = log.Default()
	}
	return annotate.NewPipeline(backend, logger), nil
}
