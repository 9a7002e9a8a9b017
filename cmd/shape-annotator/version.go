package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-annotator/internal/vision"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "shape-annotator %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(w, "  Backends:   %v\n", vision.Names())
		},
	}
}
