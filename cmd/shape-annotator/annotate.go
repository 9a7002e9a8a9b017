package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-annotator/internal/annotate"
	"github.com/ironsheep/shape-annotator/internal/config"
	"github.com/ironsheep/shape-annotator/internal/imageio"
	"github.com/ironsheep/shape-annotator/internal/verify"
)

type annotateOptions struct {
	Output string
	JSON   bool
	Verify bool
}

// annotateReport is the --json output.
type annotateReport struct {
	RunID    string            `json:"run_id"`
	Input    string            `json:"input"`
	Output   string            `json:"output"`
	Backend  string            `json:"backend"`
	Contours int               `json:"contours"`
	Skipped  int               `json:"skipped"`
	Regions  []annotate.Region `json:"regions"`
	Verify   *verify.Report    `json:"verify,omitempty"`
}

func newAnnotateCmd(cfg *config.Config) *cobra.Command {
	var opts annotateOptions

	cmd := &cobra.Command{
		Use:   "annotate <image>",
		Short: "Draw a labelled box around every closed shape in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd.OutOrStdout(), cfg, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output path (default: input name with the configured suffix)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the regions as JSON")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Read the drawn labels back with OCR (needs an ocr build)")
	return cmd
}

func runAnnotate(w io.Writer, cfg *config.Config, input string, opts annotateOptions) error {
	pipeline, err := openPipeline(cfg)
	if err != nil {
		return err
	}

	src, err := imageio.Open(input)
	if err != nil {
		return err
	}

	res, err := pipeline.Process(src)
	if err != nil {
		return fmt.Errorf("annotate %s: %w", input, err)
	}

	output := opts.Output
	if output == "" {
		output = imageio.OutputPath(input, cfg.OutputSuffix)
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return errors.New("output path must differ from the input")
	}
	if err := imageio.Save(res.Image, output); err != nil {
		return err
	}

	report := &annotateReport{
		RunID:    uuid.New().String(),
		Input:    input,
		Output:   output,
		Backend:  pipeline.Backend().Name(),
		Contours: res.Contours,
		Skipped:  res.Skipped,
		Regions:  res.Regions,
	}

	if opts.Verify {
		reader, err := verify.NewReader()
		if err != nil {
			return err
		}
		if report.Verify, err = verify.CheckLabels(reader, res.Image, res.Regions); err != nil {
			return err
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(w, report)
}

func printReport(w io.Writer, r *annotateReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tLABEL\tBOX\tSAMPLE (B,G,R)\tVERTICES")
	fmt.Fprintln(tw, "-----\t-----\t---\t--------------\t--------")
	for _, region := range r.Regions {
		fmt.Fprintf(tw, "%d\t%s\t%v\t%v\t%d\n",
			region.Index, region.Label, region.Box.Rect(), region.Sample, region.Vertices())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nWrote %s (%d regions, %d skipped)\n", r.Output, len(r.Regions), r.Skipped)
	if r.Verify != nil {
		fmt.Fprintf(w, "Labels verified: %d/%d\n", r.Verify.Matched, r.Verify.Total)
		for _, c := range r.Verify.Checks {
			if !c.Match {
				fmt.Fprintf(w, "  region %d: expected %q, read %q\n", c.Index, c.Expected, c.Read)
			}
		}
	}
	return nil
}
