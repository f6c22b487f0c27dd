package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/logging"
	"github.com/ChapterSevenSeeds/triangles/internal/render"
)

type renderOpts struct {
	canvasFlags
	output    string
	stroke    string
	fill      string
	textColor string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render A B C",
		Short: "Draw a triangle as SVG",
		Long:  "Draw a triangle as SVG with side lengths and angles labelled. Writes to stdout unless -o is given.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sides, err := parseSides(args)
			if err != nil {
				return err
			}
			return runRender(cmd, sides, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.stroke, "stroke", "black", "outline color")
	cmd.Flags().StringVar(&opts.fill, "fill", "none", "fill color")
	cmd.Flags().StringVar(&opts.textColor, "text-color", "blue", "label color")
	return cmd
}

func runRender(cmd *cobra.Command, sides geometry.Sides, opts renderOpts) error {
	logger := logging.FromContext(cmd.Context())
	if err := opts.validate(); err != nil {
		return err
	}

	res, err := geometry.Evaluate(sides, opts.canvas(), opts.options())
	if err != nil {
		return err
	}
	if res.Layout == nil {
		return errors.New(render.Describe(res.Classification))
	}

	svg := render.SVG(*res.Layout, opts.canvas(), render.WithStroke(opts.stroke), render.WithFill(opts.fill),
		render.WithTextColor(opts.textColor))
	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(svg)
		return err
	}

	if err := os.WriteFile(opts.output, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	logger.Debug("rendered", "orientation", res.Layout.Orientation, "bytes", len(svg))
	printSuccess(cmd.OutOrStdout(), "Wrote %s", opts.output)
	return nil
}
