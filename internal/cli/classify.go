package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/logging"
	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/ChapterSevenSeeds/triangles/internal/render"
)

// canvasFlags are shared by the commands that lay a triangle out.
type canvasFlags struct {
	maxWidth    int
	canvasWidth int
	tolerance   float64
}

func (f *canvasFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxWidth, "max-width", geometry.DefaultCanvas.MaxTriangleWidth, "width of the longest side in pixels")
	cmd.Flags().IntVar(&f.canvasWidth, "canvas-width", geometry.DefaultCanvas.CanvasWidth, "canvas width and height in pixels")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "epsilon for equality checks (0 compares exactly)")
}

func (f *canvasFlags) canvas() geometry.CanvasParams {
	return geometry.CanvasParams{MaxTriangleWidth: f.maxWidth, CanvasWidth: f.canvasWidth}
}

func (f *canvasFlags) options() geometry.Options {
	return geometry.Options{Tolerance: f.tolerance}
}

// validate rejects flag values geometry.Evaluate would not catch.
func (f *canvasFlags) validate() error {
	if f.tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", f.tolerance)
	}
	return nil
}

type classifyOpts struct {
	canvasFlags
	format string
}

func newClassifyCmd() *cobra.Command {
	var opts classifyOpts

	cmd := &cobra.Command{
		Use:   "classify A B C",
		Short: "Classify a triangle by its sides and angles",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sides, err := parseSides(args)
			if err != nil {
				return err
			}
			return runClassify(cmd, sides, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func runClassify(cmd *cobra.Command, sides geometry.Sides, opts classifyOpts) error {
	logger := logging.FromContext(cmd.Context())
	if err := opts.validate(); err != nil {
		return err
	}

	res, err := geometry.Evaluate(sides, opts.canvas(), opts.options())
	if err != nil {
		return err
	}
	logger.Debug("evaluated", "sides", sides, "valid", res.Classification.Valid)

	resp := newResponse(res)
	w := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		return writeYAML(w, resp)
	case "text":
		printClassification(w, sides, res)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}
}

func newResponse(res geometry.Result) models.TriangleResponse {
	resp := models.TriangleResponse{
		Data:        models.NewTriangleData(res.Classification),
		Description: render.Describe(res.Classification),
	}
	if res.Layout != nil {
		resp.DisplayData = models.NewDisplayData(*res.Layout)
	}
	return resp
}

// writeYAML emits v with the same keys as its JSON form.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func printClassification(w io.Writer, sides geometry.Sides, res geometry.Result) {
	c := res.Classification
	printTitle(w, "Triangle %g, %g, %g", sides.A, sides.B, sides.C)

	if !c.Valid {
		printFailure(w, "%s", render.Describe(c))
		return
	}
	printSuccess(w, "%s", render.Describe(c))

	printField(w, "sides", string(c.SideClass))
	if c.AngleClass == "" {
		printField(w, "angles", styleWarning.Render("unclassified"))
	} else {
		printField(w, "angles", string(c.AngleClass))
	}
	printField(w, "angle A", formatNumber(round2(c.Degrees.A))+"°")
	printField(w, "angle B", formatNumber(round2(c.Degrees.B))+"°")
	printField(w, "angle C", formatNumber(round2(c.Degrees.C))+"°")

	if l := res.Layout; l != nil {
		printField(w, "orientation", string(l.Orientation))
		printDetail(w, "left (%.2f, %.2f)  right (%.2f, %.2f)  top (%.2f, %.2f)",
			l.Left.X, l.Left.Y, l.Right.X, l.Right.Y, l.Top.X, l.Top.Y)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseSides reads three positive finite side lengths.
func parseSides(args []string) (geometry.Sides, error) {
	var v [3]float64
	for i, name := range []string{"A", "B", "C"} {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return geometry.Sides{}, fmt.Errorf("side %s: %q is not a number", name, args[i])
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return geometry.Sides{}, fmt.Errorf("side %s must be a positive finite number, got %s", name, args[i])
		}
		v[i] = f
	}
	return geometry.Sides{A: v[0], B: v[1], C: v[2]}, nil
}
