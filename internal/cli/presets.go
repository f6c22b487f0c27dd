package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/logging"
	"github.com/ChapterSevenSeeds/triangles/internal/presets"
)

func newPresetsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the example triangles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())

			catalog := presets.Default()
			if file != "" {
				var err error
				if catalog, err = presets.LoadFile(file); err != nil {
					return err
				}
				logger.Debug("loaded presets", "file", file, "count", catalog.Len())
			}

			w := cmd.OutOrStdout()
			printTitle(w, "%d presets", catalog.Len())
			for _, p := range catalog.All() {
				s := p.Sides()
				c := geometry.ClassifyWithOptions(s, geometry.Options{})
				class := "invalid"
				if c.Valid {
					class = fmt.Sprintf("%s %s", c.AngleClass, c.SideClass)
				}
				printField(w, p.Name, fmt.Sprintf("%s %s %s  %s",
					formatNumber(s.A), formatNumber(s.B), formatNumber(s.C), class))
				if p.Description != "" {
					printDetail(w, "%s", p.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML preset catalog (default built-in)")
	return cmd
}
