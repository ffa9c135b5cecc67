package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/engine/texture"
)

var infoCmd = &cobra.Command{
	Use:   "info <heightmap>",
	Short: "Show terrain grid, patch and bounds information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, img, err := loadTerrain(args[0])
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), args[0], img, t)
		return nil
	},
}

func printInfo(w io.Writer, path string, img *texture.Image, t *terrain.Terrain) {
	grid := t.PatchGrid()
	size := t.Size()
	b := t.Bounds()
	spacing := t.Spacing()

	fmt.Fprintf(w, "Heightmap:  %s (%dx%d, %d components)\n", path, img.Width, img.Height, img.Components)
	fmt.Fprintf(w, "Used:       %dx%d samples\n", size.X, size.Z)
	fmt.Fprintf(w, "Spacing:    %g %g %g\n", spacing.X, spacing.Y, spacing.Z)
	fmt.Fprintf(w, "Patch size: %d (%d LOD levels)\n", t.PatchSize(), t.NumLodLevels())
	fmt.Fprintf(w, "Patches:    %dx%d = %d\n", grid.X, grid.Z, t.NumPatches())
	fmt.Fprintf(w, "Triangles:  %d\n", t.NumPatches()*len(t.IndexBuffer())/3)
	fmt.Fprintf(w, "Bounds:     (%g %g %g) - (%g %g %g)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}
