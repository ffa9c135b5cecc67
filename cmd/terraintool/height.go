package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Faultbox/terra/pkg/math"
)

var heightCmd = &cobra.Command{
	Use:   "height <heightmap> <x> <z>",
	Short: "Sample the surface height at a world position",
	Long: `Samples the terrain surface below world position (x, z). Positions
outside the terrain clamp to the nearest edge.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("invalid x: %w", err)
		}
		z, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			return fmt.Errorf("invalid z: %w", err)
		}
		t, _, err := loadTerrain(args[0])
		if err != nil {
			return err
		}
		h := t.Height(math.Vec3{X: float32(x), Z: float32(z)})
		fmt.Fprintf(cmd.OutOrStdout(), "%g\n", h)
		return nil
	},
}
