// terraintool inspects heightmaps the way the viewer builds them into terrain.
//
// Usage:
//
//	terraintool info <heightmap>            - Show grid, patch and bounds information
//	terraintool height <heightmap> <x> <z>  - Sample the surface height at a world position
//	terraintool export <heightmap>          - Write all patches as a Wavefront OBJ mesh
//	terraintool bindings [layout.yaml]      - Show a screen joystick layout and its bindings
//
// Global flags:
//
//	--patch-size <n>     - Patch size, a power of two in [4, 128] (default: 32)
//	--spacing <x,y,z>    - Sample spacing; y scales heights (default: 1,0.25,1)
//	--debug              - Log terrain rebuilds to stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/terra/internal/logger"
)

var (
	// Global flags
	flagPatchSize int
	flagSpacing   []float32
	flagDebug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "terraintool",
	Short: "Inspect and export heightmap terrain",
	Long: `terraintool loads a heightmap image, splits it into patches like the
viewer does and reports on or exports the result.

Examples:
  terraintool info island.png
  terraintool --patch-size 64 info island.png
  terraintool height island.png 10.5 -3
  terraintool export island.png -o island.obj
  terraintool bindings touch.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !flagDebug {
			return nil
		}
		return logger.Init("debug", "")
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagPatchSize, "patch-size", 32, "Patch size (power of two, 4-128)")
	rootCmd.PersistentFlags().Float32SliceVar(&flagSpacing, "spacing", []float32{1, 0.25, 1}, "Sample spacing x,y,z")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(heightCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(bindingsCmd)
}
