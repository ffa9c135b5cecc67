package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/terra/internal/engine/terrain"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export <heightmap>",
	Short: "Write all patches as a Wavefront OBJ mesh",
	Long: `Builds the terrain and writes every patch as a named OBJ object with
world-space positions, normals and texture coordinates.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "Output file (- for stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	t, _, err := loadTerrain(args[0])
	if err != nil {
		return err
	}

	if flagOutput == "-" {
		return writeOBJ(cmd.OutOrStdout(), t)
	}
	f, err := os.Create(flagOutput)
	if err != nil {
		return err
	}
	if err := writeOBJ(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d patches to %s\n", t.NumPatches(), flagOutput)
	return nil
}

// writeOBJ writes the terrain patches as OBJ objects. Every patch carries its
// own vertices, so face indices are offset by the vertices written before it.
func writeOBJ(w io.Writer, t *terrain.Terrain) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d patches of %d\n", t.NumPatches(), t.PatchSize())

	indices := t.IndexBuffer()
	base := 1
	for _, p := range t.Patches() {
		fmt.Fprintf(bw, "o %s\n", p.Name)
		for i, v := range p.Vertices {
			pos := p.WorldPosition(i)
			fmt.Fprintf(bw, "v %g %g %g\n", pos.X, pos.Y, pos.Z)
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
			fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += len(p.Vertices)
	}
	return bw.Flush()
}
