package renderer

import (
	"testing"

	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/engine/texture"
	"github.com/Faultbox/terra/pkg/math"
)

func bumpyTerrain(t *testing.T) *terrain.Terrain {
	t.Helper()
	img := &texture.Image{Width: 33, Height: 33, Components: 1, Data: make([]byte, 33*33)}
	for i := range img.Data {
		img.Data[i] = byte(i * 7 % 256)
	}
	tr := terrain.New()
	if !tr.SetHeightMap(img) {
		t.Fatal("SetHeightMap returned false")
	}
	return tr
}

func TestPatchModelMatchesWorldPositions(t *testing.T) {
	tr := bumpyTerrain(t)
	tr.SetTransform(terrain.Transform{
		Position: math.Vec3{X: 10, Y: -5, Z: 3},
		Scale:    math.Vec3{X: 2, Y: 0.5, Z: 1},
	})

	for _, p := range tr.Patches() {
		model := patchModel(tr.Transform(), p)
		for _, i := range []int{0, 5, len(p.Vertices) - 1} {
			got := model.TransformPoint(p.Vertices[i].Position)
			want := p.WorldPosition(i).Array()
			for c := 0; c < 3; c++ {
				if math.Abs(got[c]-want[c]) > 1e-3 {
					t.Fatalf("%s vertex %d: model gives %v, want %v", p.Name, i, got, want)
				}
			}
		}
	}
}

func TestWithinDrawDistance(t *testing.T) {
	box := terrain.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{10, 2, 10}}

	tests := []struct {
		name     string
		eye      math.Vec3
		distance float32
		want     bool
	}{
		{"unlimited", math.Vec3{X: 1000}, 0, true},
		{"inside", math.Vec3{X: 5, Y: 1, Z: 5}, 1, true},
		{"near edge", math.Vec3{X: 15, Y: 1, Z: 5}, 5, true},
		{"beyond edge", math.Vec3{X: 15.5, Y: 1, Z: 5}, 5, false},
		{"above", math.Vec3{X: 5, Y: 12, Z: 5}, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withinDrawDistance(box, tt.eye, tt.distance); got != tt.want {
				t.Errorf("withinDrawDistance = %v, want %v", got, tt.want)
			}
		})
	}

	if withinDrawDistance(terrain.EmptyBounds(), math.Vec3{}, 10) {
		t.Error("undefined bounds must be culled")
	}
}
