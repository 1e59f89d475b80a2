package geometry

import (
	"math"
	"testing"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// unitQuadMesh builds a two-triangle square in the XY plane
func unitQuadMesh(t *testing.T, options *TriangleMeshOptions) *TriangleMesh {
	t.Helper()
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}

	mesh, err := NewTriangleMesh(vertices, faces, testMaterial{}, options)
	if err != nil {
		t.Fatalf("Expected mesh to build, got %v", err)
	}
	return mesh
}

func TestTriangleMesh_Hit(t *testing.T) {
	mesh := unitQuadMesh(t, nil)

	if mesh.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	// Both halves of the square must be hittable
	for _, origin := range []core.Vec3{
		core.NewVec3(0.75, 0.25, 1), // Lower-right triangle
		core.NewVec3(0.25, 0.75, 1), // Upper-left triangle
	} {
		ray := core.NewRay(origin, core.NewVec3(0, 0, -1))
		hit, isHit := mesh.Hit(ray, 0.001, 1000.0, testSampler())
		if !isHit {
			t.Fatalf("Expected hit from %v, but got miss", origin)
		}
		if math.Abs(hit.T-1.0) > 1e-9 {
			t.Errorf("Expected t=1, got t=%f", hit.T)
		}
	}

	// And the area outside misses
	ray := core.NewRay(core.NewVec3(1.5, 1.5, 1), core.NewVec3(0, 0, -1))
	if _, isHit := mesh.Hit(ray, 0.001, 1000.0, testSampler()); isHit {
		t.Error("Expected miss outside the square")
	}
}

func TestTriangleMesh_VertexUVs(t *testing.T) {
	mesh := unitQuadMesh(t, &TriangleMeshOptions{
		UVs: []core.Vec2{
			core.NewVec2(0, 0),
			core.NewVec2(1, 0),
			core.NewVec2(1, 1),
			core.NewVec2(0, 1),
		},
	})

	// With UVs matching vertex positions, the hit UV equals the hit XY
	ray := core.NewRay(core.NewVec3(0.75, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := mesh.Hit(ray, 0.001, 1000.0, testSampler())
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.U-0.75) > 1e-9 || math.Abs(hit.V-0.25) > 1e-9 {
		t.Errorf("Expected UV (0.75, 0.25), got (%f, %f)", hit.U, hit.V)
	}
}

func TestTriangleMesh_BoundingBox(t *testing.T) {
	mesh := unitQuadMesh(t, nil)

	bbox := mesh.BoundingBox(0, 1)
	if bbox.Min.X > 0 || bbox.Min.Y > 0 || bbox.Max.X < 1 || bbox.Max.Y < 1 {
		t.Errorf("Expected box covering the unit square, got [%v, %v]", bbox.Min, bbox.Max)
	}
}

func TestTriangleMesh_MalformedInput(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name    string
		faces   []int
		options *TriangleMeshOptions
	}{
		{name: "truncated face list", faces: []int{0, 1}},
		{name: "index out of range", faces: []int{0, 1, 3}},
		{name: "negative index", faces: []int{0, 1, -1}},
		{
			name:    "mismatched normals",
			faces:   []int{0, 1, 2},
			options: &TriangleMeshOptions{Normals: []core.Vec3{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}}},
		},
		{
			name:    "mismatched UVs",
			faces:   []int{0, 1, 2},
			options: &TriangleMeshOptions{UVs: []core.Vec2{{X: 0, Y: 0}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTriangleMesh(vertices, tt.faces, testMaterial{}, tt.options); err == nil {
				t.Error("Expected construction error, got nil")
			}
		})
	}
}

func TestTriangleMesh_RejectsNaNVertices(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(math.NaN(), 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 2}, testMaterial{}, nil); err == nil {
		t.Error("Expected construction error for NaN vertex")
	}
}
