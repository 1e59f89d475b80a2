package geometry

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// TriangleMesh is an indexed set of triangles behind its own BVH, so meshes
// stay cheap even inside a larger scene tree
type TriangleMesh struct {
	triangles []core.Shape
	bvh       *BVH
	bbox      core.AABB
}

// TriangleMeshOptions carries the optional per-mesh attributes
type TriangleMeshOptions struct {
	Normals   []core.Vec3     // one per triangle
	UVs       []core.Vec2     // one per vertex
	Materials []core.Material // one per triangle
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices in faces forms one triangle. The material is the
// default for all triangles; options may override normals, texture
// coordinates, or per-triangle materials. Malformed input (truncated index
// list, out-of-range indices, mismatched option lengths) is rejected.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, core.NewConstructionError("triangle mesh", "face index count %d is not a multiple of 3", len(faces))
	}

	triCount := len(faces) / 3

	// Option slices must line up with the mesh before any triangle is built
	if options != nil {
		if options.Normals != nil && len(options.Normals) != triCount {
			return nil, core.NewConstructionError("triangle mesh", "got %d normals for %d triangles", len(options.Normals), triCount)
		}
		if options.UVs != nil && len(options.UVs) != len(vertices) {
			return nil, core.NewConstructionError("triangle mesh", "got %d texture coordinates for %d vertices", len(options.UVs), len(vertices))
		}
		if options.Materials != nil && len(options.Materials) != triCount {
			return nil, core.NewConstructionError("triangle mesh", "got %d materials for %d triangles", len(options.Materials), triCount)
		}
	}

	triangles := make([]core.Shape, triCount)

	for i := 0; i < triCount; i++ {
		i0 := faces[i*3]
		i1 := faces[i*3+1]
		i2 := faces[i*3+2]

		if i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			return nil, core.NewConstructionError("triangle mesh", "face %d references a vertex outside the list", i)
		}

		mat := material
		if options != nil && options.Materials != nil {
			mat = options.Materials[i]
		}

		// Texture coordinates take precedence over custom normals
		var tri *Triangle
		switch {
		case options != nil && options.UVs != nil:
			tri = NewTriangleWithUVs(vertices[i0], vertices[i1], vertices[i2],
				options.UVs[i0], options.UVs[i1], options.UVs[i2], mat)
		case options != nil && options.Normals != nil:
			tri = NewTriangleWithNormal(vertices[i0], vertices[i1], vertices[i2], options.Normals[i], mat)
		default:
			tri = NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		}
		triangles[i] = tri
	}

	// Build BVH for fast intersection, this also rejects non-finite vertices
	bvh, err := NewBVH(triangles, 0, 0)
	if err != nil {
		return nil, err
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       bvh,
		bbox:      bvh.BoundingBox(0, 0),
	}, nil
}

// Hit delegates to the mesh's internal BVH
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box around the whole mesh
func (tm *TriangleMesh) BoundingBox(time0, time1 float64) core.AABB {
	return tm.bbox
}

// TriangleCount reports how many triangles the mesh holds
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
