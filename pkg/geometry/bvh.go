package geometry

import (
	"sort"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// bvhPrimitive pairs a shape with its bounding box over the build time range,
// so construction never recomputes boxes while sorting
type bvhPrimitive struct {
	shape  core.Shape
	bounds core.AABB
}

// BVHNode is one node of the hierarchy, either internal or a leaf
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []core.Shape // Shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is built once from the full shape list before rendering and is read-only
// afterwards, so concurrent queries need no synchronization. The BVH itself
// satisfies the shape interface, which lets meshes nest their own trees.
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: with this many or fewer shapes, store them in a leaf node
const leafThreshold = 2

// NewBVH constructs a BVH from a slice of shapes. Bounding boxes are taken
// over [time0, time1] so moving shapes stay bounded across the shutter
// interval. Shapes with non-finite boxes are rejected before any rendering
// can start; flat boxes are padded so the slab test cannot miss them.
func NewBVH(shapes []core.Shape, time0, time1 float64) (*BVH, error) {
	if len(shapes) == 0 {
		return &BVH{Root: nil}, nil
	}

	// Build a private primitive list so the caller's slice is never
	// reordered, which also keeps concurrent builds safe
	primitives := make([]bvhPrimitive, len(shapes))
	for i, shape := range shapes {
		bounds := shape.BoundingBox(time0, time1)
		if !bounds.IsFinite() {
			return nil, core.NewConstructionError("bvh", "shape %d has a non-finite bounding box", i)
		}
		if !bounds.IsValid() {
			return nil, core.NewConstructionError("bvh", "shape %d has an inverted bounding box", i)
		}
		primitives[i] = bvhPrimitive{shape: shape, bounds: bounds.Pad(1e-4)}
	}

	return &BVH{Root: buildBVH(primitives, 0)}, nil
}

// buildBVH recursively builds the tree by median splitting: sort the
// primitives by bounding box center along the node's longest axis and cut
// the sorted list in half. This gives an O(n log n) build, roughly balanced
// trees, and O(log n) expected query depth.
func buildBVH(primitives []bvhPrimitive, depth int) *BVHNode {
	bounds := primitives[0].bounds
	for i := 1; i < len(primitives); i++ {
		bounds = bounds.Union(primitives[i].bounds)
	}

	// Small groups become leaves holding their shapes directly
	if len(primitives) <= leafThreshold {
		shapes := make([]core.Shape, len(primitives))
		for i, primitive := range primitives {
			shapes[i] = primitive.shape
		}
		return &BVHNode{
			BoundingBox: bounds,
			Shapes:      shapes,
		}
	}

	// Sort by bounding box center along the longest axis and split at the
	// median so both children get half the primitives
	axis := bounds.LongestAxis()
	sortPrimitivesByAxis(primitives, axis)

	mid := len(primitives) / 2
	return &BVHNode{
		BoundingBox: bounds,
		Left:        buildBVH(primitives[:mid], depth+1),
		Right:       buildBVH(primitives[mid:], depth+1),
	}
}

// sortPrimitivesByAxis sorts primitives by their bounding box center along the specified axis
func sortPrimitivesByAxis(primitives []bvhPrimitive, axis int) {
	sort.Slice(primitives, func(i, j int) bool {
		return primitives[i].bounds.AxisValue(axis) < primitives[j].bounds.AxisValue(axis)
	})
}

// Hit tests if a ray intersects any shape in the BVH. An empty tree never
// reports a hit.
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax, sampler)
}

// hitNode recursively tests ray intersection with BVH nodes, narrowing the
// search interval as closer hits are found so farther subtrees are pruned
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var best *core.HitRecord
	limit := tMax

	// Leaves hold their shapes directly and get a linear scan
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, limit, sampler); isHit {
				limit = hit.T
				best = hit
			}
		}
		return best, best != nil
	}

	for _, child := range [2]*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if hit, isHit := bvh.hitNode(child, ray, tMin, limit, sampler); isHit {
			limit = hit.T
			best = hit
		}
	}

	return best, best != nil
}

// BoundingBox returns the overall bounding box of the BVH. The box was
// computed for the time range the tree was built with, so the arguments
// are ignored.
func (bvh *BVH) BoundingBox(time0, time1 float64) core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats summarizes the layout of a built tree
type bvhStats struct {
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats walks the tree and tallies leaves, depth, and stored shapes
func (bvh *BVH) getStats() bvhStats {
	var stats bvhStats
	if bvh.Root != nil {
		tallyNode(bvh.Root, 0, &stats)
	}
	return stats
}

func tallyNode(node *BVHNode, depth int, stats *bvhStats) {
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}
	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	if node.Left != nil {
		tallyNode(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		tallyNode(node.Right, depth+1, stats)
	}
}
