package geometry

import (
	"math"
	"testing"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

func TestTriangle_Hit_BasicIntersection(t *testing.T) {
	// Right triangle in the XY plane, normal facing +Z
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0, testSampler())
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}

	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}

func TestTriangle_Hit_OutsideBounds(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})

	tests := []struct {
		name      string
		rayOrigin core.Vec3
	}{
		{name: "beyond hypotenuse", rayOrigin: core.NewVec3(0.9, 0.9, 1)},
		{name: "negative u", rayOrigin: core.NewVec3(-0.1, 0.5, 1)},
		{name: "negative v", rayOrigin: core.NewVec3(0.5, -0.1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, core.NewVec3(0, 0, -1))
			if hit, isHit := tri.Hit(ray, 0.001, 1000.0, testSampler()); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestTriangle_Hit_ParallelRay(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})

	// Ray in the triangle's plane
	ray := core.NewRay(core.NewVec3(-1, 0.25, 0), core.NewVec3(1, 0, 0))
	if _, isHit := tri.Hit(ray, 0.001, 1000.0, testSampler()); isHit {
		t.Error("Parallel ray should miss, but it hit")
	}
}

func TestTriangle_BarycentricUV(t *testing.T) {
	// Without explicit texture coordinates the barycentric weights are used
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0, testSampler())
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.U-0.25) > 1e-9 || math.Abs(hit.V-0.25) > 1e-9 {
		t.Errorf("Expected UV (0.25, 0.25), got (%f, %f)", hit.U, hit.V)
	}
}

func TestTriangle_InterpolatedUV(t *testing.T) {
	tri := NewTriangleWithUVs(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec2(0.5, 0.5), core.NewVec2(1, 0.5), core.NewVec2(0.5, 1),
		testMaterial{},
	)

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0, testSampler())
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	// Weights (0.5, 0.25, 0.25) over the vertex coordinates
	if math.Abs(hit.U-0.625) > 1e-9 || math.Abs(hit.V-0.625) > 1e-9 {
		t.Errorf("Expected UV (0.625, 0.625), got (%f, %f)", hit.U, hit.V)
	}
}

func TestTriangle_CustomNormal(t *testing.T) {
	custom := core.NewVec3(0, 0, 2) // Will be normalized
	tri := NewTriangleWithNormal(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), custom, testMaterial{})

	if tri.GetNormal().Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normalized custom normal (0 0 1), got %v", tri.GetNormal())
	}
}

func TestTriangle_BoundingBox_Padded(t *testing.T) {
	// Flat in Z, the box must be padded for the slab test
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})

	bbox := tri.BoundingBox(0, 1)
	if bbox.Size().Z <= 0 {
		t.Fatalf("Expected positive Z extent after padding, got %v", bbox.Size().Z)
	}

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	if !bbox.Hit(ray, 0.001, math.Inf(1)) {
		t.Error("Expected bounding box to register perpendicular ray")
	}
}

func TestTriangle_Validate(t *testing.T) {
	valid := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	collinear := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), testMaterial{})
	if err := collinear.Validate(); err == nil {
		t.Error("Expected validation error for collinear vertices")
	}

	nan := NewTriangle(core.NewVec3(math.NaN(), 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial{})
	if err := nan.Validate(); err == nil {
		t.Error("Expected validation error for NaN vertex")
	}
}
