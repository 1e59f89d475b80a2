package loaders

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/material"
)

func index(i int) *int {
	return &i
}

func floatBytes(values ...float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func ushortBytes(values ...uint16) []byte {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func uintBytes(values ...uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// quadDocument builds a single-mesh document holding a unit quad in the
// z=0 plane, two triangles indexed with the given component type.
func quadDocument(componentType gltf.ComponentType) *gltf.Document {
	positions := floatBytes(
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	)

	var indexData []byte
	switch componentType {
	case gltf.ComponentUbyte:
		indexData = []byte{0, 1, 2, 0, 2, 3}
	case gltf.ComponentUshort:
		indexData = ushortBytes(0, 1, 2, 0, 2, 3)
	case gltf.ComponentUint:
		indexData = uintBytes(0, 1, 2, 0, 2, 3)
	}

	data := append(append([]byte{}, positions...), indexData...)

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: len(positions)},
			{Buffer: 0, ByteOffset: len(positions), ByteLength: len(indexData)},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: index(0), ComponentType: gltf.ComponentFloat, Count: 4, Type: gltf.AccessorVec3},
			{BufferView: index(1), ComponentType: componentType, Count: 6, Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Mode:       gltf.PrimitiveTriangles,
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    index(1),
			}},
		}},
	}
}

func testGLTFSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestBuildMeshes_IndexedQuad(t *testing.T) {
	componentTypes := []struct {
		name string
		ct   gltf.ComponentType
	}{
		{"Ubyte indices", gltf.ComponentUbyte},
		{"Ushort indices", gltf.ComponentUshort},
		{"Uint indices", gltf.ComponentUint},
	}

	for _, tc := range componentTypes {
		t.Run(tc.name, func(t *testing.T) {
			fallback := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
			shapes, err := buildMeshes(quadDocument(tc.ct), fallback)
			if err != nil {
				t.Fatalf("buildMeshes failed: %v", err)
			}
			if len(shapes) != 1 {
				t.Fatalf("Expected 1 shape, got %d", len(shapes))
			}

			mesh, ok := shapes[0].(*geometry.TriangleMesh)
			if !ok {
				t.Fatalf("Expected a TriangleMesh, got %T", shapes[0])
			}
			if mesh.TriangleCount() != 2 {
				t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
			}

			ray := core.NewRay(core.NewVec3(0.6, 0.3, -1), core.NewVec3(0, 0, 1))
			hit, ok := mesh.Hit(ray, 0.001, math.Inf(1), testGLTFSampler())
			if !ok {
				t.Fatal("Expected the ray to hit the quad")
			}
			if math.Abs(hit.T-1) > 1e-9 {
				t.Errorf("Expected hit at t=1, got %v", hit.T)
			}
			if hit.Material != core.Material(fallback) {
				t.Error("Expected the fallback material on the hit record")
			}
		})
	}
}

func TestBuildMeshes_UnindexedTriangles(t *testing.T) {
	positions := floatBytes(
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	)
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: len(positions), Data: positions}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: len(positions)}},
		Accessors: []*gltf.Accessor{
			{BufferView: index(0), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
		},
		Meshes: []*gltf.Mesh{{
			Primitives: []*gltf.Primitive{{
				Mode:       gltf.PrimitiveTriangles,
				Attributes: map[string]int{gltf.POSITION: 0},
			}},
		}},
	}

	shapes, err := buildMeshes(doc, material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatalf("buildMeshes failed: %v", err)
	}
	mesh := shapes[0].(*geometry.TriangleMesh)
	if mesh.TriangleCount() != 1 {
		t.Errorf("Expected 1 triangle from sequential vertices, got %d", mesh.TriangleCount())
	}
}

func TestBuildMeshes_TextureCoordinates(t *testing.T) {
	positions := floatBytes(
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	)
	uvs := floatBytes(
		0, 0,
		1, 0,
		0, 1,
	)
	data := append(append([]byte{}, positions...), uvs...)

	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: len(positions)},
			{Buffer: 0, ByteOffset: len(positions), ByteLength: len(uvs)},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: index(0), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
			{BufferView: index(1), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec2},
		},
		Meshes: []*gltf.Mesh{{
			Primitives: []*gltf.Primitive{{
				Mode: gltf.PrimitiveTriangles,
				Attributes: map[string]int{
					gltf.POSITION:   0,
					gltf.TEXCOORD_0: 1,
				},
			}},
		}},
	}

	shapes, err := buildMeshes(doc, material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatalf("buildMeshes failed: %v", err)
	}

	// Hit the barycenter: every corner contributes one third, and the V
	// coordinates were flipped from image convention on load.
	ray := core.NewRay(core.NewVec3(1.0/3, 1.0/3, -1), core.NewVec3(0, 0, 1))
	hit, ok := shapes[0].Hit(ray, 0.001, math.Inf(1), testGLTFSampler())
	if !ok {
		t.Fatal("Expected the ray to hit the triangle")
	}
	if math.Abs(hit.U-1.0/3) > 1e-9 {
		t.Errorf("Expected U=1/3, got %v", hit.U)
	}
	if math.Abs(hit.V-2.0/3) > 1e-9 {
		t.Errorf("Expected V=2/3 after the flip, got %v", hit.V)
	}
}

func TestBuildMeshes_EmbeddedTextureOverridesFallback(t *testing.T) {
	var pngBuf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.Set(i%2, i/2, color.RGBA{R: 255, A: 255})
	}
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("Encoding test texture failed: %v", err)
	}

	doc := quadDocument(gltf.ComponentUshort)
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{ByteLength: pngBuf.Len(), Data: pngBuf.Bytes()})
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 1, ByteLength: pngBuf.Len()})
	doc.Images = []*gltf.Image{{BufferView: index(2), MimeType: "image/png"}}

	metalFallback := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)
	shapes, err := buildMeshes(doc, metalFallback)
	if err != nil {
		t.Fatalf("buildMeshes failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.6, 0.3, -1), core.NewVec3(0, 0, 1))
	hit, ok := shapes[0].Hit(ray, 0.001, math.Inf(1), testGLTFSampler())
	if !ok {
		t.Fatal("Expected the ray to hit the quad")
	}
	lambertian, ok := hit.Material.(*material.Lambertian)
	if !ok {
		t.Fatalf("Expected a textured lambertian, got %T", hit.Material)
	}
	got := lambertian.Albedo.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected the red texture color, got %v", got)
	}
}

func TestBuildMeshes_Errors(t *testing.T) {
	t.Run("Missing POSITION attribute", func(t *testing.T) {
		doc := quadDocument(gltf.ComponentUshort)
		doc.Meshes[0].Primitives[0].Attributes = map[string]int{}
		_, err := buildMeshes(doc, material.NewLambertian(core.NewVec3(1, 1, 1)))
		if err == nil || !strings.Contains(err.Error(), "POSITION") {
			t.Errorf("Expected a missing POSITION error, got %v", err)
		}
	})

	t.Run("Truncated buffer", func(t *testing.T) {
		doc := quadDocument(gltf.ComponentUshort)
		doc.Accessors[0].Count = 40
		_, err := buildMeshes(doc, material.NewLambertian(core.NewVec3(1, 1, 1)))
		if err == nil {
			t.Error("Expected an error for an accessor past the buffer end")
		}
	})

	t.Run("No triangle primitives", func(t *testing.T) {
		doc := quadDocument(gltf.ComponentUshort)
		doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines
		_, err := buildMeshes(doc, material.NewLambertian(core.NewVec3(1, 1, 1)))
		if err == nil || !strings.Contains(err.Error(), "no triangle primitives") {
			t.Errorf("Expected a no-triangles error, got %v", err)
		}
	})

	t.Run("Unsupported index type", func(t *testing.T) {
		doc := quadDocument(gltf.ComponentUshort)
		doc.Accessors[1].ComponentType = gltf.ComponentFloat
		_, err := buildMeshes(doc, material.NewLambertian(core.NewVec3(1, 1, 1)))
		if err == nil {
			t.Error("Expected an error for float indices")
		}
	})
}

func TestLoadGLTF_MissingFile(t *testing.T) {
	_, err := LoadGLTF("definitely/not/here.gltf", material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
}
