package loaders

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/material"
)

// LoadGLTF reads a glTF or GLB file and converts every triangle primitive
// into a TriangleMesh. Texture coordinates are carried over when present.
// If the document embeds an image, the first one becomes a textured
// material for all meshes; otherwise every triangle uses fallback.
func LoadGLTF(path string, fallback core.Material) ([]core.Shape, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gltf %s: %w", path, err)
	}
	return buildMeshes(doc, fallback)
}

// buildMeshes converts a parsed document into renderable shapes.
func buildMeshes(doc *gltf.Document, fallback core.Material) ([]core.Shape, error) {
	meshMaterial := fallback
	if texture := firstEmbeddedTexture(doc); texture != nil {
		meshMaterial = material.NewTexturedLambertian(texture)
	}

	var shapes []core.Shape
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				// Lines and points cannot be path traced
				continue
			}
			mesh, err := buildPrimitive(doc, prim, meshMaterial)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			shapes = append(shapes, mesh)
		}
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("gltf document contains no triangle primitives")
	}
	return shapes, nil
}

// buildPrimitive turns one glTF primitive into a triangle mesh.
func buildPrimitive(doc *gltf.Document, prim *gltf.Primitive, meshMaterial core.Material) (*geometry.TriangleMesh, error) {
	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	vertices, err := readVec3Accessor(doc, posIndex)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var faces []int
	if prim.Indices != nil {
		faces, err = readIndexAccessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		// Unindexed geometry is a flat list of triangles
		faces = make([]int, len(vertices))
		for i := range faces {
			faces[i] = i
		}
	}

	options := &geometry.TriangleMeshOptions{}

	if uvIndex, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := readVec2Accessor(doc, uvIndex)
		if err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
		if len(uvs) != len(vertices) {
			return nil, fmt.Errorf("got %d texture coordinates for %d vertices", len(uvs), len(vertices))
		}
		// glTF puts V=0 at the top of the image, textures here at the bottom
		for i := range uvs {
			uvs[i].Y = 1 - uvs[i].Y
		}
		options.UVs = uvs
	}

	if normalIndex, ok := prim.Attributes[gltf.NORMAL]; ok && options.UVs == nil {
		vertexNormals, err := readVec3Accessor(doc, normalIndex)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		if len(vertexNormals) != len(vertices) {
			return nil, fmt.Errorf("got %d normals for %d vertices", len(vertexNormals), len(vertices))
		}
		// Triangles take one normal each, so average the corner normals
		triNormals := make([]core.Vec3, len(faces)/3)
		for i := range triNormals {
			n := vertexNormals[faces[i*3]].
				Add(vertexNormals[faces[i*3+1]]).
				Add(vertexNormals[faces[i*3+2]])
			if n.Length() > 0 {
				n = n.Normalize()
			}
			triNormals[i] = n
		}
		options.Normals = triNormals
	}

	return geometry.NewTriangleMesh(vertices, faces, meshMaterial, options)
}

// firstEmbeddedTexture decodes the first image stored inside the document
// buffers. Images referenced through external URIs are skipped.
func firstEmbeddedTexture(doc *gltf.Document) material.ColorSource {
	for _, img := range doc.Images {
		if img.BufferView == nil {
			continue
		}
		view := doc.BufferViews[*img.BufferView]
		buffer := doc.Buffers[view.Buffer]
		start := int(view.ByteOffset)
		end := start + int(view.ByteLength)
		if len(buffer.Data) < end {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(buffer.Data[start:end]))
		if err != nil {
			continue
		}
		return material.NewImageTextureFromImage(decoded)
	}
	return nil
}

// accessorData locates the raw bytes behind an accessor and returns them
// together with the element stride. The returned slice starts at the
// accessor's first element and is verified to hold Count of them.
func accessorData(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if len(buffer.Data) == 0 {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := int(view.ByteStride)
	if stride == 0 {
		stride = elementSize
	}
	count := int(accessor.Count)
	if count == 0 {
		return nil, 0, fmt.Errorf("accessor is empty")
	}

	start := int(view.ByteOffset) + int(accessor.ByteOffset)
	need := start + (count-1)*stride + elementSize
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor needs %d bytes, buffer %d holds %d", need, view.Buffer, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}

// readVec3Accessor reads float VEC3 data, such as positions or normals.
func readVec3Accessor(doc *gltf.Document, index int) ([]core.Vec3, error) {
	accessor := doc.Accessors[index]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3 accessor, got %v of %v", accessor.Type, accessor.ComponentType)
	}
	data, stride, err := accessorData(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]core.Vec3, int(accessor.Count))
	for i := range out {
		base := i * stride
		out[i] = core.NewVec3(
			float64(readFloat32(data[base:])),
			float64(readFloat32(data[base+4:])),
			float64(readFloat32(data[base+8:])),
		)
	}
	return out, nil
}

// readVec2Accessor reads float VEC2 data, such as texture coordinates.
func readVec2Accessor(doc *gltf.Document, index int) ([]core.Vec2, error) {
	accessor := doc.Accessors[index]
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2 accessor, got %v of %v", accessor.Type, accessor.ComponentType)
	}
	data, stride, err := accessorData(doc, accessor, 8)
	if err != nil {
		return nil, err
	}

	out := make([]core.Vec2, int(accessor.Count))
	for i := range out {
		base := i * stride
		out[i] = core.NewVec2(
			float64(readFloat32(data[base:])),
			float64(readFloat32(data[base+4:])),
		)
	}
	return out, nil
}

// readIndexAccessor reads scalar index data in any of the three component
// types the format allows.
func readIndexAccessor(doc *gltf.Document, index int) ([]int, error) {
	accessor := doc.Accessors[index]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor for indices, got %v", accessor.Type)
	}

	var elementSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		elementSize = 1
	case gltf.ComponentUshort:
		elementSize = 2
	case gltf.ComponentUint:
		elementSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorData(doc, accessor, elementSize)
	if err != nil {
		return nil, err
	}

	out := make([]int, int(accessor.Count))
	for i := range out {
		base := i * stride
		switch elementSize {
		case 1:
			out[i] = int(data[base])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[base:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[base:]))
		}
	}
	return out, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
