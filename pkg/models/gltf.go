package models

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/scene"
)

// LoadGLB loads a binary or JSON glTF file into a single mesh.
// Every triangle primitive of every mesh in the document is merged; the
// diffuse color comes from the first material's base color factor.
func LoadGLB(path string) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var (
		vertices []math3d.Vec3
		faces    []scene.Face
	)
	for _, m := range doc.Meshes {
		if vertices, faces, err = appendGLTFMesh(doc, m, vertices, faces); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh, err := scene.NewMesh(filepath.Base(path), vertices, faces, gltfDiffuse(doc))
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	return mesh, nil
}

// appendGLTFMesh extracts triangle geometry from a glTF mesh. glTF winding
// is counter-clockwise like OBJ and is kept as authored.
func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, vertices []math3d.Vec3, faces []scene.Face) ([]math3d.Vec3, []scene.Face, error) {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, nil, fmt.Errorf("read positions: %w", err)
		}

		base := len(vertices)
		for _, p := range positions {
			vertices = append(vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		if prim.Indices == nil {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				faces = append(faces, scene.Face{base + i, base + i + 1, base + i + 2})
			}
			continue
		}

		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, nil, fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			faces = append(faces, scene.Face{
				base + int(indices[i]),
				base + int(indices[i+1]),
				base + int(indices[i+2]),
			})
		}
	}
	return vertices, faces, nil
}

// gltfDiffuse returns the first material's base color, or white.
func gltfDiffuse(doc *gltf.Document) color.RGBA {
	for _, mat := range doc.Materials {
		if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
			continue
		}
		f := *mat.PBRMetallicRoughness.BaseColorFactor
		return unitColor(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return defaultDiffuse
}
