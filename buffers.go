package supershape

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"seehuhn.de/go/geom/vec"
)

// Buffers holds a mesh in the flat layout most host mesh and GPU APIs
// consume: float32 attributes per vertex and a uint32 triangle list.
type Buffers struct {
	// Positions holds x, y, z for every buffer vertex.
	Positions []float32
	// Normals holds the unit vertex normal x, y, z for every buffer vertex.
	Normals []float32
	// UVs holds u, v for every buffer vertex. It is nil if the mesh has no
	// corner UVs.
	UVs []float32
	// Indices holds three vertex indices per triangle.
	Indices []uint32
}

// NumVertices returns the number of buffer vertices.
func (b Buffers) NumVertices() int { return len(b.Positions) / 3 }

// NumTriangles returns the number of triangles.
func (b Buffers) NumTriangles() int { return len(b.Indices) / 3 }

// Buffers converts m into flat float32 buffers. Polygons are triangulated
// as by [Mesh.Triangulate]. If m has corner UVs, a mesh vertex used with
// several different UVs (such as the vertices on the texture seam) is
// emitted once per distinct UV; otherwise buffer vertices correspond to mesh
// vertices one to one.
//
// Buffers returns a *DomainError if a coordinate doesn't fit in a float32.
func (m Mesh) Buffers() (Buffers, error) {
	tm := m.Triangulate()
	normals := m.VertexNormals()

	var b Buffers
	b.Indices = make([]uint32, 0, len(tm.Faces)*3)
	emit := func(vi int, uv *vec.Vec2) error {
		p := m.Vertices[vi]
		n := normals[vi]
		for _, c := range [...]float64{p.X, p.Y, p.Z} {
			f, err := narrow(c)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", vi, err)
			}
			b.Positions = append(b.Positions, f)
		}
		b.Normals = append(b.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		if uv != nil {
			b.UVs = append(b.UVs, float32(uv.X), float32(uv.Y))
		}
		return nil
	}

	if tm.CornerUVs == nil {
		if uint64(len(m.Vertices)) > math.MaxUint32 {
			return Buffers{}, newConfigError("mesh", "%d vertices exceed uint32 indices", len(m.Vertices))
		}
		for vi := range m.Vertices {
			if err := emit(vi, nil); err != nil {
				return Buffers{}, err
			}
		}
		for _, f := range tm.Faces {
			b.Indices = append(b.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
		}
		return b, nil
	}

	type corner struct {
		v  int
		uv vec.Vec2
	}
	seen := make(map[corner]uint32, len(m.Vertices))
	for fi, f := range tm.Faces {
		for k, vi := range f {
			c := corner{vi, tm.CornerUVs[fi][k]}
			idx, ok := seen[c]
			if !ok {
				if uint64(len(seen)) >= math.MaxUint32 {
					return Buffers{}, newConfigError("mesh", "too many buffer vertices for uint32 indices")
				}
				idx = uint32(len(seen))
				seen[c] = idx
				if err := emit(vi, &c.uv); err != nil {
					return Buffers{}, err
				}
			}
			b.Indices = append(b.Indices, idx)
		}
	}
	return b, nil
}

// narrow converts x to float32, failing if the value overflows.
func narrow(x float64) (float32, error) {
	f := float32(x)
	if math32.IsInf(f, 0) || math32.IsNaN(f) {
		return 0, &DomainError{Msg: fmt.Sprintf("coordinate %g does not fit in float32 (max %g)", x, math32.MaxFloat32)}
	}
	return f, nil
}
