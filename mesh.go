package supershape

import (
	"fmt"
	"iter"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Face is a polygon given by indices into a mesh's vertices. Corners are
// ordered counter-clockwise when seen from outside the surface, so that the
// right-hand rule yields an outward normal.
type Face []int

// Mesh is a polygon mesh: a vertex sequence and faces referring to vertices
// by index.
//
// CornerUVs, if not nil, is parallel to Faces and holds one texture
// coordinate per face corner: CornerUVs[f][k] belongs to Faces[f][k]. UVs
// are stored per corner rather than per vertex because the texture seam of a
// closed surface needs two different coordinates for the same vertex.
//
// Meshes returned by this package are never modified by it afterwards;
// operations such as [Mesh.Transform] and [Mesh.Weld] return new meshes.
type Mesh struct {
	Vertices  []Vec3
	Faces     []Face
	CornerUVs [][]vec.Vec2
}

// Edge is an undirected edge between two vertices, with the smaller index
// first.
type Edge [2]int

// NewEdge returns the edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

func (m Mesh) NumVertices() int { return len(m.Vertices) }
func (m Mesh) NumFaces() int    { return len(m.Faces) }

// FaceCounts returns the number of triangles, quads and larger polygons.
func (m Mesh) FaceCounts() (tris, quads, other int) {
	for _, f := range m.Faces {
		switch len(f) {
		case 3:
			tris++
		case 4:
			quads++
		default:
			other++
		}
	}
	return tris, quads, other
}

// Validate checks the structural invariants of the mesh: every face has at
// least three corners, every index is in range, no face repeats a vertex,
// every vertex is finite, and CornerUVs, if present, matches Faces.
func (m Mesh) Validate() error {
	n := len(m.Vertices)
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("supershape: vertex %d is not finite: %s", i, v)
		}
	}
	for fi, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("supershape: face %d has %d corners", fi, len(f))
		}
		for k, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("supershape: face %d: index %d out of range [0, %d)", fi, idx, n)
			}
			if slices.Contains(f[:k], idx) {
				return fmt.Errorf("supershape: face %d: repeated vertex %d", fi, idx)
			}
		}
	}
	if m.CornerUVs != nil {
		if len(m.CornerUVs) != len(m.Faces) {
			return fmt.Errorf("supershape: %d UV faces for %d faces", len(m.CornerUVs), len(m.Faces))
		}
		for fi, uvs := range m.CornerUVs {
			if len(uvs) != len(m.Faces[fi]) {
				return fmt.Errorf("supershape: face %d: %d UVs for %d corners", fi, len(uvs), len(m.Faces[fi]))
			}
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Vertices: slices.Clone(m.Vertices),
		Faces:    make([]Face, len(m.Faces)),
	}
	for i, f := range m.Faces {
		out.Faces[i] = slices.Clone(f)
	}
	if m.CornerUVs != nil {
		out.CornerUVs = make([][]vec.Vec2, len(m.CornerUVs))
		for i, uvs := range m.CornerUVs {
			out.CornerUVs[i] = slices.Clone(uvs)
		}
	}
	return out
}

// Transform returns a copy of m with every vertex transformed by aff. If aff
// mirrors space (negative determinant), the winding of every face is reversed
// so that normals keep pointing outwards.
func (m Mesh) Transform(aff Affine) Mesh {
	out := m.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = v.Transform(aff)
	}
	if aff.Determinant() < 0 {
		out.reverseWinding()
	}
	return out
}

// Scale returns a copy of m with every vertex multiplied component-wise by s.
// Like [Mesh.Transform], a mirroring scale reverses the face winding.
func (m Mesh) Scale(s Vec3) Mesh {
	out := m.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = v.MulComponents(s)
	}
	if s.X*s.Y*s.Z < 0 {
		out.reverseWinding()
	}
	return out
}

func (m *Mesh) reverseWinding() {
	for _, f := range m.Faces {
		slices.Reverse(f)
	}
	for _, uvs := range m.CornerUVs {
		slices.Reverse(uvs)
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m Mesh) Bounds() Box3 {
	b := EmptyBox3()
	for _, v := range m.Vertices {
		b = b.UnionPoint(v)
	}
	return b
}

// Edges returns the undirected edges of the mesh, each exactly once, in the
// order in which they are first encountered when walking faces in order.
func (m Mesh) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		seen := make(map[Edge]struct{}, len(m.Faces)*2)
		for _, f := range m.Faces {
			for k := range f {
				e := NewEdge(f[k], f[(k+1)%len(f)])
				if _, ok := seen[e]; ok {
					continue
				}
				seen[e] = struct{}{}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// EulerCharacteristic returns V − E + F. It is 2 for any closed mesh
// homeomorphic to a sphere, which includes every supershape built by [Build].
func (m Mesh) EulerCharacteristic() int {
	var e int
	for range m.Edges() {
		e++
	}
	return len(m.Vertices) - e + len(m.Faces)
}

// newell returns the Newell normal of face f. Its direction follows the
// right-hand rule for the face's winding; its length is twice the area of
// the polygon.
func (m Mesh) newell(f Face) Vec3 {
	var n Vec3
	for k := range f {
		a := m.Vertices[f[k]]
		b := m.Vertices[f[(k+1)%len(f)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// FaceNormal returns the unit normal of the i-th face. It panics if i is out
// of range and returns a NaN vector for a face of zero area.
func (m Mesh) FaceNormal(i int) Vec3 {
	return m.newell(m.Faces[i]).Normalize()
}

// FaceArea returns the area of the i-th face, assuming it is planar.
func (m Mesh) FaceArea(i int) float64 {
	return 0.5 * m.newell(m.Faces[i]).Hypot()
}

// VertexNormals returns one unit normal per vertex, the area-weighted average
// of the normals of the faces around it. Vertices not used by any face, or
// whose faces cancel out, get the zero vector.
func (m Mesh) VertexNormals() []Vec3 {
	acc := make([]Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.newell(f)
		for _, idx := range f {
			acc[idx] = acc[idx].Add(n)
		}
	}
	for i, n := range acc {
		if h := n.Hypot(); h > 0 {
			acc[i] = n.Div(h)
		} else {
			acc[i] = Vec3{}
		}
	}
	return acc
}

// Triangulate returns a copy of m in which every polygon with more than three
// corners is split into a fan of triangles around its first corner. Winding
// and corner UVs are preserved.
func (m Mesh) Triangulate() Mesh {
	out := Mesh{
		Vertices: slices.Clone(m.Vertices),
		Faces:    make([]Face, 0, len(m.Faces)*2),
	}
	if m.CornerUVs != nil {
		out.CornerUVs = make([][]vec.Vec2, 0, len(m.Faces)*2)
	}
	for fi, f := range m.Faces {
		for k := 1; k+1 < len(f); k++ {
			out.Faces = append(out.Faces, Face{f[0], f[k], f[k+1]})
			if m.CornerUVs != nil {
				uvs := m.CornerUVs[fi]
				out.CornerUVs = append(out.CornerUVs, []vec.Vec2{uvs[0], uvs[k], uvs[k+1]})
			}
		}
	}
	return out
}
