// Package subdiv refines polygon meshes by subdivision.
//
// Both schemes split every k-sided face into k quads, using one new vertex
// per edge and one per face:
//
//   - [Linear] places new vertices at edge midpoints and face centroids and
//     leaves existing vertices in place, so the surface doesn't change shape.
//   - [CatmullClark] additionally smooths all vertex positions using the
//     Catmull-Clark rules, converging to a smooth limit surface.
//
// The vertices of a subdivided mesh are ordered as follows: the (moved)
// original vertices, then one vertex per edge in the order edges are first
// seen walking the faces, then one vertex per face. Faces are emitted per
// input face, one quad per corner, and keep the input winding. Corner UVs are
// subdivided linearly within each face.
//
// Edges shared by exactly two faces are smoothed; boundary edges and edges
// shared by more than two faces use midpoints, and vertices on them follow
// the boundary curve.
package subdiv

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"honnef.co/go/supershape"
)

// Scheme selects a subdivision rule.
type Scheme int

const (
	SchemeLinear Scheme = iota
	SchemeCatmullClark
)

func (s Scheme) String() string {
	switch s {
	case SchemeLinear:
		return "linear"
	case SchemeCatmullClark:
		return "catmull-clark"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Linear applies levels rounds of linear subdivision to m.
func Linear(m supershape.Mesh, levels int) (supershape.Mesh, error) {
	return Subdivide(m, levels, SchemeLinear)
}

// CatmullClark applies levels rounds of Catmull-Clark subdivision to m.
func CatmullClark(m supershape.Mesh, levels int) (supershape.Mesh, error) {
	return Subdivide(m, levels, SchemeCatmullClark)
}

// Subdivide applies levels rounds of the given scheme to m and returns the
// result as a new mesh; m is not modified. Zero levels return a copy of m.
//
// It returns a *supershape.ConfigError for a negative level count or an
// unknown scheme, and the validation error if m is malformed.
func Subdivide(m supershape.Mesh, levels int, scheme Scheme) (supershape.Mesh, error) {
	if levels < 0 {
		return supershape.Mesh{}, &supershape.ConfigError{
			Field: "subdivision levels",
			Msg:   fmt.Sprintf("got %d, want a non-negative count", levels),
		}
	}
	if scheme != SchemeLinear && scheme != SchemeCatmullClark {
		return supershape.Mesh{}, &supershape.ConfigError{
			Field: "subdivision scheme",
			Msg:   fmt.Sprintf("unknown scheme %d", int(scheme)),
		}
	}
	if err := m.Validate(); err != nil {
		return supershape.Mesh{}, err
	}
	out := m.Clone()
	for range levels {
		out = step(out, scheme == SchemeCatmullClark)
		supershape.Logger().Debug("subdiv: refined mesh",
			"scheme", scheme,
			"vertices", len(out.Vertices),
			"faces", len(out.Faces))
	}
	return out, nil
}

type edgeInfo struct {
	e     supershape.Edge
	faces []int
}

// topology is the edge structure of a mesh.
type topology struct {
	edges []edgeInfo
	// faceEdges[f][k] is the index of the edge from corner k to corner k+1
	// of face f.
	faceEdges [][]int
}

func newTopology(m supershape.Mesh) topology {
	var t topology
	index := make(map[supershape.Edge]int, len(m.Faces)*2)
	t.faceEdges = make([][]int, len(m.Faces))
	for fi, f := range m.Faces {
		fe := make([]int, len(f))
		for k := range f {
			e := supershape.NewEdge(f[k], f[(k+1)%len(f)])
			ei, ok := index[e]
			if !ok {
				ei = len(t.edges)
				index[e] = ei
				t.edges = append(t.edges, edgeInfo{e: e})
			}
			t.edges[ei].faces = append(t.edges[ei].faces, fi)
			fe[k] = ei
		}
		t.faceEdges[fi] = fe
	}
	return t
}

func centroid(m supershape.Mesh, f supershape.Face) supershape.Vec3 {
	var c supershape.Vec3
	for _, idx := range f {
		c = c.Add(m.Vertices[idx])
	}
	return c.Div(float64(len(f)))
}

func step(m supershape.Mesh, smooth bool) supershape.Mesh {
	t := newTopology(m)
	nv, ne := len(m.Vertices), len(t.edges)

	facePts := make([]supershape.Vec3, len(m.Faces))
	for fi, f := range m.Faces {
		facePts[fi] = centroid(m, f)
	}

	edgePts := make([]supershape.Vec3, ne)
	for ei, e := range t.edges {
		mid := m.Vertices[e.e[0]].Midpoint(m.Vertices[e.e[1]])
		if smooth && len(e.faces) == 2 {
			// (v0 + v1 + f0 + f1) / 4
			mid = mid.Midpoint(facePts[e.faces[0]].Midpoint(facePts[e.faces[1]]))
		}
		edgePts[ei] = mid
	}

	vertPts := make([]supershape.Vec3, nv)
	copy(vertPts, m.Vertices)
	if smooth {
		smoothVertices(m, t, facePts, vertPts)
	}

	out := supershape.Mesh{
		Vertices: make([]supershape.Vec3, 0, nv+ne+len(m.Faces)),
	}
	out.Vertices = append(out.Vertices, vertPts...)
	out.Vertices = append(out.Vertices, edgePts...)
	out.Vertices = append(out.Vertices, facePts...)

	var nfaces int
	for _, f := range m.Faces {
		nfaces += len(f)
	}
	out.Faces = make([]supershape.Face, 0, nfaces)
	if m.CornerUVs != nil {
		out.CornerUVs = make([][]vec.Vec2, 0, nfaces)
	}
	for fi, f := range m.Faces {
		k := len(f)
		center := nv + ne + fi
		fe := t.faceEdges[fi]
		for c := range k {
			prev := (c + k - 1) % k
			out.Faces = append(out.Faces, supershape.Face{f[c], nv + fe[c], center, nv + fe[prev]})
			if m.CornerUVs != nil {
				uvs := m.CornerUVs[fi]
				out.CornerUVs = append(out.CornerUVs, []vec.Vec2{
					uvs[c],
					midUV(uvs[c], uvs[(c+1)%k]),
					centroidUV(uvs),
					midUV(uvs[prev], uvs[c]),
				})
			}
		}
	}
	return out
}

// smoothVertices moves the original vertices to their Catmull-Clark
// positions.
//
// An interior vertex P of valence n moves to (Q + 2R + (n−3)P)/n, where Q is
// the average of the adjacent face points and R the average of the incident
// edge midpoints. A vertex on exactly two boundary edges with neighbours a
// and b moves to 3/4·P + 1/8·(a+b). Other boundary vertices are corners and
// stay put.
func smoothVertices(m supershape.Mesh, t topology, facePts, out []supershape.Vec3) {
	nv := len(m.Vertices)
	faceSum := make([]supershape.Vec3, nv)
	faceN := make([]int, nv)
	for fi, f := range m.Faces {
		for _, idx := range f {
			faceSum[idx] = faceSum[idx].Add(facePts[fi])
			faceN[idx]++
		}
	}

	midSum := make([]supershape.Vec3, nv)
	valence := make([]int, nv)
	boundary := make([][]int, nv)
	for _, e := range t.edges {
		a, b := e.e[0], e.e[1]
		mid := m.Vertices[a].Midpoint(m.Vertices[b])
		for _, v := range [2]int{a, b} {
			midSum[v] = midSum[v].Add(mid)
			valence[v]++
		}
		if len(e.faces) != 2 {
			boundary[a] = append(boundary[a], b)
			boundary[b] = append(boundary[b], a)
		}
	}

	for v := range nv {
		p := m.Vertices[v]
		switch {
		case len(boundary[v]) == 2:
			a, b := m.Vertices[boundary[v][0]], m.Vertices[boundary[v][1]]
			out[v] = p.Mul(0.75).Add(a.Add(b).Mul(0.125))
		case len(boundary[v]) > 0:
			out[v] = p
		case valence[v] >= 3 && faceN[v] > 0:
			n := float64(valence[v])
			q := faceSum[v].Div(float64(faceN[v]))
			r := midSum[v].Div(n)
			out[v] = q.Add(r.Mul(2)).Add(p.Mul(n - 3)).Div(n)
		default:
			out[v] = p
		}
	}
}

func midUV(a, b vec.Vec2) vec.Vec2 {
	return a.Add(b).Mul(0.5)
}

func centroidUV(uvs []vec.Vec2) vec.Vec2 {
	var c vec.Vec2
	for _, uv := range uvs {
		c = c.Add(uv)
	}
	return c.Mul(1 / float64(len(uvs)))
}
