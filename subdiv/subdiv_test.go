package subdiv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"honnef.co/go/supershape"
)

func cube() supershape.Mesh {
	return supershape.Mesh{
		Vertices: []supershape.Vec3{
			supershape.Vec(-1, -1, -1), supershape.Vec(1, -1, -1),
			supershape.Vec(1, 1, -1), supershape.Vec(-1, 1, -1),
			supershape.Vec(-1, -1, 1), supershape.Vec(1, -1, 1),
			supershape.Vec(1, 1, 1), supershape.Vec(-1, 1, 1),
		},
		Faces: []supershape.Face{
			{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
			{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
		},
	}
}

var square = []supershape.Vec3{
	supershape.Vec(0, 0, 0), supershape.Vec(1, 0, 0),
	supershape.Vec(1, 1, 0), supershape.Vec(0, 1, 0),
}

func numEdges(m supershape.Mesh) int {
	var n int
	for range m.Edges() {
		n++
	}
	return n
}

func assertNear(t *testing.T, want, got supershape.Vec3) {
	t.Helper()
	assert.InDelta(t, 0, want.Distance(got), 1e-12, "want %s, got %s", want, got)
}

func TestCounts(t *testing.T) {
	built, err := supershape.Build(
		supershape.Params{M: 5, A: 1, B: 1, N1: 0.5, N2: 1, N3: 1},
		supershape.Params{M: 3, A: 1, B: 1, N1: 1, N2: 1, N3: 1},
		supershape.Res(8, 4), supershape.Uniform(1))
	require.NoError(t, err)

	for _, m := range []supershape.Mesh{cube(), built} {
		for _, scheme := range []Scheme{SchemeLinear, SchemeCatmullClark} {
			out, err := Subdivide(m, 1, scheme)
			require.NoError(t, err)
			require.NoError(t, out.Validate())

			corners := 0
			for _, f := range m.Faces {
				corners += len(f)
			}
			assert.Equal(t, m.NumVertices()+numEdges(m)+m.NumFaces(), out.NumVertices(), scheme)
			assert.Equal(t, corners, out.NumFaces(), scheme)
			_, quads, _ := out.FaceCounts()
			assert.Equal(t, out.NumFaces(), quads, "%s produced non-quads", scheme)
			assert.Equal(t, 2, out.EulerCharacteristic(), scheme)
			assert.Equal(t, m.CornerUVs != nil, out.CornerUVs != nil)
		}
	}
}

func TestLinear(t *testing.T) {
	m := cube()
	out, err := Linear(m, 1)
	require.NoError(t, err)

	assert.Equal(t, m.Vertices, out.Vertices[:8])
	// The first edge seen is 0-3, the first face the bottom.
	assertNear(t, supershape.Vec(-1, 0, -1), out.Vertices[8])
	assertNear(t, supershape.Vec(0, 0, -1), out.Vertices[8+12])
	assert.Equal(t, supershape.Face{0, 8, 20, 11}, out.Faces[0])

	b := m.Bounds()
	for _, v := range out.Vertices {
		assert.True(t, b.Contains(v), "%s escapes the cube", v)
	}
}

func TestCatmullClarkCube(t *testing.T) {
	m := cube()
	out, err := CatmullClark(m, 1)
	require.NoError(t, err)

	assertNear(t, supershape.Uniform(-5.0/9), out.Vertices[0])
	assertNear(t, supershape.Uniform(5.0/9), out.Vertices[6])
	assertNear(t, supershape.Vec(-0.75, 0, -0.75), out.Vertices[8])
	assertNear(t, supershape.Vec(0, 0, -1), out.Vertices[20])

	out, err = CatmullClark(m, 3)
	require.NoError(t, err)
	for _, v := range out.Vertices {
		d := v.Hypot()
		assert.Less(t, d, 3.0/2)
		assert.Greater(t, d, 0.5)
	}
}

func TestCatmullClarkBoundary(t *testing.T) {
	m := supershape.Mesh{
		Vertices: square,
		Faces:    []supershape.Face{{0, 1, 2, 3}},
	}
	out, err := CatmullClark(m, 1)
	require.NoError(t, err)
	assertNear(t, supershape.Vec(0.125, 0.125, 0), out.Vertices[0])
	assertNear(t, supershape.Vec(0.875, 0.875, 0), out.Vertices[2])
	// Boundary edges keep their midpoints.
	assertNear(t, supershape.Vec(0.5, 0, 0), out.Vertices[4])
	assertNear(t, supershape.Vec(0.5, 0.5, 0), out.Vertices[8])
}

func TestUVs(t *testing.T) {
	m := supershape.Mesh{
		Vertices:  square,
		Faces:     []supershape.Face{{0, 1, 2, 3}},
		CornerUVs: [][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
	}
	out, err := Linear(m, 1)
	require.NoError(t, err)
	require.Len(t, out.CornerUVs, 4)
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0, Y: 0.5}}
	if d := cmp.Diff(want, out.CornerUVs[0], cmpopts.EquateApprox(0, 1e-15)); d != "" {
		t.Error(d)
	}
}

func TestUVHelpers(t *testing.T) {
	a, b := vec.Vec2{X: 0.25, Y: 1}, vec.Vec2{X: 0.75, Y: 0}
	assert.Equal(t, vec.Vec2{X: 0.5, Y: 0.5}, midUV(a, b))

	tri := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1.5}}
	got := centroidUV(tri)
	assert.InDelta(t, 0.5, got.X, 1e-15)
	assert.InDelta(t, 0.5, got.Y, 1e-15)
}

func TestSubdivideLevels(t *testing.T) {
	m := cube()
	orig := m.Clone()

	out, err := Subdivide(m, 0, SchemeCatmullClark)
	require.NoError(t, err)
	assert.Equal(t, m, out)
	out.Vertices[0].X = 42
	assert.Equal(t, orig, m, "zero levels returned shared memory")

	out, err = Subdivide(m, 2, SchemeCatmullClark)
	require.NoError(t, err)
	assert.Equal(t, 6*4*4, out.NumFaces())
	assert.Equal(t, orig, m, "input was modified")
}

func TestSubdivideErrors(t *testing.T) {
	var ce *supershape.ConfigError

	_, err := Subdivide(cube(), -1, SchemeLinear)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "subdivision levels", ce.Field)

	_, err = Subdivide(cube(), 1, Scheme(5))
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "subdivision scheme", ce.Field)

	bad := cube()
	bad.Faces[0] = supershape.Face{0, 1}
	_, err = Subdivide(bad, 1, SchemeLinear)
	assert.Error(t, err)
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "linear", SchemeLinear.String())
	assert.Equal(t, "catmull-clark", SchemeCatmullClark.String())
	assert.Equal(t, "Scheme(9)", Scheme(9).String())
}

func BenchmarkCatmullClark(b *testing.B) {
	m, err := supershape.Build(
		supershape.Params{M: 7, A: 1, B: 1, N1: 0.2, N2: 1.7, N3: 1.7},
		supershape.Params{M: 7, A: 1, B: 1, N1: 0.2, N2: 1.7, N3: 1.7},
		supershape.Res(64, 64), supershape.Uniform(1))
	require.NoError(b, err)
	for b.Loop() {
		if _, err := CatmullClark(m, 1); err != nil {
			b.Fatal(err)
		}
	}
}
