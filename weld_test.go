package supershape

import (
	"errors"
	"math"
	"testing"
)

func TestWeldBuiltMesh(t *testing.T) {
	for _, p := range []Params{unit, round} {
		m := mustBuild(t, p, p, Res(16, 8), Uniform(1))
		w, err := m.Weld(DefaultWeldThreshold)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, m, w)
	}
}

func TestWeldDuplicates(t *testing.T) {
	c := cube()
	m := c.Clone()
	// Let the second half of the faces use jittered copies of the vertices.
	for _, v := range c.Vertices {
		m.Vertices = append(m.Vertices, v.Add(Vec(1e-7, -1e-7, 0)))
	}
	for _, f := range m.Faces[3:] {
		for k := range f {
			f[k] += len(c.Vertices)
		}
	}
	w, err := m.Weld(1e-6)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, c, w)

	w, err = m.Weld(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Vertices) != len(m.Vertices) {
		t.Errorf("exact weld merged distinct vertices: %d -> %d", len(m.Vertices), len(w.Vertices))
	}
}

func TestWeldCollapsedFaces(t *testing.T) {
	m := Mesh{
		Vertices: []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1e-9, 0}, {0, 1, 0}},
		Faces:    []Face{{0, 1, 2, 3}, {1, 2, 3}, {3, 0, 1}},
	}
	w, err := m.Weld(1e-6)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, w.Vertices)
	diff(t, []Face{{0, 1, 2}, {2, 0, 1}}, w.Faces)
}

func TestWeldThreshold(t *testing.T) {
	for _, threshold := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := cube().Weld(threshold)
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("threshold %g: got %v, want *ConfigError", threshold, err)
		}
	}
}

func TestWeldTinyThreshold(t *testing.T) {
	m := cube().Transform(Translate(Vec(1e6, -1e6, 1e6)))
	w, err := m.Weld(1e-300)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, m, w)

	// Distinct vertices must land in distinct, representable cells rather
	// than piling up in one bucket.
	built := mustBuild(t, unit, unit, Res(32, 16), Uniform(1))
	for _, mesh := range []Mesh{m, built} {
		g := newWeldGrid(mesh.Bounds(), 1e-300)
		seen := map[cellKey]int{}
		for i, v := range mesh.Vertices {
			k := g.key(v)
			for _, c := range k {
				if c < 0 || c > 2e12 {
					t.Fatalf("vertex %d: cell %v out of range", i, k)
				}
			}
			if j, ok := seen[k]; ok {
				t.Fatalf("vertices %d and %d share cell %v", j, i, k)
			}
			seen[k] = i
		}
	}
}

func TestWeldGridEmpty(t *testing.T) {
	g := newWeldGrid(EmptyBox3(), 0)
	if g.cell != 1 || g.origin != (Vec3{}) {
		t.Errorf("got grid %+v for an empty mesh", g)
	}
	w, err := Mesh{}.Weld(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Vertices) != 0 || len(w.Faces) != 0 {
		t.Errorf("welding an empty mesh produced %d vertices, %d faces", len(w.Vertices), len(w.Faces))
	}
}
