package supershape

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// DefaultWeldThreshold is the merge distance used by hosts that close seams
// with a weld step.
const DefaultWeldThreshold = 1e-3

type cellKey [3]int64

// weldGrid hashes points into cubic cells at least as wide as the weld
// threshold, so that merge candidates lie in the same or an adjacent cell.
type weldGrid struct {
	origin Vec3
	cell   float64
}

// minCellFraction bounds the number of cells per axis, keeping cell
// coordinates well inside the int64 range.
const minCellFraction = 1e-12

func newWeldGrid(bounds Box3, threshold float64) weldGrid {
	if bounds.IsEmpty() {
		bounds = Box3{}
	}
	cell := max(threshold, bounds.MaxSide()*minCellFraction)
	if cell == 0 {
		cell = 1
	}
	return weldGrid{origin: bounds.Min, cell: cell}
}

func (g weldGrid) key(v Vec3) cellKey {
	d := v.Sub(g.origin)
	return cellKey{
		int64(math.Floor(d.X / g.cell)),
		int64(math.Floor(d.Y / g.cell)),
		int64(math.Floor(d.Z / g.cell)),
	}
}

// Weld returns a copy of m in which vertices closer than threshold to an
// earlier vertex are merged into it. Faces that lose corners are repaired by
// dropping consecutive duplicates; faces left with fewer than three distinct
// corners are removed. A threshold of zero merges exact duplicates only.
//
// Surviving vertices keep their relative order, so welding a mesh without
// duplicates returns an identical mesh.
func (m Mesh) Weld(threshold float64) (Mesh, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return Mesh{}, newConfigError("weld threshold", "%g is not a finite non-negative distance", threshold)
	}
	grid := newWeldGrid(m.Bounds(), threshold)

	remap := make([]int, len(m.Vertices))
	verts := make([]Vec3, 0, len(m.Vertices))
	buckets := make(map[cellKey][]int)
	for i, v := range m.Vertices {
		k := grid.key(v)
		found := -1
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, r := range buckets[cellKey{k[0] + dx, k[1] + dy, k[2] + dz}] {
						if (found < 0 || r < found) && verts[r].Distance(v) <= threshold {
							found = r
						}
					}
				}
			}
		}
		if found < 0 {
			found = len(verts)
			verts = append(verts, v)
			buckets[k] = append(buckets[k], found)
		}
		remap[i] = found
	}

	out := Mesh{
		Vertices: verts,
		Faces:    make([]Face, 0, len(m.Faces)),
	}
	if m.CornerUVs != nil {
		out.CornerUVs = make([][]vec.Vec2, 0, len(m.Faces))
	}
	var dropped int
	for fi, f := range m.Faces {
		nf := make(Face, 0, len(f))
		var nuv []vec.Vec2
		for k, idx := range f {
			r := remap[idx]
			if len(nf) > 0 && nf[len(nf)-1] == r {
				continue
			}
			nf = append(nf, r)
			if m.CornerUVs != nil {
				nuv = append(nuv, m.CornerUVs[fi][k])
			}
		}
		if len(nf) > 1 && nf[0] == nf[len(nf)-1] {
			nf = nf[:len(nf)-1]
			if nuv != nil {
				nuv = nuv[:len(nuv)-1]
			}
		}
		if !distinct(nf) {
			dropped++
			continue
		}
		out.Faces = append(out.Faces, nf)
		if m.CornerUVs != nil {
			out.CornerUVs = append(out.CornerUVs, nuv)
		}
	}

	Logger().Debug("supershape: welded mesh",
		"threshold", threshold,
		"merged", len(m.Vertices)-len(verts),
		"dropped faces", dropped)
	return out, nil
}

// distinct reports whether f has at least three corners and no repeated
// vertex.
func distinct(f Face) bool {
	if len(f) < 3 {
		return false
	}
	for i := range f {
		for j := i + 1; j < len(f); j++ {
			if f[i] == f[j] {
				return false
			}
		}
	}
	return true
}
