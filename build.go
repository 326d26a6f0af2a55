package supershape

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
)

// MinSegments is the smallest number of segments per axis that encloses a
// volume.
const MinSegments = 3

// MaxVertices is the largest number of vertices a single mesh may have. It
// bounds the memory a resolution can demand before anything is allocated.
const MaxVertices = 1 << 26

// Resolution is the number of grid segments along each axis of a supershape.
type Resolution struct {
	// Long is the number of longitude segments, the columns around the z axis.
	Long int `toml:"long" yaml:"long"`
	// Lat is the number of latitude segments from the south to the north pole.
	Lat int `toml:"lat" yaml:"lat"`
}

// Res returns the resolution long×lat.
func Res(long, lat int) Resolution {
	return Resolution{Long: long, Lat: lat}
}

// Validate reports a *ConfigError if either axis has fewer than
// [MinSegments] segments, or if a mesh built at r would have more than
// [MaxVertices] vertices.
func (r Resolution) Validate() error {
	if r.Long < MinSegments {
		return newConfigError("resolution", "longitude segments %d below minimum %d", r.Long, MinSegments)
	}
	if r.Lat < MinSegments {
		return newConfigError("resolution", "latitude segments %d below minimum %d", r.Lat, MinSegments)
	}
	// Per-axis checks first, so the product can't overflow.
	if r.Long > MaxVertices || r.Lat > MaxVertices ||
		int64(r.Long)*int64(r.Lat-1)+2 > MaxVertices {
		return newConfigError("resolution", "%d×%d segments exceed %d vertices", r.Long, r.Lat, MaxVertices)
	}
	return nil
}

// NumVertices returns the number of vertices of a mesh built at r: one ring
// of r.Long vertices per interior latitude plus the two pole apexes.
func (r Resolution) NumVertices() int {
	return r.Long*(r.Lat-1) + 2
}

// NumFaces returns the number of faces of a mesh built at r:
// r.Long·(r.Lat−2) quads plus r.Long triangles at each pole.
func (r Resolution) NumFaces() int {
	return r.Long * r.Lat
}

// BuildOptions controls optional behavior of [BuildOpt].
type BuildOptions struct {
	// Workers is the number of goroutines computing latitude rings. Zero and
	// one build serially; a negative value uses GOMAXPROCS. The mesh is
	// identical regardless of the number of workers.
	Workers int
	// NoUVs suppresses the per-corner texture coordinates.
	NoUVs bool
}

// Build builds the supershape that is the spherical product of the
// Superformula curves long and lat, sampled at res and scaled
// component-wise by scale. Use [Uniform] for uniform scaling.
//
// Build is BuildOpt with default options.
func Build(long, lat Params, res Resolution, scale Vec3) (Mesh, error) {
	return BuildOpt(long, lat, res, scale, BuildOptions{})
}

// BuildOpt builds a supershape mesh.
//
// Longitudes θ are sampled at −π + 2π·i/res.Long and latitudes φ at
// −π/2 + π·j/res.Lat. Each sample maps to
//
//	x = r1(θ)·cos θ · r2(φ)·cos φ
//	y = r1(θ)·sin θ · r2(φ)·cos φ
//	z = r2(φ)·sin φ
//
// where r1 and r2 are the Superformula radii of long and lat.
//
// The longitude seam is welded: the sample at θ = +π coincides with the one
// at −π and is not emitted, the last column of faces wraps around to the
// first. The two poles collapse into single apex vertices connected to the
// nearest ring by a fan of triangles.
//
// Vertices are ordered ring-major: index 0 is the south pole, followed by
// res.Lat−1 rings of res.Long vertices each, from south to north, and
// finally the north pole. Faces follow the same order: the south fan, the
// quad rows, then the north fan. All faces wind counter-clockwise seen from
// outside. A scale with an odd number of negative components mirrors the
// shape; the face winding is reversed accordingly so faces keep facing
// outwards.
//
// BuildOpt fails with a *ConfigError if res or scale is invalid, and with a
// *SampleError wrapping a *DomainError if either parameter set cannot be
// evaluated. It never returns a partial mesh.
func BuildOpt(long, lat Params, res Resolution, scale Vec3, opts BuildOptions) (Mesh, error) {
	if err := res.Validate(); err != nil {
		return Mesh{}, err
	}
	if !scale.IsFinite() {
		return Mesh{}, newConfigError("scale", "%s is not finite", scale)
	}

	for _, ax := range []struct {
		axis Axis
		p    Params
	}{{Longitude, long}, {Latitude, lat}} {
		if err := ax.p.Validate(); err != nil {
			return Mesh{}, &SampleError{Axis: ax.axis, Index: -1, Angle: math.NaN(), Err: err}
		}
	}

	lons, err := sampleAxis(Longitude, long, res.Long, -math.Pi, 2*math.Pi)
	if err != nil {
		return Mesh{}, err
	}
	lats, err := sampleAxis(Latitude, lat, res.Lat+1, -math.Pi/2, math.Pi)
	if err != nil {
		return Mesh{}, err
	}

	g := grid{res: res, lons: lons, lats: lats, scale: scale}
	verts, err := g.vertices(opts.workers())
	if err != nil {
		return Mesh{}, err
	}
	m := Mesh{Vertices: verts}
	m.Faces, m.CornerUVs = g.faces(!opts.NoUVs)
	if scale.X*scale.Y*scale.Z < 0 {
		m.reverseWinding()
	}

	Logger().Debug("supershape: built mesh",
		"long", res.Long, "lat", res.Lat,
		"workers", opts.workers(),
		"vertices", len(m.Vertices), "faces", len(m.Faces))
	return m, nil
}

func (opts BuildOptions) workers() int {
	if opts.Workers < 0 {
		return runtime.GOMAXPROCS(0)
	}
	return max(opts.Workers, 1)
}

// sample is one evaluated angle of an axis.
type sample struct {
	angle    float64
	r        float64
	sin, cos float64
}

// sampleAxis evaluates p at n angles spread evenly over span, starting at
// start. The latitude axis includes both ends of its span; the longitude
// axis excludes the end, which coincides with the start. p must be valid.
// The first failing sample in ascending order is reported.
func sampleAxis(axis Axis, p Params, n int, start, span float64) ([]sample, error) {
	div := float64(n)
	if axis == Latitude {
		div = float64(n - 1)
	}
	out := make([]sample, n)
	for k := range out {
		a := start + span*float64(k)/div
		r, err := p.radius(a)
		if err != nil {
			return nil, &SampleError{Axis: axis, Index: k, Angle: a, Err: err}
		}
		s, c := math.Sincos(a)
		out[k] = sample{angle: a, r: r, sin: s, cos: c}
	}
	return out, nil
}

// grid turns evaluated samples into mesh vertices and faces.
type grid struct {
	res   Resolution
	lons  []sample // res.Long samples, seam excluded
	lats  []sample // res.Lat+1 samples, poles included
	scale Vec3
}

// index returns the vertex index of longitude i on latitude ring j, for
// 1 ≤ j < res.Lat. i wraps around the seam.
func (g *grid) index(i, j int) int {
	return 1 + (j-1)*g.res.Long + i%g.res.Long
}

func (g *grid) south() int { return 0 }
func (g *grid) north() int { return g.res.NumVertices() - 1 }

func (g *grid) vertices(workers int) ([]Vec3, error) {
	out := make([]Vec3, g.res.NumVertices())
	for _, pole := range []struct {
		idx, j int
	}{
		{g.south(), 0},
		{g.north(), g.res.Lat},
	} {
		lat := g.lats[pole.j]
		v := Vec3{Z: lat.r * lat.sin}.MulComponents(g.scale)
		if !v.IsFinite() {
			return nil, g.overflow(lat, pole.j, v)
		}
		out[pole.idx] = v
	}

	if workers <= 1 {
		for j := 1; j < g.res.Lat; j++ {
			if err := g.ring(out, j); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	// Rings write disjoint parts of out. errs is scanned in order so that the
	// reported error doesn't depend on scheduling.
	errs := make([]error, g.res.Lat)
	var eg errgroup.Group
	eg.SetLimit(workers)
	for j := 1; j < g.res.Lat; j++ {
		eg.Go(func() error {
			errs[j] = g.ring(out, j)
			return errs[j]
		})
	}
	if err := eg.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
	}
	return out, nil
}

// ring computes the vertices of latitude ring j.
func (g *grid) ring(out []Vec3, j int) error {
	lat := g.lats[j]
	for i, lon := range g.lons {
		v := Vec3{
			X: lon.r * lon.cos * lat.r * lat.cos,
			Y: lon.r * lon.sin * lat.r * lat.cos,
			Z: lat.r * lat.sin,
		}.MulComponents(g.scale)
		if !v.IsFinite() {
			return g.overflow(lat, j, v)
		}
		out[g.index(i, j)] = v
	}
	return nil
}

func (g *grid) overflow(lat sample, j int, v Vec3) error {
	return &SampleError{
		Axis:  Latitude,
		Index: j,
		Angle: lat.angle,
		Err:   &DomainError{Msg: "vertex " + v.String() + " is not finite"},
	}
}

func (g *grid) faces(withUVs bool) ([]Face, [][]vec.Vec2) {
	nl, nr := g.res.Long, g.res.Lat
	faces := make([]Face, 0, g.res.NumFaces())
	var uvs [][]vec.Vec2
	if withUVs {
		uvs = make([][]vec.Vec2, 0, g.res.NumFaces())
	}
	uv := func(i, j int) vec.Vec2 {
		return vec.Vec2{X: float64(i) / float64(nl), Y: 1 - float64(j)/float64(nr)}
	}
	apex := func(i, j int) vec.Vec2 {
		return vec.Vec2{X: (float64(i) + 0.5) / float64(nl), Y: 1 - float64(j)/float64(nr)}
	}

	for i := range nl {
		faces = append(faces, Face{g.south(), g.index(i+1, 1), g.index(i, 1)})
		if withUVs {
			uvs = append(uvs, []vec.Vec2{apex(i, 0), uv(i+1, 1), uv(i, 1)})
		}
	}
	for j := 1; j < nr-1; j++ {
		for i := range nl {
			faces = append(faces, Face{g.index(i, j), g.index(i+1, j), g.index(i+1, j+1), g.index(i, j+1)})
			if withUVs {
				uvs = append(uvs, []vec.Vec2{uv(i, j), uv(i+1, j), uv(i+1, j+1), uv(i, j+1)})
			}
		}
	}
	for i := range nl {
		faces = append(faces, Face{g.index(i, nr-1), g.index(i+1, nr-1), g.north()})
		if withUVs {
			uvs = append(uvs, []vec.Vec2{uv(i, nr-1), uv(i+1, nr-1), apex(i, nr)})
		}
	}
	return faces, uvs
}
