package supershape

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Params are the six parameters of one Superformula curve.
//
// M is the angular symmetry order (the number of lobes; 0 yields a circle).
// A and B are the denominators of the cosine and sine terms and must be
// non-zero. N1, N2 and N3 are the exponents; N1 must be non-zero because the
// formula raises to the power −1/N1.
//
// A supershape needs two Params: one for the longitude sweep and one for the
// latitude sweep.
type Params struct {
	M  float64 `toml:"m" yaml:"m"`
	A  float64 `toml:"a" yaml:"a"`
	B  float64 `toml:"b" yaml:"b"`
	N1 float64 `toml:"n1" yaml:"n1"`
	N2 float64 `toml:"n2" yaml:"n2"`
	N3 float64 `toml:"n3" yaml:"n3"`
}

func (p Params) String() string {
	return fmt.Sprintf("{m=%g a=%g b=%g n1=%g n2=%g n3=%g}", p.M, p.A, p.B, p.N1, p.N2, p.N3)
}

// Validate reports a *DomainError if p cannot be evaluated: A, B or N1 is
// zero, or any parameter is infinite or NaN.
func (p Params) Validate() error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"m", p.M}, {"a", p.A}, {"b", p.B},
		{"n1", p.N1}, {"n2", p.N2}, {"n3", p.N3},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &DomainError{Param: f.name, Value: f.v, Msg: "parameter must be finite"}
		}
	}
	switch {
	case p.A == 0:
		return &DomainError{Param: "a", Value: p.A, Msg: "denominator must be non-zero"}
	case p.B == 0:
		return &DomainError{Param: "b", Value: p.B, Msg: "denominator must be non-zero"}
	case p.N1 == 0:
		return &DomainError{Param: "n1", Value: p.N1, Msg: "exponent must be non-zero"}
	}
	return nil
}

// Radius evaluates the Superformula for p at the given angle, in radians:
//
//	r(φ) = (|cos(mφ/4)/a|^n2 + |sin(mφ/4)/b|^n3)^(−1/n1)
//
// It returns a *DomainError if p is invalid (see [Params.Validate]) or if the
// radius is not a finite number. Radius never substitutes a value for an
// invalid result.
func (p Params) Radius(angle float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p.radius(angle)
}

// Radius is shorthand for p.Radius(angle).
func Radius(p Params, angle float64) (float64, error) {
	return p.Radius(angle)
}

// radius is Radius without parameter validation.
func (p Params) radius(angle float64) (float64, error) {
	s, c := math.Sincos(p.M * angle / 4)
	t1 := math.Pow(math.Abs(c/p.A), p.N2)
	t2 := math.Pow(math.Abs(s/p.B), p.N3)
	r := math.Pow(t1+t2, -1/p.N1)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, &DomainError{Msg: fmt.Sprintf("radius at angle %g is %g", angle, r)}
	}
	return r, nil
}

// Outline samples the 2D Superformula curve of p at n evenly spaced angles
// in [−π, π), returning the points r(φ)·(cos φ, sin φ). The curve is closed;
// the point at +π is not repeated. n must lie between [MinSegments] and
// [MaxVertices].
func (p Params) Outline(n int) ([]vec.Vec2, error) {
	if n < MinSegments || n > MaxVertices {
		return nil, newConfigError("outline samples", "got %d, want between %d and %d", n, MinSegments, MaxVertices)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]vec.Vec2, n)
	for i := range n {
		th := -math.Pi + 2*math.Pi*float64(i)/float64(n)
		r, err := p.radius(th)
		if err != nil {
			return nil, &SampleError{Axis: Longitude, Index: i, Angle: th, Err: err}
		}
		s, c := math.Sincos(th)
		out[i] = vec.Vec2{X: r * c, Y: r * s}
	}
	return out, nil
}
