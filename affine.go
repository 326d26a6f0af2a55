package supershape

import (
	"math"
)

// Affine describes a 3D affine transform via coefficients.
//
// If the coefficients are (n0, n1, ..., n11), then the resulting
// transformation represents this augmented matrix:
//
//	| n0 n3 n6 n9  |
//	| n1 n4 n7 n10 |
//	| n2 n5 n8 n11 |
//	| 0  0  0  1   |
//
// That is, the coefficients are stored column by column, with the last column
// holding the translation. The idea is that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5, N6, N7, N8, N9, N10, N11 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x, y and z.
func Scale(x, y, z float64) Affine {
	return Affine{x, 0, 0, 0, y, 0, 0, 0, z, 0, 0, 0}
}

// UniformScale creates an affine transform scaling all axes by k.
func UniformScale(k float64) Affine {
	return Scale(k, k, k)
}

// Translate creates an affine transform representing translation.
func Translate(v Vec3) Affine {
	return Affine{1, 0, 0, 0, 1, 0, 0, 0, 1, v.X, v.Y, v.Z}
}

// RotateX creates an affine transform representing a rotation of th radians
// about the x axis. A positive angle rotates the positive y axis into the
// positive z axis.
func RotateX(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{1, 0, 0, 0, cos, sin, 0, -sin, cos, 0, 0, 0}
}

// RotateY creates an affine transform representing a rotation of th radians
// about the y axis. A positive angle rotates the positive z axis into the
// positive x axis.
func RotateY(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, 0, -sin, 0, 1, 0, sin, 0, cos, 0, 0, 0}
}

// RotateZ creates an affine transform representing a rotation of th radians
// about the z axis. A positive angle rotates the positive x axis into the
// positive y axis.
func RotateZ(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, 0, -sin, cos, 0, 0, 0, 1, 0, 0, 0}
}

// Coefficients returns the the coefficients of the transform.
func (aff Affine) Coefficients() [12]float64 {
	return [12]float64{
		aff.N0, aff.N1, aff.N2,
		aff.N3, aff.N4, aff.N5,
		aff.N6, aff.N7, aff.N8,
		aff.N9, aff.N10, aff.N11,
	}
}

// NewAffine creates a new affine transformation from an array of coefficients.
// Alternatively, you can initialize the fields of [Affine] manually.
func NewAffine(n [12]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7], n[8], n[9], n[10], n[11]}
}

// linear applies the linear part of aff to v, ignoring the translation.
func (aff Affine) linear(v Vec3) Vec3 {
	return Vec3{
		X: aff.N0*v.X + aff.N3*v.Y + aff.N6*v.Z,
		Y: aff.N1*v.X + aff.N4*v.Y + aff.N7*v.Z,
		Z: aff.N2*v.X + aff.N5*v.Y + aff.N8*v.Z,
	}
}

// TransformVector applies aff to v, treating v as a direction. The
// translation is ignored.
func (aff Affine) TransformVector(v Vec3) Vec3 {
	return aff.linear(v)
}

func (aff Affine) Mul(o Affine) Affine {
	c0 := aff.linear(Vec3{o.N0, o.N1, o.N2})
	c1 := aff.linear(Vec3{o.N3, o.N4, o.N5})
	c2 := aff.linear(Vec3{o.N6, o.N7, o.N8})
	t := aff.linear(Vec3{o.N9, o.N10, o.N11}).Add(aff.Translation())
	return Affine{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
		t.X, t.Y, t.Z,
	}
}

// PreScale creates a scale by (x, y, z) followed by aff.
//
// Equivalent to "aff * Scale(x, y, z)"
func (aff Affine) PreScale(x, y, z float64) Affine {
	return aff.Mul(Scale(x, y, z))
}

// ThenScale creates aff followed by a scale of (x, y, z).
//
// Equivalent to "Scale(x, y, z) * aff"
func (aff Affine) ThenScale(x, y, z float64) Affine {
	return Scale(x, y, z).Mul(aff)
}

// PreTranslate creates a translation of v followed by aff.
//
// Equivalent to "aff * Translate(v)"
func (aff Affine) PreTranslate(v Vec3) Affine {
	return aff.Mul(Translate(v))
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec3) Affine {
	aff.N9 += v.X
	aff.N10 += v.Y
	aff.N11 += v.Z
	return aff
}

// ThenRotateZ creates aff followed by a rotation of th about the z axis.
//
// Equivalent to "RotateZ(th) * aff"
func (aff Affine) ThenRotateZ(th float64) Affine {
	return RotateZ(th).Mul(aff)
}

// Determinant computes the determinant of the linear part.
func (aff Affine) Determinant() float64 {
	return aff.N0*(aff.N4*aff.N8-aff.N7*aff.N5) -
		aff.N3*(aff.N1*aff.N8-aff.N7*aff.N2) +
		aff.N6*(aff.N1*aff.N5-aff.N4*aff.N2)
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	a, b, c := aff.N0, aff.N3, aff.N6
	d, e, f := aff.N1, aff.N4, aff.N7
	g, h, i := aff.N2, aff.N5, aff.N8
	invDet := 1 / aff.Determinant()
	inv := Affine{
		N0: invDet * (e*i - f*h),
		N1: invDet * (f*g - d*i),
		N2: invDet * (d*h - e*g),
		N3: invDet * (c*h - b*i),
		N4: invDet * (a*i - c*g),
		N5: invDet * (b*g - a*h),
		N6: invDet * (b*f - c*e),
		N7: invDet * (c*d - a*f),
		N8: invDet * (a*e - b*d),
	}
	t := inv.linear(aff.Translation()).Negate()
	inv.N9, inv.N10, inv.N11 = t.X, t.Y, t.Z
	return inv
}

// Translation returns the translation component of this affine transformation.
func (aff Affine) Translation() Vec3 {
	return Vec3{
		X: aff.N9,
		Y: aff.N10,
		Z: aff.N11,
	}
}

// WithTranslation replaces the translation portion of this affine
// transformation.
func (aff Affine) WithTranslation(v Vec3) Affine {
	aff.N9 = v.X
	aff.N10 = v.Y
	aff.N11 = v.Z
	return aff
}

func (aff Affine) IsInf() bool {
	for _, n := range aff.Coefficients() {
		if math.IsInf(n, 0) {
			return true
		}
	}
	return false
}

func (aff Affine) IsNaN() bool {
	for _, n := range aff.Coefficients() {
		if math.IsNaN(n) {
			return true
		}
	}
	return false
}

// TransformBoxBoundingBox computes the bounding box of a transformed box.
//
// The result encloses all eight transformed corners. If the transform is
// axis-aligned, the bounding box is tight.
func (aff Affine) TransformBoxBoundingBox(b Box3) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox3()
	for _, x := range [2]float64{b.Min.X, b.Max.X} {
		for _, y := range [2]float64{b.Min.Y, b.Max.Y} {
			for _, z := range [2]float64{b.Min.Z, b.Max.Z} {
				out = out.UnionPoint(Vec(x, y, z).Transform(aff))
			}
		}
	}
	return out
}
