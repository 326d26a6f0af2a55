package supershape

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Vec(3, 4, 5)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2, 2)), Vec(6, 8, 10), epsilon)
	assertNear(t, p.Transform(UniformScale(-1)), Vec(-3, -4, -5), epsilon)
	assertNear(t, p.Transform(RotateZ(math.Pi/2)), Vec(-4, 3, 5), epsilon)
	assertNear(t, p.Transform(RotateX(math.Pi/2)), Vec(3, -5, 4), epsilon)
	assertNear(t, p.Transform(RotateY(math.Pi/2)), Vec(5, 4, -3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6, 7))), Vec(8, 10, 12), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13}
	a2 := RotateX(0.3).ThenScale(1, 2, 3).ThenTranslate(Vec(-1, 0, 1))

	for _, p := range []Vec3{Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1), Vec(1, 1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13}
	aInv := a.Invert()

	for _, p := range []Vec3{Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1), Vec(1, 1, 1)} {
		assertNear(t, p.Transform(aInv).Transform(a), p, epsilon)
		assertNear(t, p.Transform(a).Transform(aInv), p, epsilon)
	}
}

func TestAffineDeterminant(t *testing.T) {
	if d := Scale(2, 3, 4).Determinant(); d != 24 {
		t.Errorf("got determinant %v, want 24", d)
	}
	if d := Scale(1, 1, -1).Determinant(); d != -1 {
		t.Errorf("got determinant %v, want -1", d)
	}
	if d := RotateZ(1).Determinant(); math.Abs(d-1) > 1e-12 {
		t.Errorf("got determinant %v, want 1", d)
	}
	if !Scale(0, 1, 1).Invert().IsNaN() && !Scale(0, 1, 1).Invert().IsInf() {
		t.Error("inverting a singular transform should produce non-finite coefficients")
	}
}

func TestTransformBoxBoundingBox(t *testing.T) {
	b := Box3{Min: Vec(0, 0, 0), Max: Vec(1, 2, 3)}
	got := RotateZ(math.Pi / 2).TransformBoxBoundingBox(b)
	want := Box3{Min: Vec(-2, 0, 0), Max: Vec(0, 1, 3)}
	diff(t, want, got, approx(1e-12))

	if !Identity.TransformBoxBoundingBox(EmptyBox3()).IsEmpty() {
		t.Error("transformed empty box should stay empty")
	}
}

func TestAffineCompose(t *testing.T) {
	const epsilon = 1e-12
	origin := Vec3{}

	aff := Affine{1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13}
	diff(t, aff, NewAffine(aff.Coefficients()))

	moved := Scale(2, 2, 2).WithTranslation(Vec(1, 2, 3))
	diff(t, Vec(1, 2, 3), moved.Translation())
	assertNear(t, Vec(1, 1, 1).Transform(moved), Vec(3, 4, 5), epsilon)

	assertNear(t, origin.Transform(Translate(Vec(1, 0, 0)).ThenRotateZ(math.Pi/2)), Vec(0, 1, 0), epsilon)
	assertNear(t, origin.Transform(Scale(2, 2, 2).PreTranslate(Vec(1, 0, 0))), Vec(2, 0, 0), epsilon)
	assertNear(t, origin.Transform(Scale(2, 2, 2).ThenTranslate(Vec(1, 0, 0))), Vec(1, 0, 0), epsilon)
	assertNear(t, Vec(1, 1, 1).Transform(Translate(Vec(1, 0, 0)).PreScale(3, 1, 1)), Vec(4, 1, 1), epsilon)

	// Directions ignore the translation.
	dir := Translate(Vec(5, 5, 5)).ThenScale(2, 1, 1).TransformVector(Vec(1, 1, 1))
	assertNear(t, dir, Vec(2, 1, 1), epsilon)
}
