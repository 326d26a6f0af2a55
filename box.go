package supershape

import (
	"fmt"
	"math"
)

// Box3 is an axis-aligned box, described by its minimum and maximum corners.
//
// A box with Min greater than Max on any axis is empty. The zero value is the
// degenerate box containing only the origin; use [EmptyBox3] as the starting
// point for accumulating bounds.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox3 returns a box that contains nothing. The union of an empty box
// and any point is the zero-volume box around that point.
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBox3FromPoints returns the smallest box enclosing p0 and p1.
func NewBox3FromPoints(p0, p1 Vec3) Box3 {
	return EmptyBox3().UnionPoint(p0).UnionPoint(p1)
}

func (b Box3) String() string {
	return fmt.Sprintf("[%s, %s]", b.Min, b.Max)
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

func (b Box3) Center() Vec3 {
	return b.Min.Midpoint(b.Max)
}

// Contains reports whether pt lies inside the box. Points on the boundary are
// contained.
func (b Box3) Contains(pt Vec3) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y &&
		pt.Z >= b.Min.Z && pt.Z <= b.Max.Z
}

// Union returns the smallest box enclosing b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{
		Min: Vec3{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Vec3{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
	}
}

// UnionPoint computes the union with one point.
//
// A succession of UnionPoint operations on a series of points, starting from
// [EmptyBox3], yields their enclosing box.
func (b Box3) UnionPoint(pt Vec3) Box3 {
	return Box3{
		Min: Vec3{min(b.Min.X, pt.X), min(b.Min.Y, pt.Y), min(b.Min.Z, pt.Z)},
		Max: Vec3{max(b.Max.X, pt.X), max(b.Max.Y, pt.Y), max(b.Max.Z, pt.Z)},
	}
}

// Inflate expands the box by d in every direction.
func (b Box3) Inflate(d float64) Box3 {
	return Box3{
		Min: b.Min.Sub(Uniform(d)),
		Max: b.Max.Add(Uniform(d)),
	}
}

// MaxSide returns the largest extent of the box.
func (b Box3) MaxSide() float64 {
	sz := b.Size()
	return max(sz.X, sz.Y, sz.Z)
}
