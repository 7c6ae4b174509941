// Package geom provides the small amount of 2D vector and affine matrix
// math the engine needs for rotated sprite drawing and collision.
package geom

import "github.com/chewxy/math32"

// Point is a position or direction in 2D space.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float32) Point {
	return Point{p.X * s, p.Y * s}
}

// Matrix is a 2x3 affine transform:
//
//	| A C | + | TX |
//	| B D |   | TY |
//
// mapping (x, y) to (A*x + C*y + TX, B*x + D*y + TY).
type Matrix struct {
	A, B, C, D, TX, TY float32
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a pure translation.
func Translation(x, y float32) Matrix {
	return Matrix{A: 1, D: 1, TX: x, TY: y}
}

// RotScaleTrans composes rotation about the local origin, then uniform
// scale, then translation. This is the transform order used by rotated
// sprite draws.
func RotScaleTrans(angle, scale float32, pos Point) Matrix {
	sin, cos := math32.Sincos(angle)
	return Matrix{
		A: cos * scale, B: sin * scale,
		C: -sin * scale, D: cos * scale,
		TX: pos.X, TY: pos.Y,
	}
}

// Apply maps a point through the transform.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.TX,
		Y: m.B*p.X + m.D*p.Y + m.TY,
	}
}

// Mul returns m * n, the transform that applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		TX: m.A*n.TX + m.C*n.TY + m.TX,
		TY: m.B*n.TX + m.D*n.TY + m.TY,
	}
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float32 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. The second return value is
// false when the matrix is singular (zero determinant).
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Det()
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	out := Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
	}
	out.TX = -(out.A*m.TX + out.C*m.TY)
	out.TY = -(out.B*m.TX + out.D*m.TY)
	return out, true
}

// Rect is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// TransformBounds maps the rectangle with corners (0,0)-(w,h) through m
// and returns the axis-aligned bounding box of the four mapped corners.
func (m Matrix) TransformBounds(w, h float32) Rect {
	corners := [4]Point{
		m.Apply(Point{0, 0}),
		m.Apply(Point{w, 0}),
		m.Apply(Point{0, h}),
		m.Apply(Point{w, h}),
	}
	r := Rect{MinX: corners[0].X, MinY: corners[0].Y, MaxX: corners[0].X, MaxY: corners[0].Y}
	for _, c := range corners[1:] {
		r.MinX = math32.Min(r.MinX, c.X)
		r.MinY = math32.Min(r.MinY, c.Y)
		r.MaxX = math32.Max(r.MaxX, c.X)
		r.MaxY = math32.Max(r.MaxY, c.Y)
	}
	return r
}

// Intersect returns the overlap of two rectangles and whether it is
// non-empty.
func (r Rect) Intersect(s Rect) (Rect, bool) {
	out := Rect{
		MinX: math32.Max(r.MinX, s.MinX),
		MinY: math32.Max(r.MinY, s.MinY),
		MaxX: math32.Min(r.MaxX, s.MaxX),
		MaxY: math32.Min(r.MaxY, s.MaxY),
	}
	return out, out.MinX < out.MaxX && out.MinY < out.MaxY
}
