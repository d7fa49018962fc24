package regioncount

import "image"

// Point is a 2D position in frame pixel coordinates.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

// Rect is an axis-aligned bounding box in frame pixel coordinates.
// X1 < X2 and Y1 < Y2 are expected from the tracker.
type Rect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

func NewRect(x1, y1, x2, y2 int) Rect {
	return Rect{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

func NewRectFrom(rect image.Rectangle) Rect {
	return Rect{
		X1: rect.Min.X,
		Y1: rect.Min.Y,
		X2: rect.Max.X,
		Y2: rect.Max.Y,
	}
}

func (r Rect) Width() int {
	return r.X2 - r.X1
}

func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

func (r Rect) Center() Point {
	return Point{
		X: float64(r.X1+r.X2) / 2.0,
		Y: float64(r.Y1+r.Y2) / 2.0,
	}
}

// SamplePoints returns the six candidate points used for region membership
// probing, in decision order: top-right corner, bottom-left corner,
// bottom-right corner, bottom midpoint, left midpoint, right midpoint.
// Top-left corner and center are excluded on purpose: the set is biased
// toward the trailing and lower edges of a moving object.
func (r Rect) SamplePoints() [6]Point {
	midX := float64(r.X1+r.X2) / 2.0
	midY := float64(r.Y1+r.Y2) / 2.0
	return [6]Point{
		{X: float64(r.X2), Y: float64(r.Y1)},
		{X: float64(r.X1), Y: float64(r.Y2)},
		{X: float64(r.X2), Y: float64(r.Y2)},
		{X: midX, Y: float64(r.Y2)},
		{X: float64(r.X1), Y: midY},
		{X: float64(r.X2), Y: midY},
	}
}
