// Package layout computes print geometry for boards and deck listings. It
// never draws; renderers consume the rectangles it returns. All lengths are
// PDF points.
package layout

import "math"

// PointsPerCm converts centimetres to the rendering unit.
const PointsPerCm = 28.35

// epsilon absorbs floating point drift when comparing lengths.
const epsilon = 1e-6

// Cm converts centimetres to points.
func Cm(v float64) float64 {
	return v * PointsPerCm
}

// PageSize is a physical page in points.
type PageSize struct {
	Width  float64
	Height float64
}

// A4 in portrait orientation.
var A4 = PageSize{Width: Cm(21), Height: Cm(29.7)}

// Landscape returns the page with its long side horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		return PageSize{Width: p.Height, Height: p.Width}
	}
	return p
}

// Portrait returns the page with its long side vertical.
func (p PageSize) Portrait() PageSize {
	if p.Width > p.Height {
		return PageSize{Width: p.Height, Height: p.Width}
	}
	return p
}

// IsLandscape reports whether the page is wider than tall.
func (p PageSize) IsLandscape() bool {
	return p.Width > p.Height
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether o lies inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X-epsilon && o.Y >= r.Y-epsilon &&
		o.Right() <= r.Right()+epsilon && o.Bottom() <= r.Bottom()+epsilon
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right()-epsilon && o.X < r.Right()-epsilon &&
		r.Y < o.Bottom()-epsilon && o.Y < r.Bottom()-epsilon
}

// Inset shrinks the rectangle by dx on the left and right and dy on the top
// and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: math.Max(0, r.W-2*dx), H: math.Max(0, r.H-2*dy)}
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// FitImage scales an image of imgW x imgH uniformly so it fits inside area
// and centres it. Images without a size yield an empty rectangle.
func FitImage(area Rect, imgW, imgH float64) Rect {
	if imgW <= 0 || imgH <= 0 || area.Empty() {
		return Rect{X: area.X, Y: area.Y}
	}
	scale := math.Min(area.W/imgW, area.H/imgH)
	w, h := imgW*scale, imgH*scale
	return Rect{
		X: area.X + (area.W-w)/2,
		Y: area.Y + (area.H-h)/2,
		W: w,
		H: h,
	}
}

// splitTrack divides length into n equal cells separated by n-1 gaps.
func splitTrack(length, gap float64, n int) float64 {
	return (length - float64(n-1)*gap) / float64(n)
}
