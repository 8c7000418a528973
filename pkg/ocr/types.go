// Package ocr defines the text-detection contract used by the image pipeline.
package ocr

import (
	"context"
	"image"
)

// Point is an (x, y) pixel coordinate with the origin at the top-left corner.
type Point [2]float64

// Polygon is a closed outline given as its corner points in clockwise order.
type Polygon []Point

// RectPolygon converts an axis-aligned rectangle into a four-point polygon
// ordered top-left, top-right, bottom-right, bottom-left.
func RectPolygon(r image.Rectangle) Polygon {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	return Polygon{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// Scale returns a copy of p with every coordinate multiplied by f.
func (p Polygon) Scale(f float64) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = Point{pt[0] * f, pt[1] * f}
	}
	return out
}

// Region is one detected text area.
type Region struct {
	Polygon    Polygon
	Text       string
	Confidence float64 // 0..1
}

// Engine recognizes text regions in an encoded image. Implementations must
// be safe for concurrent use and return regions in reading order.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img []byte) ([]Region, error)
}
