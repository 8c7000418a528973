package ocr

import (
	"image"
	"reflect"
	"testing"
)

func TestRectPolygon(t *testing.T) {
	got := RectPolygon(image.Rect(10, 20, 110, 45))
	want := Polygon{{10, 20}, {110, 20}, {110, 45}, {10, 45}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RectPolygon() = %v, want %v", got, want)
	}
}

func TestPolygonScaleCopies(t *testing.T) {
	p := Polygon{{2, 4}, {6, 8}}
	scaled := p.Scale(0.5)
	if !reflect.DeepEqual(scaled, Polygon{{1, 2}, {3, 4}}) {
		t.Fatalf("unexpected scaled polygon: %v", scaled)
	}
	if p[0][0] != 2 {
		t.Fatalf("Scale mutated the receiver: %v", p)
	}
}
