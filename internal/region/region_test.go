package region

import "testing"

func TestRasterize_Rectangle(t *testing.T) {
	r := Region{Type: "rectangle", X1: 1, Y1: 1, X2: 3, Y2: 4}

	m, err := r.Rasterize(5, 5)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if m.Count() != 2*3 {
		t.Errorf("Count: got %d, want 6", m.Count())
	}
	if !m.At(1, 1) || !m.At(3, 2) {
		t.Error("rectangle interior pixels missing")
	}
	if m.At(1, 3) || m.At(4, 1) {
		t.Error("x2/y2 should be exclusive")
	}
}

func TestRasterize_RectangleClamped(t *testing.T) {
	r := Region{Type: "rectangle", X1: -10, Y1: -10, X2: 100, Y2: 100}

	m, err := r.Rasterize(4, 4)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if m.Count() != 16 {
		t.Errorf("oversized rectangle should cover whole plane: got %d pixels", m.Count())
	}
}

func TestRasterize_RectangleNoArea(t *testing.T) {
	tests := []struct {
		name string
		r    Region
	}{
		{"zero width", Region{Type: "rectangle", X1: 2, Y1: 0, X2: 2, Y2: 4}},
		{"inverted", Region{Type: "rectangle", X1: 3, Y1: 3, X2: 1, Y2: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.r.Rasterize(5, 5); err == nil {
				t.Error("Rasterize should fail for degenerate rectangle")
			}
		})
	}
}

func TestRasterize_Ellipse(t *testing.T) {
	// A circle centered mid-plane; must be symmetric and contain its center.
	r := Region{Type: "ellipse", CenterX: 4.5, CenterY: 4.5, RadiusX: 3, RadiusY: 3}

	m, err := r.Rasterize(9, 9)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if !m.At(4, 4) {
		t.Error("ellipse center pixel not selected")
	}
	if m.At(0, 0) || m.At(8, 8) {
		t.Error("corner pixels should be outside the circle")
	}

	// Four-fold symmetry around the center.
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if m.At(y, x) != m.At(8-y, 8-x) {
				t.Fatalf("ellipse not symmetric at (%d,%d)", y, x)
			}
		}
	}
}

func TestRasterize_EllipseBadRadii(t *testing.T) {
	r := Region{Type: "ellipse", CenterX: 2, CenterY: 2, RadiusX: 0, RadiusY: 1}
	if _, err := r.Rasterize(5, 5); err == nil {
		t.Error("Rasterize should fail for non-positive radius")
	}
}

func TestRasterize_Point(t *testing.T) {
	r := Region{Type: "point", X: 3, Y: 1}

	m, err := r.Rasterize(4, 5)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if m.Count() != 1 || !m.At(1, 3) {
		t.Errorf("point should select exactly (1,3); count %d", m.Count())
	}
}

func TestRasterize_PointOutsidePlane(t *testing.T) {
	r := Region{Type: "point", X: 10, Y: 10}

	m, err := r.Rasterize(4, 4)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	// Selecting nothing is valid; downstream it means full-frame sum.
	if m.Any() {
		t.Error("out-of-plane point should select nothing")
	}
}

func TestRasterize_Polygon(t *testing.T) {
	// A square drawn as a polygon should match the rectangle raster.
	poly := Region{Type: "polygon", Vertices: []Vertex{
		{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 4}, {X: 1, Y: 4},
	}}
	rect := Region{Type: "rectangle", X1: 1, Y1: 1, X2: 4, Y2: 4}

	pm, err := poly.Rasterize(6, 6)
	if err != nil {
		t.Fatalf("polygon Rasterize failed: %v", err)
	}
	rm, err := rect.Rasterize(6, 6)
	if err != nil {
		t.Fatalf("rectangle Rasterize failed: %v", err)
	}

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if pm.At(y, x) != rm.At(y, x) {
				t.Fatalf("polygon square differs from rectangle at (%d,%d)", y, x)
			}
		}
	}
}

func TestRasterize_Triangle(t *testing.T) {
	r := Region{Type: "polygon", Vertices: []Vertex{
		{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8},
	}}

	m, err := r.Rasterize(8, 8)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if !m.At(1, 1) {
		t.Error("pixel near the right-angle corner should be inside")
	}
	if m.At(7, 7) {
		t.Error("pixel opposite the hypotenuse should be outside")
	}
}

func TestRasterize_PolygonTooFewVertices(t *testing.T) {
	r := Region{Type: "polygon", Vertices: []Vertex{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	if _, err := r.Rasterize(4, 4); err == nil {
		t.Error("Rasterize should fail for fewer than 3 vertices")
	}
}

func TestRasterize_UnknownType(t *testing.T) {
	r := Region{Type: "blob"}
	if _, err := r.Rasterize(4, 4); err == nil {
		t.Error("Rasterize should fail for unknown region type")
	}
}

func TestRasterize_InvalidPlane(t *testing.T) {
	r := Region{Type: "point", X: 0, Y: 0}
	if _, err := r.Rasterize(0, 4); err == nil {
		t.Error("Rasterize should fail for empty plane")
	}
}

func TestUnion(t *testing.T) {
	regions := []Region{
		{Type: "point", X: 0, Y: 0},
		{Type: "point", X: 3, Y: 3},
		{Type: "point", X: 0, Y: 0}, // duplicate must not double-count
	}

	m, err := Union(regions, 4, 4)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("Count: got %d, want 2", m.Count())
	}
	if !m.At(0, 0) || !m.At(3, 3) {
		t.Error("union missing selected pixels")
	}
}

func TestUnion_Empty(t *testing.T) {
	m, err := Union(nil, 4, 4)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	if m.Any() {
		t.Error("empty union should select nothing")
	}
}

func TestUnion_PropagatesErrors(t *testing.T) {
	regions := []Region{
		{Type: "point", X: 0, Y: 0},
		{Type: "nonsense"},
	}
	if _, err := Union(regions, 4, 4); err == nil {
		t.Error("Union should fail when a region cannot be rasterized")
	}
}
