package region

import (
	"fmt"

	"github.com/stemtools/map4d-mcp/internal/dataset"
)

// Vertex is a polygon corner in collection-plane pixel coordinates.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region describes one selection over the collection plane. Type
// selects which of the remaining fields are meaningful:
//
//   - "rectangle": X1, Y1 (inclusive) and X2, Y2 (exclusive)
//   - "ellipse": CenterX, CenterY, RadiusX, RadiusY
//   - "point": X, Y (a single pixel)
//   - "polygon": Vertices (at least three)
type Region struct {
	Type string `json:"type"`

	X1 int `json:"x1,omitempty"`
	Y1 int `json:"y1,omitempty"`
	X2 int `json:"x2,omitempty"`
	Y2 int `json:"y2,omitempty"`

	CenterX float64 `json:"center_x,omitempty"`
	CenterY float64 `json:"center_y,omitempty"`
	RadiusX float64 `json:"radius_x,omitempty"`
	RadiusY float64 `json:"radius_y,omitempty"`

	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	Vertices []Vertex `json:"vertices,omitempty"`
}

// Rasterize converts the region into a mask over an height x width
// collection plane.
func (r *Region) Rasterize(height, width int) (*dataset.Mask, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid collection plane %dx%d", height, width)
	}

	m := dataset.NewMask(height, width)
	switch r.Type {
	case "rectangle":
		if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
			return nil, fmt.Errorf("rectangle (%d,%d)-(%d,%d) has no area",
				r.X1, r.Y1, r.X2, r.Y2)
		}
		for y := max(r.Y1, 0); y < min(r.Y2, height); y++ {
			for x := max(r.X1, 0); x < min(r.X2, width); x++ {
				m.Set(y, x)
			}
		}

	case "ellipse":
		if r.RadiusX <= 0 || r.RadiusY <= 0 {
			return nil, fmt.Errorf("ellipse radii must be positive, got %gx%g",
				r.RadiusX, r.RadiusY)
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				dx := (float64(x) + 0.5 - r.CenterX) / r.RadiusX
				dy := (float64(y) + 0.5 - r.CenterY) / r.RadiusY
				if dx*dx+dy*dy <= 1 {
					m.Set(y, x)
				}
			}
		}

	case "point":
		m.Set(r.Y, r.X)

	case "polygon":
		if len(r.Vertices) < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d",
				len(r.Vertices))
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if insidePolygon(float64(x)+0.5, float64(y)+0.5, r.Vertices) {
					m.Set(y, x)
				}
			}
		}

	default:
		return nil, fmt.Errorf("unknown region type %q", r.Type)
	}

	return m, nil
}

// Union rasterizes all regions and combines them with elementwise OR.
// An empty region list yields an all-false mask.
func Union(regions []Region, height, width int) (*dataset.Mask, error) {
	combined := dataset.NewMask(height, width)
	for i := range regions {
		m, err := regions[i].Rasterize(height, width)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		if err := combined.Or(m); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
	}
	return combined, nil
}

// insidePolygon tests point containment with the even-odd rule.
func insidePolygon(x, y float64, vs []Vertex) bool {
	inside := false
	j := len(vs) - 1
	for i := 0; i < len(vs); i++ {
		vi, vj := vs[i], vs[j]
		if (vi.Y > y) != (vj.Y > y) {
			cross := (vj.X-vi.X)*(y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if x < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
