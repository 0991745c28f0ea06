package dataset

import "fmt"

// Calibration maps an axis index (or an intensity value) to a physical
// quantity: physical = scale*value + offset, expressed in Units.
//
// Calibrations are plain values; copying a Calibration copies it fully,
// so results never share calibration state with their sources.
type Calibration struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
	Units  string  `json:"units"`
}

// Identity returns the identity calibration (scale 1, offset 0, no units).
func Identity() Calibration {
	return Calibration{Scale: 1}
}

// Array is an N-dimensional numeric array stored flat in row-major order.
//
// DimCalibrations holds one calibration per axis, in axis order.
// Intensity calibrates the array's values themselves.
type Array struct {
	Data            []float64
	Shape           []int
	DimCalibrations []Calibration
	Intensity       Calibration
}

// NDim returns the number of axes.
func (a *Array) NDim() int {
	return len(a.Shape)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Is4D reports whether the array has exactly four axes.
func (a *Array) Is4D() bool {
	return len(a.Shape) == 4
}

// Mask is a boolean selector over a 2D collection plane. A true bit at
// (y, x) includes that pixel in mask-driven operations.
type Mask struct {
	Height int
	Width  int
	Bits   []bool
}

// NewMask creates an all-false mask of the given dimensions.
func NewMask(height, width int) *Mask {
	return &Mask{
		Height: height,
		Width:  width,
		Bits:   make([]bool, height*width),
	}
}

// At reports whether the pixel at (y, x) is selected.
// Out-of-plane coordinates are never selected.
func (m *Mask) At(y, x int) bool {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Set marks the pixel at (y, x) as selected. Out-of-plane coordinates
// are ignored.
func (m *Mask) Set(y, x int) {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return
	}
	m.Bits[y*m.Width+x] = true
}

// Or merges another mask into this one with elementwise logical OR.
// The masks must have identical dimensions.
func (m *Mask) Or(o *Mask) error {
	if o.Height != m.Height || o.Width != m.Width {
		return fmt.Errorf("mask size %dx%d does not match %dx%d",
			o.Height, o.Width, m.Height, m.Width)
	}
	for i, b := range o.Bits {
		if b {
			m.Bits[i] = true
		}
	}
	return nil
}

// Any reports whether at least one pixel is selected.
func (m *Mask) Any() bool {
	for _, b := range m.Bits {
		if b {
			return true
		}
	}
	return false
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// TrueIndices returns the flat (row-major) indices of all selected
// pixels, in ascending order. Returns nil when nothing is selected.
func (m *Mask) TrueIndices() []int {
	var idx []int
	for i, b := range m.Bits {
		if b {
			idx = append(idx, i)
		}
	}
	return idx
}
