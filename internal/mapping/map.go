package mapping

import (
	"errors"
	"fmt"

	"github.com/stemtools/map4d-mcp/internal/dataset"
)

// ErrInvalidShape is returned when a source array does not have exactly
// four dimensions.
var ErrInvalidShape = errors.New("source array must be 4-dimensional")

// SumRegions reduces a 4D source array to a 2D map. The value at each
// scan position (r, c) is the sum of that position's collection frame
// over the union of the given masks.
//
// With an empty mask list, or when the union of the masks selects no
// pixel at all, the whole frame is summed instead. The empty selection
// deliberately means "everything", not "nothing"; callers that want a
// zero map should not call this function.
//
// Masks must match the source's collection plane (trailing two axes);
// that is the caller's contract and is not validated here beyond what
// the union enforces.
//
// The result carries copies of the source's first two dimensional
// calibrations and its intensity calibration. The source is never
// mutated.
func SumRegions(src *dataset.Array, masks []*dataset.Mask) (*dataset.Array, error) {
	if !src.Is4D() {
		return nil, fmt.Errorf("%w: got %d dimensions", ErrInvalidShape, src.NDim())
	}

	rows, cols := src.Shape[0], src.Shape[1]
	frame := src.Shape[2] * src.Shape[3]

	combined := dataset.NewMask(src.Shape[2], src.Shape[3])
	for _, m := range masks {
		if err := combined.Or(m); err != nil {
			return nil, fmt.Errorf("region mask does not fit collection plane: %w", err)
		}
	}
	idx := combined.TrueIndices()

	out := make([]float64, rows*cols)
	for p := range out {
		base := p * frame
		var sum float64
		if idx == nil {
			for i := 0; i < frame; i++ {
				sum += src.Data[base+i]
			}
		} else {
			for _, i := range idx {
				sum += src.Data[base+i]
			}
		}
		out[p] = sum
	}

	return &dataset.Array{
		Data:  out,
		Shape: []int{rows, cols},
		DimCalibrations: []dataset.Calibration{
			src.DimCalibrations[0],
			src.DimCalibrations[1],
		},
		Intensity: src.Intensity,
	}, nil
}

// ExtractFrame returns a copy of the collection frame recorded at scan
// position (row, col) as a 2D array carrying the source's collection
// plane calibrations and intensity calibration.
func ExtractFrame(src *dataset.Array, row, col int) (*dataset.Array, error) {
	if !src.Is4D() {
		return nil, fmt.Errorf("%w: got %d dimensions", ErrInvalidShape, src.NDim())
	}
	rows, cols := src.Shape[0], src.Shape[1]
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return nil, fmt.Errorf("scan position (%d,%d) outside scan plane %dx%d",
			row, col, rows, cols)
	}

	frame := src.Shape[2] * src.Shape[3]
	base := (row*cols + col) * frame
	out := make([]float64, frame)
	copy(out, src.Data[base:base+frame])

	return &dataset.Array{
		Data:  out,
		Shape: []int{src.Shape[2], src.Shape[3]},
		DimCalibrations: []dataset.Calibration{
			src.DimCalibrations[2],
			src.DimCalibrations[3],
		},
		Intensity: src.Intensity,
	}, nil
}
