// Package mapping implements the 4D map reduction: collapsing the
// collection plane of a 4D dataset into a single value per scan
// position.
//
// The reduction sums each scan position's collection frame over a
// selected subset of pixels. Selections arrive as boolean masks over
// the collection plane; with no selection (or a selection that covers
// nothing) the whole frame is summed. The result is a 2D map carrying
// the scan-plane calibrations and the intensity calibration of the
// source.
//
// All operations are pure: inputs are never mutated and results are
// freshly allocated, so identical inputs always produce bit-identical
// outputs.
package mapping
