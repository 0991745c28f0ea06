// Package dataset provides the data model and on-disk format for 4D
// scanning datasets.
//
// A dataset is an N-dimensional numeric array stored flat in row-major
// order, together with one calibration per axis and one intensity
// calibration. For 4D data the first two axes are the scan plane (R, C)
// and the last two are the collection plane (H, W), e.g. a detector
// frame recorded at each scan position.
//
// # On-Disk Format
//
// A dataset on disk is a JSON sidecar file describing a raw binary
// buffer:
//
//	{
//	  "data_file": "scan.raw",
//	  "shape": [64, 64, 128, 128],
//	  "dtype": "float32",
//	  "byte_order": "little",
//	  "dimensional_calibrations": [{"scale": 1, "offset": 0, "units": "nm"}, ...],
//	  "intensity_calibration": {"scale": 1, "offset": 0, "units": "counts"}
//	}
//
// The data file path is resolved relative to the sidecar's directory.
// All supported dtypes are decoded to float64 on load, so arithmetic
// downstream is deterministic regardless of the source dtype.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. Loaded arrays are treated
// as immutable; operations that need a modified array allocate a new
// one.
package dataset
