package dataset

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
)

// Metadata is the JSON sidecar describing a raw dataset buffer on disk.
type Metadata struct {
	// DataFile is the raw buffer path, resolved relative to the sidecar.
	DataFile string `json:"data_file"`

	// Shape lists the axis lengths, outermost first.
	Shape []int `json:"shape"`

	// Dtype is the element type of the raw buffer: "uint8", "int8",
	// "uint16", "int16", "uint32", "int32", "float32" or "float64".
	Dtype string `json:"dtype"`

	// ByteOrder is "little" or "big". Defaults to "little".
	ByteOrder string `json:"byte_order,omitempty"`

	// DimensionalCalibrations holds one calibration per axis. May be
	// omitted, in which case every axis gets the identity calibration.
	DimensionalCalibrations []Calibration `json:"dimensional_calibrations,omitempty"`

	// IntensityCalibration calibrates the values themselves.
	IntensityCalibration Calibration `json:"intensity_calibration"`
}

// dtypeSize returns the byte width of a supported dtype.
func dtypeSize(dtype string) (int, error) {
	switch dtype {
	case "uint8", "int8":
		return 1, nil
	case "uint16", "int16":
		return 2, nil
	case "uint32", "int32", "float32":
		return 4, nil
	case "float64":
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q", dtype)
	}
}

// Cache provides thread-safe caching of loaded datasets to avoid
// redundant disk reads and decode passes.
//
// Arrays are cached by sidecar path and treated as immutable once
// loaded. Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu     sync.RWMutex
	arrays map[string]*Array
}

// NewCache creates and initializes a new empty dataset cache.
func NewCache() *Cache {
	return &Cache{
		arrays: make(map[string]*Array),
	}
}

// Load retrieves a dataset from the cache or reads and decodes it from
// disk if not cached.
//
// The path names the JSON sidecar file; the raw buffer it references is
// read in full and decoded to float64. The array is cached using the
// exact path string provided.
func (c *Cache) Load(path string) (*Array, error) {
	c.mu.RLock()
	if a, ok := c.arrays[path]; ok {
		c.mu.RUnlock()
		return a, nil
	}
	c.mu.RUnlock()

	a, err := Read(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.arrays[path] = a
	c.mu.Unlock()

	return a, nil
}

// Clear removes all datasets from the cache, freeing the associated
// memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.arrays = make(map[string]*Array)
	c.mu.Unlock()
}

// Evict removes a specific dataset from the cache by its sidecar path.
// If the path is not cached, Evict does nothing.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.arrays, path)
	c.mu.Unlock()
}

// Read loads a dataset from its JSON sidecar without caching.
func Read(path string) (*Array, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse dataset metadata: %w", err)
	}

	if len(meta.Shape) == 0 {
		return nil, fmt.Errorf("dataset %s has empty shape", path)
	}
	n := 1
	for _, d := range meta.Shape {
		if d <= 0 {
			return nil, fmt.Errorf("dataset %s has invalid axis length %d", path, d)
		}
		n *= d
	}

	size, err := dtypeSize(meta.Dtype)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	order, err := byteOrder(meta.ByteOrder)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	cals := meta.DimensionalCalibrations
	switch {
	case cals == nil:
		cals = make([]Calibration, len(meta.Shape))
		for i := range cals {
			cals[i] = Identity()
		}
	case len(cals) != len(meta.Shape):
		return nil, fmt.Errorf("dataset %s: %d calibrations for %d axes",
			path, len(cals), len(meta.Shape))
	}

	dataPath := meta.DataFile
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(path), dataPath)
	}
	buf, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset buffer: %w", err)
	}
	if len(buf) != n*size {
		return nil, fmt.Errorf("dataset %s: buffer is %d bytes, shape %v with dtype %s needs %d",
			path, len(buf), meta.Shape, meta.Dtype, n*size)
	}

	data, err := decodeValues(buf, meta.Dtype, order, n)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	shape := make([]int, len(meta.Shape))
	copy(shape, meta.Shape)
	dimCals := make([]Calibration, len(cals))
	copy(dimCals, cals)

	return &Array{
		Data:            data,
		Shape:           shape,
		DimCalibrations: dimCals,
		Intensity:       meta.IntensityCalibration,
	}, nil
}

func byteOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unsupported byte order %q", name)
	}
}

// decodeValues converts a raw buffer of n elements to float64.
func decodeValues(buf []byte, dtype string, order binary.ByteOrder, n int) ([]float64, error) {
	out := make([]float64, n)
	switch dtype {
	case "uint8":
		for i := 0; i < n; i++ {
			out[i] = float64(buf[i])
		}
	case "int8":
		for i := 0; i < n; i++ {
			out[i] = float64(int8(buf[i]))
		}
	case "uint16":
		for i := 0; i < n; i++ {
			out[i] = float64(order.Uint16(buf[i*2:]))
		}
	case "int16":
		for i := 0; i < n; i++ {
			out[i] = float64(int16(order.Uint16(buf[i*2:])))
		}
	case "uint32":
		for i := 0; i < n; i++ {
			out[i] = float64(order.Uint32(buf[i*4:]))
		}
	case "int32":
		for i := 0; i < n; i++ {
			out[i] = float64(int32(order.Uint32(buf[i*4:])))
		}
	case "float32":
		for i := 0; i < n; i++ {
			out[i] = float64(math.Float32frombits(order.Uint32(buf[i*4:])))
		}
	case "float64":
		for i := 0; i < n; i++ {
			out[i] = math.Float64frombits(order.Uint64(buf[i*8:]))
		}
	default:
		return nil, fmt.Errorf("unsupported dtype %q", dtype)
	}
	return out, nil
}

// Write persists an array as a dataset: a raw little-endian float64
// buffer alongside a JSON sidecar at the given path. The buffer file
// takes the sidecar's name with a ".raw" extension.
func Write(path string, a *Array) error {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	dataName := base + ".raw"

	buf := make([]byte, len(a.Data)*8)
	for i, v := range a.Data {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), dataName), buf, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset buffer: %w", err)
	}

	meta := Metadata{
		DataFile:                dataName,
		Shape:                   a.Shape,
		Dtype:                   "float64",
		ByteOrder:               "little",
		DimensionalCalibrations: a.DimCalibrations,
		IntensityCalibration:    a.Intensity,
	}
	raw, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset metadata: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset metadata: %w", err)
	}
	return nil
}

// Info contains metadata about a loaded dataset file.
type Info struct {
	// Shape lists the axis lengths, outermost first.
	Shape []int `json:"shape"`

	// Dtype is the on-disk element type of the raw buffer.
	Dtype string `json:"dtype"`

	// ScanShape is the first two axes (rows, cols) for 4D data.
	ScanShape []int `json:"scan_shape,omitempty"`

	// CollectionShape is the last two axes (height, width) for 4D data.
	CollectionShape []int `json:"collection_shape,omitempty"`

	// DimensionalCalibrations holds one calibration per axis.
	DimensionalCalibrations []Calibration `json:"dimensional_calibrations"`

	// IntensityCalibration calibrates the values themselves.
	IntensityCalibration Calibration `json:"intensity_calibration"`

	// FileSizeBytes is the size of the raw buffer on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads a dataset through the cache and returns metadata about
// it, including the scan/collection split for 4D data.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	a, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	// Re-read the sidecar for on-disk facts not kept on the array.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse dataset metadata: %w", err)
	}

	dataPath := meta.DataFile
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(path), dataPath)
	}
	stat, err := os.Stat(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset buffer: %w", err)
	}

	info := &Info{
		Shape:                   a.Shape,
		Dtype:                   meta.Dtype,
		DimensionalCalibrations: a.DimCalibrations,
		IntensityCalibration:    a.Intensity,
		FileSizeBytes:           stat.Size(),
	}
	if a.Is4D() {
		info.ScanShape = a.Shape[:2]
		info.CollectionShape = a.Shape[2:]
	}
	return info, nil
}
