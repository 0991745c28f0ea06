package server

import (
	"encoding/json"
	"fmt"

	"github.com/stemtools/map4d-mcp/internal/dataset"
	"github.com/stemtools/map4d-mcp/internal/mapping"
	"github.com/stemtools/map4d-mcp/internal/region"
	"github.com/stemtools/map4d-mcp/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "dataset_load", "map_region_sum").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "dataset_load":
		return s.handleDatasetLoad(args)
	case "map_region_sum":
		return s.handleMapRegionSum(args)
	case "map_preview":
		return s.handleMapPreview(args)
	case "mask_preview":
		return s.handleMaskPreview(args)
	case "dataset_frame":
		return s.handleDatasetFrame(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Dataset Handlers ===

type datasetLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleDatasetLoad(args json.RawMessage) (interface{}, error) {
	var a datasetLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return dataset.LoadInfo(s.cache, a.Path)
}

// === Mapping Handlers ===

type mapRegionSumArgs struct {
	Path     string          `json:"path"`
	Regions  []region.Region `json:"regions"`
	SavePath string          `json:"save_path"`
}

// RegionSumResult is the map_region_sum tool payload: the reduced map
// plus the calibrations it inherits from the source and basic stats.
type RegionSumResult struct {
	Rows                    int                   `json:"rows"`
	Cols                    int                   `json:"cols"`
	Values                  [][]float64           `json:"values"`
	DimensionalCalibrations []dataset.Calibration `json:"dimensional_calibrations"`
	IntensityCalibration    dataset.Calibration   `json:"intensity_calibration"`
	Min                     float64               `json:"min"`
	Max                     float64               `json:"max"`
	Mean                    float64               `json:"mean"`
	SummedPixels            int                   `json:"summed_pixels"`
	FullFrameSum            bool                  `json:"full_frame_sum"`
	SavedTo                 string                `json:"saved_to,omitempty"`
}

func (s *Server) handleMapRegionSum(args json.RawMessage) (interface{}, error) {
	var a mapRegionSumArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, masks, selected, err := s.loadSourceAndMasks(a.Path, a.Regions)
	if err != nil {
		return nil, err
	}

	result, err := mapping.SumRegions(src, masks)
	if err != nil {
		return nil, err
	}

	rows, cols := result.Shape[0], result.Shape[1]
	values := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		values[r] = result.Data[r*cols : (r+1)*cols]
	}

	lo, hi, mean := stats(result.Data)
	summed := selected
	if summed == 0 {
		summed = src.Shape[2] * src.Shape[3]
	}

	out := &RegionSumResult{
		Rows:                    rows,
		Cols:                    cols,
		Values:                  values,
		DimensionalCalibrations: result.DimCalibrations,
		IntensityCalibration:    result.Intensity,
		Min:                     lo,
		Max:                     hi,
		Mean:                    mean,
		SummedPixels:            summed,
		FullFrameSum:            selected == 0,
	}

	if a.SavePath != "" {
		if err := dataset.Write(a.SavePath, result); err != nil {
			return nil, err
		}
		out.SavedTo = a.SavePath
	}

	return out, nil
}

type mapPreviewArgs struct {
	Path        string          `json:"path"`
	Regions     []region.Region `json:"regions"`
	Colormap    string          `json:"colormap"`
	Scale       float64         `json:"scale"`
	SmoothSigma float64         `json:"smooth_sigma"`
}

func (s *Server) handleMapPreview(args json.RawMessage) (interface{}, error) {
	var a mapPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	src, masks, _, err := s.loadSourceAndMasks(a.Path, a.Regions)
	if err != nil {
		return nil, err
	}

	result, err := mapping.SumRegions(src, masks)
	if err != nil {
		return nil, err
	}
	return render.Map(result, a.Colormap, a.Scale, a.SmoothSigma)
}

type maskPreviewArgs struct {
	Path    string          `json:"path"`
	Regions []region.Region `json:"regions"`
	Scale   float64         `json:"scale"`
}

func (s *Server) handleMaskPreview(args json.RawMessage) (interface{}, error) {
	var a maskPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if !src.Is4D() {
		return nil, fmt.Errorf("%w: got %d dimensions", mapping.ErrInvalidShape, src.NDim())
	}

	mask, err := region.Union(a.Regions, src.Shape[2], src.Shape[3])
	if err != nil {
		return nil, err
	}
	return render.Mask(mask, a.Scale)
}

type datasetFrameArgs struct {
	Path     string  `json:"path"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Colormap string  `json:"colormap"`
	Scale    float64 `json:"scale"`
}

func (s *Server) handleDatasetFrame(args json.RawMessage) (interface{}, error) {
	var a datasetFrameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	frame, err := mapping.ExtractFrame(src, a.Row, a.Col)
	if err != nil {
		return nil, err
	}
	return render.Map(frame, a.Colormap, a.Scale, 0)
}

// loadSourceAndMasks loads a 4D dataset and rasterizes the regions into
// a single combined mask over its collection plane. With no regions the
// mask list is empty, which the reducer treats as a full-frame sum.
// Returns the number of pixels the combined mask selects.
func (s *Server) loadSourceAndMasks(path string, regions []region.Region) (*dataset.Array, []*dataset.Mask, int, error) {
	src, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, 0, err
	}
	if !src.Is4D() {
		return nil, nil, 0, fmt.Errorf("%w: got %d dimensions", mapping.ErrInvalidShape, src.NDim())
	}

	if len(regions) == 0 {
		return src, nil, 0, nil
	}

	mask, err := region.Union(regions, src.Shape[2], src.Shape[3])
	if err != nil {
		return nil, nil, 0, err
	}
	return src, []*dataset.Mask{mask}, mask.Count(), nil
}

func stats(data []float64) (lo, hi, mean float64) {
	if len(data) == 0 {
		return 0, 0, 0
	}
	lo, hi = data[0], data[0]
	var sum float64
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	return lo, hi, sum / float64(len(data))
}
