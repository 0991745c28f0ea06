package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionsSchema describes the region list accepted by the mapping tools.
// Coordinates are collection-plane pixels, (0,0) top-left.
func regionsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Selections over the collection plane. Empty or omitted means sum whole frames.",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"rectangle", "ellipse", "point", "polygon"},
					"description": "Selection shape",
				},
				"x1": map[string]interface{}{"type": "integer", "description": "Rectangle left edge (inclusive)"},
				"y1": map[string]interface{}{"type": "integer", "description": "Rectangle top edge (inclusive)"},
				"x2": map[string]interface{}{"type": "integer", "description": "Rectangle right edge (exclusive)"},
				"y2": map[string]interface{}{"type": "integer", "description": "Rectangle bottom edge (exclusive)"},
				"center_x": map[string]interface{}{"type": "number", "description": "Ellipse center X"},
				"center_y": map[string]interface{}{"type": "number", "description": "Ellipse center Y"},
				"radius_x": map[string]interface{}{"type": "number", "description": "Ellipse X radius in pixels"},
				"radius_y": map[string]interface{}{"type": "number", "description": "Ellipse Y radius in pixels"},
				"x":        map[string]interface{}{"type": "integer", "description": "Point X coordinate"},
				"y":        map[string]interface{}{"type": "integer", "description": "Point Y coordinate"},
				"vertices": map[string]interface{}{
					"type":        "array",
					"description": "Polygon vertices (at least 3), objects with x and y",
				},
			},
			"required": []string{"type"},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Dataset Information
		{
			Name:        "dataset_load",
			Description: "Load a 4D dataset (JSON sidecar + raw buffer) and return its shape, dtype, calibrations and scan/collection split.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the dataset sidecar (.json) file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Mapping Operations
		{
			Name:        "map_region_sum",
			Description: "Reduce a 4D dataset to a 2D map: for each scan position, sum the collection frame over the union of the given regions. With no regions (or regions selecting nothing) the whole frame is summed. Returns values, inherited calibrations and stats.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the dataset sidecar (.json) file",
					},
					"regions": regionsSchema(),
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to persist the resulting map as a dataset",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "map_preview",
			Description: "Render the region-sum map of a 4D dataset as a colormapped base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the dataset sidecar (.json) file",
					},
					"regions": regionsSchema(),
					"colormap": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"viridis", "inferno", "gray"},
						"description": "Colormap name. Default viridis",
						"default":     "viridis",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional preview scale factor (e.g., 4.0 for small scans). Default 1.0",
						"default":     1.0,
					},
					"smooth_sigma": map[string]interface{}{
						"type":        "number",
						"description": "Optional Gaussian smoothing radius for the preview. 0 disables",
						"default":     0.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mask_preview",
			Description: "Render the combined region mask over the collection plane as a white-on-black base64 PNG, with selected-pixel count and coverage.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the dataset sidecar (.json) file",
					},
					"regions": regionsSchema(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional preview scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "dataset_frame",
			Description: "Render the collection frame recorded at one scan position as a colormapped base64 PNG. Use this to browse individual frames of the source data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the dataset sidecar (.json) file",
					},
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Scan row (0-based)",
					},
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Scan column (0-based)",
					},
					"colormap": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"viridis", "inferno", "gray"},
						"description": "Colormap name. Default viridis",
						"default":     "viridis",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional preview scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "row", "col"},
			},
		},
	}
}
