package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Annotation
		{
			Name: "image_annotate_shapes",
			Description: "Find every closed shape in an image, draw a red box around it and label it with its color and shape " +
				"(e.g. \"Red Circle\"). Returns the regions and either the annotated image as base64 PNG or the path it was written to.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the annotated image to",
					},
					"save": map[string]interface{}{
						"type":        "boolean",
						"description": "Write the annotated image next to the input with the configured suffix. Ignored when output_path is set",
						"default":     false,
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the annotated image even when it was written to disk",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_shapes",
			Description: "Find and classify every closed shape in an image without returning the annotated image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_region_crop",
			Description: "Crop the expanded bounding box of one detected region, by region index, and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Region index as reported by image_detect_shapes",
					},
					"annotated": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop from the annotated image instead of the source",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "index"},
			},
		},
		{
			Name:        "image_edge_detect",
			Description: "Return the edge map shape detection works from (grayscale, 5x5 Gaussian blur, Canny 50/150) as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Classification
		{
			Name:        "image_classify_color",
			Description: "Name a color using the annotator's palette. Pass either b, g and r channel values (0-255) or a hex color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"b": map[string]interface{}{
						"type":        "number",
						"description": "Blue channel (0-255)",
					},
					"g": map[string]interface{}{
						"type":        "number",
						"description": "Green channel (0-255)",
					},
					"r": map[string]interface{}{
						"type":        "number",
						"description": "Red channel (0-255)",
					},
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color as #RRGGBB",
					},
				},
			},
		},
		{
			Name:        "image_classify_shape",
			Description: "Name a polygon by its vertex count: 3 Triangle, 4 Rectangle, 5 Pentagon, anything else Circle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"vertices": map[string]interface{}{
						"type":        "integer",
						"description": "Number of polygon vertices",
					},
				},
				"required": []string{"vertices"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
