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
		"description": "Absolute path to a PNG or JPEG file",
	}
}

func colorProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description + " as #RRGGBB or #RRGGBBAA",
	}
}

// outputProperties are shared by every tool that produces an image.
func outputProperties(props map[string]interface{}) map[string]interface{} {
	props["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "File to write (.png, .jpg or .jpeg). If omitted the result is returned inline as base64 PNG.",
	}
	props["quality"] = map[string]interface{}{
		"type":        "integer",
		"description": "JPEG quality 0-100 (default 100). Ignored for PNG.",
		"default":     100,
	}
	props["overwrite"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Replace output_path if it exists (default false)",
		"default":     false,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, decoded format, alpha presence and file size.",
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
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGB, RGBA, HSL, normalized components and the packed 0xAARRGGBB value (7-bit alpha).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call. Fails without partial results if any point is outside the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample, reported back in the same order",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Return the most common colors of an image or region. Components are quantized to multiples of 16 before counting.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (default 5)",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":      map[string]interface{}{"type": "integer"},
							"y":      map[string]interface{}{"type": "integer"},
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to analyze, clipped to the image. If omitted the whole image is used.",
					},
				},
				"required": []string{"path"},
			},
		},

		// Drawing
		{
			Name:        "image_create",
			Description: "Create a new canvas of the given size filled with a color (opaque black by default).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProperties(map[string]interface{}{
					"width":  map[string]interface{}{"type": "integer", "description": "Canvas width in pixels"},
					"height": map[string]interface{}{"type": "integer", "description": "Canvas height in pixels"},
					"color":  colorProperty("Fill color"),
				}),
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "image_fill",
			Description: "Fill the whole image, or the rectangle at (x,y) with the given size, with a color. The rectangle's far corner (x+width, y+height) is painted too.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProperties(map[string]interface{}{
					"path":   pathProperty(),
					"color":  colorProperty("Fill color"),
					"x":      map[string]interface{}{"type": "integer", "description": "Rectangle left edge"},
					"y":      map[string]interface{}{"type": "integer", "description": "Rectangle top edge"},
					"width":  map[string]interface{}{"type": "integer", "description": "Rectangle width. Omit width and height to fill the whole image."},
					"height": map[string]interface{}{"type": "integer", "description": "Rectangle height"},
					"blend": map[string]interface{}{
						"type":        "boolean",
						"description": "Composite over existing pixels (default true). When false the color replaces them, alpha included.",
						"default":     true,
					},
				}),
				"required": []string{"path", "color"},
			},
		},
		{
			Name:        "image_grid_overlay",
			Description: "Draw a coordinate grid over the image for precise positioning reference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProperties(map[string]interface{}{
					"path": pathProperty(),
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines (default 50)",
						"default":     50,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to label grid intersections with coordinates",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex (default #FF000080 - semi-transparent red)",
						"default":     "#FF000080",
					},
				}),
				"required": []string{"path"},
			},
		},

		// Transforms
		{
			Name:        "image_resize",
			Description: "Resize an image. mode exact uses width and height; width and height keep the aspect ratio; max_width only shrinks images wider than width.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProperties(map[string]interface{}{
					"path": pathProperty(),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"exact", "width", "height", "max_width"},
						"description": "Resize policy",
					},
					"width":  map[string]interface{}{"type": "integer", "description": "Target or maximum width"},
					"height": map[string]interface{}{"type": "integer", "description": "Target height"},
					"smooth": map[string]interface{}{
						"type":        "boolean",
						"description": "Bilinear interpolation when true (default), nearest neighbour when false",
						"default":     true,
					},
				}),
				"required": []string{"path", "mode"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop the rectangle at (x,y) with the given width and height. A rectangle running past the right or bottom edge is clipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProperties(map[string]interface{}{
					"path":   pathProperty(),
					"x":      map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
					"y":      map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
					"width":  map[string]interface{}{"type": "integer", "description": "Crop width"},
					"height": map[string]interface{}{"type": "integer", "description": "Crop height"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor applied to the cropped block (e.g. 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_square_crop",
			Description: "Crop the largest square, placed by gravity. Square images are returned unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProperties(map[string]interface{}{
					"path": pathProperty(),
					"gravity": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"middle", "north", "south", "east", "west", "north_east", "north_west", "south_east", "south_west"},
						"description": "Which part of the image to keep (default middle)",
						"default":     "middle",
					},
				}),
				"required": []string{"path"},
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
