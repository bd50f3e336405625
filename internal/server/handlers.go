package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/gdimage/internal/geom"
	"github.com/ironsheep/gdimage/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_crop").
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

	s.debugf("tool %s args=%s", params.Name, params.Arguments)

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
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
//
// Every handler loads its input from disk and closes it before returning;
// nothing is kept between calls.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	case "image_create":
		return s.handleImageCreate(args)
	case "image_fill":
		return s.handleImageFill(args)
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)

	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_square_crop":
		return s.handleImageSquareCrop(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// outputArgs are embedded by every tool that produces an image.
type outputArgs struct {
	OutputPath string `json:"output_path"`
	Quality    *int   `json:"quality"`
	Overwrite  bool   `json:"overwrite"`
}

// SavedImage describes an image written to disk by a tool.
type SavedImage struct {
	OutputPath string         `json:"output_path"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Format     imaging.Format `json:"format"`
}

// emit saves img to OutputPath, or renders it inline when no path is given.
func (o outputArgs) emit(img *imaging.Image) (interface{}, error) {
	if o.OutputPath == "" {
		return imaging.EncodeBase64PNG(img)
	}

	opts := []imaging.SaveOption{imaging.WithOverwrite(o.Overwrite)}
	if o.Quality != nil {
		opts = append(opts, imaging.WithQuality(*o.Quality))
	}
	if err := img.Save(o.OutputPath, opts...); err != nil {
		return nil, err
	}

	// Save has already validated the extension.
	format, _ := imaging.FormatFromFilename(o.OutputPath)
	size := img.Size()
	return &SavedImage{
		OutputPath: o.OutputPath,
		Width:      int(size.Width),
		Height:     int(size.Height),
		Format:     format,
	}, nil
}

func parseColor(hex string, fallback imaging.Color) (imaging.Color, error) {
	if hex == "" {
		return fallback, nil
	}
	c, err := imaging.ParseHexColor(hex)
	if err != nil {
		return imaging.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int32  `json:"x"`
	Y    int32  `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	return imaging.SampleColor(img, geom.Pt(a.X, a.Y))
}

type imageSampleColorsMultiArgs struct {
	Path   string                 `json:"path"`
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, fmt.Errorf("points is required")
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	return imaging.SampleColorsMulti(img, a.Points)
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X      int32 `json:"x"`
		Y      int32 `json:"y"`
		Width  int32 `json:"width"`
		Height int32 `json:"height"`
	} `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	var region *geom.Rect
	if a.Region != nil {
		r := geom.XYWH(a.Region.X, a.Region.Y, a.Region.Width, a.Region.Height)
		region = &r
	}
	return imaging.DominantColors(img, a.Count, region)
}

// === Drawing Handlers ===

type imageCreateArgs struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Color  string `json:"color"`
	outputArgs
}

func (s *Server) handleImageCreate(args json.RawMessage) (interface{}, error) {
	var a imageCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := parseColor(a.Color, imaging.Black)
	if err != nil {
		return nil, err
	}

	img, err := imaging.New(geom.Sz(a.Width, a.Height))
	if err != nil {
		return nil, err
	}
	defer img.Close()

	if c != imaging.Black {
		// A fresh canvas is opaque black; replace rather than composite so a
		// translucent color keeps its alpha.
		if err := img.SetAlphaBlending(false); err != nil {
			return nil, err
		}
		if err := img.Fill(c); err != nil {
			return nil, err
		}
	}
	return a.emit(img)
}

type imageFillArgs struct {
	Path   string `json:"path"`
	Color  string `json:"color"`
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  *int32 `json:"width"`
	Height *int32 `json:"height"`
	Blend  *bool  `json:"blend"`
	outputArgs
}

func (s *Server) handleImageFill(args json.RawMessage) (interface{}, error) {
	var a imageFillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		return nil, fmt.Errorf("color is required")
	}
	c, err := parseColor(a.Color, imaging.Black)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	if a.Blend != nil {
		if err := img.SetAlphaBlending(*a.Blend); err != nil {
			return nil, err
		}
	}

	if a.Width == nil && a.Height == nil {
		err = img.Fill(c)
	} else {
		var w, h int32
		if a.Width != nil {
			w = *a.Width
		}
		if a.Height != nil {
			h = *a.Height
		}
		err = img.FillRect(geom.XYWH(a.X, a.Y, w, h), c)
	}
	if err != nil {
		return nil, err
	}
	return a.emit(img)
}

type imageGridOverlayArgs struct {
	Path            string `json:"path"`
	GridSpacing     int32  `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
	outputArgs
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	labels := true
	if a.ShowCoordinates != nil {
		labels = *a.ShowCoordinates
	}
	c, err := parseColor(a.GridColor, imaging.Color{Red: 1, Alpha: 128.0 / 255})
	if err != nil {
		return nil, err
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	if err := img.DrawGrid(imaging.GridOptions{Spacing: a.GridSpacing, Color: c, Labels: labels}); err != nil {
		return nil, err
	}
	return a.emit(img)
}

// === Transform Handlers ===

type imageResizeArgs struct {
	Path   string `json:"path"`
	Mode   string `json:"mode"`
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Smooth *bool  `json:"smooth"`
	outputArgs
}

func (a imageResizeArgs) policy() (imaging.ResizePolicy, error) {
	switch a.Mode {
	case "exact":
		return imaging.Exact{Width: a.Width, Height: a.Height}, nil
	case "width":
		return imaging.ByWidth{Width: a.Width}, nil
	case "height":
		return imaging.ByHeight{Height: a.Height}, nil
	case "max_width":
		return imaging.ClampWidth{Max: a.Width}, nil
	default:
		return nil, fmt.Errorf("unknown resize mode %q", a.Mode)
	}
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	policy, err := a.policy()
	if err != nil {
		return nil, err
	}
	smooth := true
	if a.Smooth != nil {
		smooth = *a.Smooth
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	out, err := img.Resize(policy, smooth)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	s.debugf("resize %s: %v -> %v", a.Path, img.Size(), out.Size())
	return a.emit(out)
}

type imageCropArgs struct {
	Path   string  `json:"path"`
	X      int32   `json:"x"`
	Y      int32   `json:"y"`
	Width  int32   `json:"width"`
	Height int32   `json:"height"`
	Scale  float64 `json:"scale"`
	outputArgs
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	out, err := img.CropBox(a.X, a.Y, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if a.Scale > 0 && a.Scale != 1 {
		size := out.Size()
		scaled, err := out.Resize(imaging.Exact{
			Width:  int32(float64(size.Width) * a.Scale),
			Height: int32(float64(size.Height) * a.Scale),
		}, true)
		if err != nil {
			return nil, err
		}
		defer scaled.Close()
		s.debugf("crop %s: scaled %v -> %v", a.Path, size, scaled.Size())
		out = scaled
	}

	return a.emit(out)
}

type imageSquareCropArgs struct {
	Path    string `json:"path"`
	Gravity string `json:"gravity"`
	outputArgs
}

func (s *Server) handleImageSquareCrop(args json.RawMessage) (interface{}, error) {
	var a imageSquareCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gravity, err := imaging.ParseGravity(a.Gravity)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	out, err := img.SquareCrop(gravity)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	s.debugf("square crop %s (%v): %v -> %v", a.Path, gravity, img.Size(), out.Size())
	return a.emit(out)
}
