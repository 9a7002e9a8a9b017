package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ironsheep/shape-annotator/internal/annotate"
	"github.com/ironsheep/shape-annotator/internal/classify"
	"github.com/ironsheep/shape-annotator/internal/imageio"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_annotate_shapes").
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Annotation
	case "image_annotate_shapes":
		return s.handleImageAnnotateShapes(args)
	case "image_detect_shapes":
		return s.handleImageDetectShapes(args)
	case "image_region_crop":
		return s.handleImageRegionCrop(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)

	// Classification
	case "image_classify_color":
		return s.handleImageClassifyColor(args)
	case "image_classify_shape":
		return s.handleImageClassifyShape(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imageio.LoadInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imageio.LoadDimensions(s.cache, a.Path)
}

// === Annotation Handlers ===

// shapesResult is the common part of every annotation response.
type shapesResult struct {
	RunID    string            `json:"run_id"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Contours int               `json:"contours"`
	Skipped  int               `json:"skipped"`
	Count    int               `json:"count"`
	Regions  []annotate.Region `json:"regions"`
}

// annotateResult adds the annotated image, inline or on disk.
type annotateResult struct {
	shapesResult
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imageio.EncodedImage `json:"image,omitempty"`
}

// process loads path and runs the pipeline over it.
func (s *Server) process(path string) (*annotate.Result, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Process(img)
}

func newShapesResult(res *annotate.Result) shapesResult {
	bounds := res.Image.Bounds()
	return shapesResult{
		RunID:    uuid.New().String(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Contours: res.Contours,
		Skipped:  res.Skipped,
		Count:    len(res.Regions),
		Regions:  res.Regions,
	}
}

type imageAnnotateShapesArgs struct {
	Path         string `json:"path"`
	OutputPath   string `json:"output_path"`
	Save         bool   `json:"save"`
	IncludeImage bool   `json:"include_image"`
}

func (s *Server) handleImageAnnotateShapes(args json.RawMessage) (interface{}, error) {
	var a imageAnnotateShapesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}

	out := &annotateResult{shapesResult: newShapesResult(res)}

	if a.OutputPath == "" && a.Save {
		a.OutputPath = imageio.OutputPath(a.Path, s.outputSuffix)
	}
	if a.OutputPath != "" {
		if filepath.Clean(a.OutputPath) == filepath.Clean(a.Path) {
			return nil, errors.New("output_path must differ from path")
		}
		if err := imageio.Save(res.Image, a.OutputPath); err != nil {
			return nil, err
		}
		s.cache.Evict(a.OutputPath)
		out.OutputPath = a.OutputPath
	}

	if out.OutputPath == "" || a.IncludeImage {
		encoded, err := imageio.EncodePNG(res.Image)
		if err != nil {
			return nil, err
		}
		out.Image = encoded
	}

	return out, nil
}

func (s *Server) handleImageDetectShapes(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}
	r := newShapesResult(res)
	return &r, nil
}

type imageRegionCropArgs struct {
	Path      string  `json:"path"`
	Index     *int    `json:"index"`
	Annotated bool    `json:"annotated"`
	Scale     float64 `json:"scale"`
}

type regionCropResult struct {
	Region annotate.Region `json:"region"`
	*imageio.EncodedImage
}

func (s *Server) handleImageRegionCrop(args json.RawMessage) (interface{}, error) {
	var a imageRegionCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if a.Index == nil {
		return nil, errors.New("index is required")
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}

	for _, region := range res.Regions {
		if region.Index != *a.Index {
			continue
		}

		var src image.Image = res.Image
		if !a.Annotated {
			if src, err = s.cache.Load(a.Path); err != nil {
				return nil, err
			}
		}
		crop, err := imageio.CropBox(src, region.Box.Rect(), a.Scale)
		if err != nil {
			return nil, err
		}
		return &regionCropResult{Region: region, EncodedImage: crop}, nil
	}

	return nil, fmt.Errorf("no region with index %d (%d regions detected)", *a.Index, len(res.Regions))
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	edges, err := s.pipeline.Edges(img)
	if err != nil {
		return nil, err
	}
	return imageio.EncodePNG(edges)
}

// === Classification Handlers ===

type imageClassifyColorArgs struct {
	B   *float64 `json:"b"`
	G   *float64 `json:"g"`
	R   *float64 `json:"r"`
	Hex string   `json:"hex"`
}

type classifyColorResult struct {
	Sample classify.Sample `json:"sample"`
	Hex    string          `json:"hex"`
	HSL    classify.HSL    `json:"hsl"`
	Color  string          `json:"color"`
}

func (s *Server) handleImageClassifyColor(args json.RawMessage) (interface{}, error) {
	var a imageClassifyColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var sample classify.Sample
	switch {
	case a.Hex != "":
		parsed, err := classify.ParseHex(a.Hex)
		if err != nil {
			return nil, err
		}
		sample = parsed
	case a.B != nil && a.G != nil && a.R != nil:
		sample = classify.Sample{B: *a.B, G: *a.G, R: *a.R}
		for _, v := range []float64{sample.B, sample.G, sample.R} {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("channel value %v out of range 0-255", v)
			}
		}
	default:
		return nil, errors.New("either hex or all of b, g and r are required")
	}

	return &classifyColorResult{
		Sample: sample,
		Hex:    sample.Hex(),
		HSL:    sample.HSL(),
		Color:  classify.ClassifyColor(sample),
	}, nil
}

type imageClassifyShapeArgs struct {
	Vertices *int `json:"vertices"`
}

type classifyShapeResult struct {
	Vertices int    `json:"vertices"`
	Shape    string `json:"shape"`
}

func (s *Server) handleImageClassifyShape(args json.RawMessage) (interface{}, error) {
	var a imageClassifyShapeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Vertices == nil {
		return nil, errors.New("vertices is required")
	}
	return &classifyShapeResult{
		Vertices: *a.Vertices,
		Shape:    classify.ClassifyShape(*a.Vertices),
	}, nil
}
