// Package server exposes the shape annotator as an MCP (Model Context
// Protocol) server.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - Input: JSON-RPC requests on stdin
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods are initialize, tools/list, tools/call and ping.
//
// # Available Tools
//
// Image Information:
//   - image_load: Load an image and report its metadata
//   - image_dimensions: Get width and height
//
// Annotation:
//   - image_annotate_shapes: Annotate every closed shape, returning the image
//     or writing it to disk
//   - image_detect_shapes: Report the regions without the annotated image
//   - image_region_crop: Crop the expanded box of one detected region
//   - image_edge_detect: Return the edge map the detector works from
//
// Classification:
//   - image_classify_color: Name a B-G-R sample or hex color
//   - image_classify_shape: Name a polygon by its vertex count
//
// Annotation results carry a run ID (a random UUID) so a client can tell
// repeated runs over the same file apart.
//
// # Image Caching
//
// Source images are cached by path for the lifetime of the server. The
// pipeline never modifies a cached image; every annotation works on a copy.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. Malformed tools/call parameters
// return -32602, unknown methods -32601.
package server
