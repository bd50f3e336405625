// Package server implements the MCP (Model Context Protocol) server for the
// gdimage tools.
//
// This package provides a JSON-RPC 2.0 server that exposes image loading,
// drawing, resizing and cropping through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Dimensions, decoded format, alpha presence and file size
//   - image_dimensions: Width and height
//   - image_sample_color: Color at a pixel, including the packed GD value
//
// Drawing:
//   - image_create: New canvas filled with a color
//   - image_fill: Fill the image or an inclusive rectangle
//
// Transforms:
//   - image_resize: exact, width, height or max_width policies
//   - image_crop: Rectangular region, clipped at the right and bottom edges
//   - image_square_crop: Largest square placed by gravity
//
// Tools that produce an image write it to output_path when given (PNG or
// JPEG by extension, never replacing a file unless overwrite is set) and
// otherwise return it inline as base64 PNG.
//
// Every call loads its input from disk and releases it before responding.
// Nothing is cached between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32601 (unknown method) or
//     -32602 (malformed tools/call params)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Logging
//
// Set GDIMAGE_LOG_LEVEL=debug to log each request and tool call to stderr.
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
