// Package server implements the MCP (Model Context Protocol) server for
// 4D dataset mapping tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the 4D map
// computation through the MCP protocol, so any MCP-compatible client
// can reduce scanning datasets and inspect the results.
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
// Dataset Information:
//   - dataset_load: Load a dataset and get shape, dtype and calibrations
//
// Mapping Operations:
//   - map_region_sum: Sum collection frames over selected regions into a 2D map
//   - map_preview: Render the map as a colormapped PNG
//   - mask_preview: Render the combined region mask
//   - dataset_frame: Render one collection frame (browse the source)
//
// # Error Handling
//
// Protocol-level failures use standard JSON-RPC error codes (-32601
// unknown method, -32602 invalid params). Tool execution failures,
// including the non-4D source error, are reported with code -32000 and
// the failure reason in the error data.
package server
