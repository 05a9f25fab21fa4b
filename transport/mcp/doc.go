// Package mcp provides a Model Context Protocol server for Martian Robots.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions that proxy to the REST API
//   - Text formatting of runs and missions
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - simulate: Run a mission given as text
//   - simulate_mission: Run a mission from the library
//   - get_run: Get a completed run with its report
//   - list_runs: List completed runs
//   - delete_run: Forget a completed run
//   - list_missions: List library missions
//   - get_mission: Show a library mission
//   - rules: Input format and movement rules
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: JSON-RPC messages posted to /mcp on the API server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
