// Package server holds the shared state of a running MCP server: the
// ServerContext carrying the Notion client and instrumentation hooks, the
// health check endpoints used by the HTTP transport, and the dedicated
// Prometheus metrics server.
package server
