// Package instrumentation provides OpenTelemetry-based metrics and audit
// logging for the MCP server.
//
// # Metrics
//
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//   - notion_api_operations_total: Counter of Notion API operations by operation and status
//   - notion_api_operation_duration_seconds: Histogram of Notion API operation durations
//
// Metrics are exported through the Prometheus exporter by default (exposed
// by the metrics HTTP server via promhttp) or to stdout for debugging.
// Instrumentation can be disabled entirely with INSTRUMENTATION_ENABLED=false;
// a disabled Provider hands out a no-op Metrics recorder so call sites stay
// unconditional.
//
// # Audit logging
//
// Every tool invocation is logged through AuditLogger with a consistent
// attribute set (tool, duration, success, page_id, operation, trace_id).
package instrumentation
