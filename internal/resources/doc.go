// Package resources registers MCP resources exposing the configured Notion
// database, complementing the tools with read-only, URI-addressable views.
package resources
