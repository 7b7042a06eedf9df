// Package cmd implements the notiondo command line interface.
//
// Available commands:
//   - serve: start the MCP server (stdio or streamable-http transport)
//   - version: print version information
//   - generate-docs: generate markdown documentation for the MCP tools
//
// Running notiondo without a subcommand starts the server with the default
// stdio transport.
package cmd
