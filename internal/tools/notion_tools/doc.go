// Package notion_tools provides the MCP tools for working with a Notion
// database and its pages.
//
// # Available Tools
//
//   - show_all_notion_pages: List all pages of the configured database
//   - notion_update_status: Update the Status property of a page
//   - notion_read_page_content: Read a page's properties and child blocks
//   - notion_update_page_content: Append content blocks to a page
//   - notion_add_comment: Append a callout comment to a page
//
// # Error handling
//
// Tools validate their required arguments before issuing any API call and
// return a textual error result when something is missing. Notion API
// failures are likewise converted into textual error results at the handler
// boundary; the only hard failure a caller can provoke is dispatching an
// unknown tool name.
package notion_tools
