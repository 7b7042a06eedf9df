package notion_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/notiondo/notiondo/internal/server"
	"github.com/notiondo/notiondo/internal/tools/common"
)

// Tool names. This is the closed set the dispatcher routes on.
const (
	ToolShowAllPages      = "show_all_notion_pages"
	ToolUpdateStatus      = "notion_update_status"
	ToolReadPageContent   = "notion_read_page_content"
	ToolUpdatePageContent = "notion_update_page_content"
	ToolAddComment        = "notion_add_comment"
)

// defaultCommentIcon is the emoji used when notion_add_comment is called
// without an icon.
const defaultCommentIcon = "💬"

// apiOperations maps each tool to the Notion API operations it performs,
// for operation-level metrics. The read tool issues two calls per invocation.
var apiOperations = map[string][]string{
	ToolShowAllPages:      {"queryDatabase"},
	ToolUpdateStatus:      {"updateStatus"},
	ToolReadPageContent:   {"getPage", "getBlockChildren"},
	ToolUpdatePageContent: {"appendBlockChildren"},
	ToolAddComment:        {"appendBlockChildren"},
}

// Tools returns the declarative catalog of the supported tools and their
// input schemas. The catalog itself carries no logic; it is consumed at
// registration time and by the generate-docs command.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(ToolShowAllPages,
			mcp.WithDescription("Show all Notion pages from the database given in the configuration"),
		),
		mcp.NewTool(ToolUpdateStatus,
			mcp.WithDescription("Update the Status of a Notion page"),
			mcp.WithString("page_id",
				mcp.Required(),
				mcp.Description("The ID of the Notion page to update"),
			),
			mcp.WithString("target_status",
				mcp.Required(),
				mcp.Description("The status to set (e.g., 'Done', 'In Progress', 'To Do', etc.)"),
			),
		),
		mcp.NewTool(ToolReadPageContent,
			mcp.WithDescription("Read the content of a Notion page"),
			mcp.WithString("page_id",
				mcp.Required(),
				mcp.Description("The ID of the Notion page to read"),
			),
		),
		mcp.NewTool(ToolUpdatePageContent,
			mcp.WithDescription("Update the content of a Notion page"),
			mcp.WithString("page_id",
				mcp.Required(),
				mcp.Description("The ID of the Notion page to update"),
			),
			mcp.WithArray("content",
				mcp.Required(),
				mcp.Description("Array of content blocks to add to the page"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"description": "The type of block (paragraph, heading_1, etc.)",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The text content of the block",
						},
					},
					"required": []string{"type", "text"},
				}),
			),
		),
		mcp.NewTool(ToolAddComment,
			mcp.WithDescription("Add a comment to a Notion page"),
			mcp.WithString("page_id",
				mcp.Required(),
				mcp.Description("The ID of the Notion page to add a comment to"),
			),
			mcp.WithString("comment",
				mcp.Required(),
				mcp.Description("The comment text to add"),
			),
			mcp.WithString("icon",
				mcp.Description("The emoji to use as the comment icon (optional)"),
				mcp.DefaultString(defaultCommentIcon),
			),
		),
	}
}

// RegisterNotionTools registers all Notion tools with the MCP server,
// wrapping each handler with metrics and audit instrumentation.
func RegisterNotionTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	for _, tool := range Tools() {
		name := tool.Name
		handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			return Dispatch(ctx, sc, name, args)
		}
		s.AddTool(tool, common.InstrumentedToolHandlerWithOperations(name, apiOperations[name], sc, handler))
	}
	return nil
}
