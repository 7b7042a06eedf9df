package notion_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/notiondo/notiondo/internal/logging"
	"github.com/notiondo/notiondo/internal/notion"
	"github.com/notiondo/notiondo/internal/server"
)

// Dispatch routes a tool invocation to its handler. An unrecognized name is
// a contract error and is returned as an error, which the MCP layer
// propagates as a protocol fault; every recognized tool always yields a
// textual result, even on failure. Handlers validate required arguments
// before issuing any external call and convert external failures into
// textual error results at their boundary.
func Dispatch(ctx context.Context, sc *server.ServerContext, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	switch name {
	case ToolShowAllPages:
		return handleShowAllPages(ctx, sc)
	case ToolUpdateStatus:
		return handleUpdateStatus(ctx, sc, args)
	case ToolReadPageContent:
		return handleReadPageContent(ctx, sc, args)
	case ToolUpdatePageContent:
		return handleUpdatePageContent(ctx, sc, args)
	case ToolAddComment:
		return handleAddComment(ctx, sc, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// pageSummary is the compact page shape returned by show_all_notion_pages.
// The field order (and the two spaced key names) matches what callers of
// the listing tool already depend on.
type pageSummary struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Clients        []string `json:"clients"`
	CreatedTime    string   `json:"Created time"`
	LastEditedTime string   `json:"Last edited time"`
	URL            string   `json:"url"`
	Status         string   `json:"status"`
}

// pageContent is the shape returned by notion_read_page_content.
type pageContent struct {
	Title      string                   `json:"title"`
	Properties map[string]any           `json:"properties"`
	Blocks     []*notion.FormattedBlock `json:"blocks"`
}

func handleShowAllPages(ctx context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client := sc.NotionClient()

	result, err := client.QueryDatabase(ctx, notion.ListQueryPageSize)
	if err != nil {
		slog.Error("notion API error", logging.Tool(ToolShowAllPages), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error listing pages: %v", err)), nil
	}

	summaries := make([]pageSummary, 0, len(result.Results))
	for _, page := range result.Results {
		summaries = append(summaries, pageSummary{
			ID:             page.ID,
			Title:          notion.ExtractTitle(page.Property("Title")),
			Clients:        notion.ExtractMultiSelect(page.Property("Clients")),
			CreatedTime:    page.CreatedTime,
			LastEditedTime: page.LastEditedTime,
			URL:            page.URL(),
			Status:         notion.ExtractSelect(page.Property("Status")),
		})
	}

	text, err := toIndentedJSON(summaries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing pages: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleUpdateStatus(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	pageID, _ := args["page_id"].(string)
	targetStatus, _ := args["target_status"].(string)

	if pageID == "" || targetStatus == "" {
		return mcp.NewToolResultError("Error: Both page_id and target_status are required."), nil
	}

	if err := sc.NotionClient().UpdateStatus(ctx, pageID, targetStatus); err != nil {
		slog.Error("notion API error", logging.Tool(ToolUpdateStatus), logging.Page(pageID), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error updating status: %v\n"+
			"Possible issues:\n"+
			"1. Invalid page ID\n"+
			"2. Invalid status value (must match one of the select options in your database)\n"+
			"3. API permission issues (make sure your integration has write access)", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully updated page status to '%s'.", targetStatus)), nil
}

func handleReadPageContent(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	pageID, _ := args["page_id"].(string)
	if pageID == "" {
		return mcp.NewToolResultError("Error: page_id is required."), nil
	}

	client := sc.NotionClient()

	page, err := client.GetPage(ctx, pageID)
	if err != nil {
		slog.Error("notion API error", logging.Tool(ToolReadPageContent), logging.Page(pageID), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error reading page content: %v", err)), nil
	}

	blocks, err := client.GetBlockChildren(ctx, pageID)
	if err != nil {
		slog.Error("notion API error", logging.Tool(ToolReadPageContent), logging.Page(pageID), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error reading page content: %v", err)), nil
	}

	properties := make(map[string]any, len(page.Properties))
	for name, property := range page.Properties {
		properties[name] = notion.FormatProperty(&property)
	}

	formattedBlocks := make([]*notion.FormattedBlock, 0, len(blocks))
	for i := range blocks {
		formattedBlocks = append(formattedBlocks, notion.FormatBlock(&blocks[i]))
	}

	content := pageContent{
		Title:      notion.ExtractTitle(page.Property("Title")),
		Properties: properties,
		Blocks:     formattedBlocks,
	}

	text, err := toIndentedJSON(content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading page content: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleUpdatePageContent(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	pageID, _ := args["page_id"].(string)
	content, _ := args["content"].([]interface{})

	if pageID == "" || len(content) == 0 {
		return mcp.NewToolResultError("Error: Both page_id and content are required."), nil
	}

	blocks, err := parseContentBlocks(content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	if err := sc.NotionClient().AppendBlockChildren(ctx, pageID, blocks); err != nil {
		slog.Error("notion API error", logging.Tool(ToolUpdatePageContent), logging.Page(pageID), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error updating page content: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully updated page content with %d blocks.", len(blocks))), nil
}

func handleAddComment(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	pageID, _ := args["page_id"].(string)
	comment, _ := args["comment"].(string)

	if pageID == "" || comment == "" {
		return mcp.NewToolResultError("Error: Both page_id and comment are required."), nil
	}

	icon := defaultCommentIcon
	if iconArg, ok := args["icon"].(string); ok && iconArg != "" {
		icon = iconArg
	}

	commentBlock := notion.NewCalloutBlock(comment, icon)
	if err := sc.NotionClient().AppendBlockChildren(ctx, pageID, []notion.Block{commentBlock}); err != nil {
		slog.Error("notion API error", logging.Tool(ToolAddComment), logging.Page(pageID), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error adding comment: %v", err)), nil
	}

	return mcp.NewToolResultText("Successfully added comment to the page."), nil
}

// parseContentBlocks converts the tool's content argument (a sequence of
// {type, text} objects) into blocks for the write path.
func parseContentBlocks(content []interface{}) ([]notion.Block, error) {
	blocks := make([]notion.Block, 0, len(content))
	for i, entry := range content {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("content entry %d must be an object with 'type' and 'text' fields", i)
		}
		blockType, ok := fields["type"].(string)
		if !ok || blockType == "" {
			return nil, fmt.Errorf("content entry %d is missing the 'type' field", i)
		}
		text, ok := fields["text"].(string)
		if !ok {
			return nil, fmt.Errorf("content entry %d is missing the 'text' field", i)
		}
		blocks = append(blocks, notion.NewTextBlock(blockType, text))
	}
	return blocks, nil
}

// toIndentedJSON renders a result payload as 2-space indented JSON with
// non-ASCII characters and HTML metacharacters preserved literally.
func toIndentedJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
