package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/notiondo/notiondo/internal/notion"
	"github.com/notiondo/notiondo/internal/server"
)

// RegisterDatabaseResources registers resources describing the configured
// Notion database, so MCP clients can inspect it without spending a tool
// call.
func RegisterDatabaseResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	databaseResource := mcp.NewResource(
		"notion://database",
		"Configured Notion Database",
		mcp.WithResourceDescription("The pages of the Notion database this server is configured for"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(databaseResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleDatabase(ctx, request, sc)
	})

	return nil
}

// handleDatabase returns a compact listing of the configured database.
func handleDatabase(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.NotionClient()

	result, err := client.QueryDatabase(ctx, notion.DefaultQueryPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query database: %w", err)
	}

	pages := make([]map[string]interface{}, 0, len(result.Results))
	for _, page := range result.Results {
		pages = append(pages, map[string]interface{}{
			"id":    page.ID,
			"title": notion.ExtractTitle(page.Property("Title")),
			"url":   page.URL(),
		})
	}

	databaseData := map[string]interface{}{
		"databaseId": client.DatabaseID(),
		"pageCount":  len(pages),
		"pages":      pages,
	}

	jsonData, err := json.MarshalIndent(databaseData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal database data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
