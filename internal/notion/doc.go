// Package notion provides a client for the Notion API and the codecs that
// translate between its verbose, type-tagged JSON shapes and the compact
// shapes returned by the MCP tools.
//
// This package covers exactly the API surface the tools need:
//   - Querying the configured database (sorted by creation time descending)
//   - Reading a page's properties and its immediate child blocks
//   - Updating a page's Status property
//   - Appending child blocks to a page
//
// # Property and block codecs
//
// Notion tags every property and block with a type discriminator and nests
// the payload under a key named after that type. All extraction and
// formatting logic branches on the tag, never on the property's declared
// name, so the codecs are correct regardless of how a database names its
// columns. Types outside the supported set (title, rich_text, select,
// multi_select, date for properties; paragraph, heading_1..3,
// bulleted_list_item, numbered_list_item for blocks) are passed through
// unmodified.
//
// # Authentication
//
// The client authenticates with a static integration token sent as a bearer
// token, together with a fixed Notion-Version header. Both come from the
// environment at startup; missing credentials fail client construction.
//
// # Example Usage
//
//	client, err := notion.NewClient(notion.Config{
//	    APIKey:     os.Getenv("NOTION_API_KEY"),
//	    DatabaseID: os.Getenv("NOTION_DATABASE_ID"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.QueryDatabase(ctx, notion.ListQueryPageSize)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range result.Results {
//	    fmt.Println(notion.ExtractTitle(page.Property("Title")), page.URL())
//	}
package notion
