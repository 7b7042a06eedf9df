package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/notiondo/notiondo/internal/notion"
	"github.com/notiondo/notiondo/internal/server"
)

func newTestContext(t *testing.T, handler http.HandlerFunc) *server.ServerContext {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := notion.NewClient(notion.Config{
		APIKey:     "secret",
		DatabaseID: "db-123",
		BaseURL:    srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), client)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	return sc
}

func TestHandleDatabase(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [
				{
					"id": "11111111-2222-3333-4444-555555555555",
					"properties": {
						"Title": {"type": "title", "title": [{"plain_text": "First"}]}
					}
				}
			]
		}`))
	})

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "notion://database"

	contents, err := handleDatabase(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleDatabase() error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents length = %d, want 1", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want *mcp.TextResourceContents", contents[0])
	}
	if text.URI != "notion://database" {
		t.Errorf("URI = %q, want notion://database", text.URI)
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want application/json", text.MIMEType)
	}

	var data struct {
		DatabaseID string `json:"databaseId"`
		PageCount  int    `json:"pageCount"`
		Pages      []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"pages"`
	}
	if err := json.Unmarshal([]byte(text.Text), &data); err != nil {
		t.Fatalf("resource text is not valid JSON: %v", err)
	}
	if data.DatabaseID != "db-123" {
		t.Errorf("databaseId = %q, want db-123", data.DatabaseID)
	}
	if data.PageCount != 1 || len(data.Pages) != 1 {
		t.Fatalf("pageCount = %d, pages = %d, want 1 each", data.PageCount, len(data.Pages))
	}
	if data.Pages[0].Title != "First" {
		t.Errorf("title = %q, want First", data.Pages[0].Title)
	}
	if data.Pages[0].URL != "https://www.notion.so/11111111222233334444555555555555" {
		t.Errorf("url = %q, want hyphen-stripped notion.so URL", data.Pages[0].URL)
	}
}

func TestHandleDatabaseAPIError(t *testing.T) {
	sc := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "notion://database"

	if _, err := handleDatabase(context.Background(), request, sc); err == nil {
		t.Error("handleDatabase() should surface API errors")
	}
}
