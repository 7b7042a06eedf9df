package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/notiondo/notiondo/internal/instrumentation"
	"github.com/notiondo/notiondo/internal/notion"
	"github.com/notiondo/notiondo/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	client, err := notion.NewClient(notion.Config{APIKey: "secret", DatabaseID: "db"})
	if err != nil {
		t.Fatalf("failed to create notion client: %v", err)
	}
	sc, err := server.NewServerContext(context.Background(), client)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestGetPageIDFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{"nil args", nil, ""},
		{"missing page_id", map[string]interface{}{"comment": "x"}, ""},
		{"present", map[string]interface{}{"page_id": "p1"}, "p1"},
		{"non-string", map[string]interface{}{"page_id": 42}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetPageIDFromArgs(tt.args); got != tt.expected {
				t.Errorf("GetPageIDFromArgs() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	// Create a handler that returns success
	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	// Wrap with instrumentation
	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	// Call the wrapped handler
	result, err := wrapped(ctx, mcp.CallToolRequest{})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
	if result == nil {
		t.Error("expected result, got nil")
	}
}

func TestInstrumentedToolHandler_Error(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	// Create a handler that returns an error
	expectedErr := errors.New("test error")
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, expectedErr
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	_, err := wrapped(ctx, mcp.CallToolRequest{})
	if err != expectedErr {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestInstrumentedToolHandler_ErrorResult(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	// Create a handler that returns an error result (not Go error)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("error message"), nil
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)

	result, err := wrapped(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if !result.IsError {
		t.Error("expected result.IsError to be true")
	}
}

func TestInstrumentedToolHandler_AuditLogging(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	sc.SetAuditLogger(instrumentation.NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := InstrumentedToolHandler("notion_update_status", sc, handler)
	if _, err := wrapped(ctx, mcp.CallToolRequest{}); err != nil {
		t.Fatalf("wrapped handler error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "tool_executed") {
		t.Errorf("audit log missing tool_executed: %s", output)
	}
	if !strings.Contains(output, "notion_update_status") {
		t.Errorf("audit log missing tool name: %s", output)
	}
}

func TestInstrumentedToolHandlerWithOperations_Success(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	sc.SetAuditLogger(instrumentation.NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	wrapped := InstrumentedToolHandlerWithOperations("show_all_notion_pages", []string{"queryDatabase"}, sc, handler)

	result, err := wrapped(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
	if result == nil {
		t.Error("expected result, got nil")
	}
	if !strings.Contains(buf.String(), "queryDatabase") {
		t.Errorf("audit log missing operation: %s", buf.String())
	}
}

func TestInstrumentedToolHandlerWithOperations_MultipleOperations(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	sc.SetAuditLogger(instrumentation.NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("success"), nil
	}

	// A tool backed by two API calls is attributed to both operations
	wrapped := InstrumentedToolHandlerWithOperations("notion_read_page_content", []string{"getPage", "getBlockChildren"}, sc, handler)
	if _, err := wrapped(ctx, mcp.CallToolRequest{}); err != nil {
		t.Fatalf("wrapped handler error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "getPage,getBlockChildren") {
		t.Errorf("audit log missing composite operation: %s", output)
	}
}

func TestInstrumentedToolHandler_NoInstrumentation(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	// Without metrics or audit logger, the wrapper is a pass-through
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("plain"), nil
	}

	wrapped := InstrumentedToolHandler("test_tool", sc, handler)
	result, err := wrapped(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result == nil {
		t.Error("expected result, got nil")
	}
}
