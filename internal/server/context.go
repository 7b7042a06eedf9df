package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/notiondo/notiondo/internal/instrumentation"
	"github.com/notiondo/notiondo/internal/notion"
)

// ServerContext holds the context for the MCP server: the Notion client the
// tools share, and the optional instrumentation hooks. The client is
// immutable after startup; tool invocations only read from it.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	notionClient *notion.Client
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context. The Notion client is
// required; a server without one has nothing to serve.
func NewServerContext(ctx context.Context, client *notion.Client) (*ServerContext, error) {
	if client == nil {
		return nil, fmt.Errorf("notion client is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		notionClient: client,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// NotionClient returns the shared Notion client.
func (sc *ServerContext) NotionClient() *notion.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.notionClient
}

// SetNotionClient replaces the Notion client. Used by tests.
func (sc *ServerContext) SetNotionClient(client *notion.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.notionClient = client
}

// Metrics returns the metrics recorder, or nil if not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder used for tool instrumentation.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger used for tool instrumentation.
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
