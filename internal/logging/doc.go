// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase
// (operation, tool, page_id, ...) together with small constructors for them,
// and a minimal Logger interface with an slog-backed adapter for components
// that should not depend on slog directly.
package logging
