package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleParseLockfile handles the parse_lockfile tool
func (h *HandlerSet) HandleParseLockfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}
	if err == nil && info.IsDir() {
		path = filepath.Join(path, domain.DefaultLockfileName)
	}

	includeChecksums, _ := args["include_checksums"].(bool)

	resp, err := h.deps.LockfileService().Parse(ctx, domain.ParseRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}

	if !includeChecksums {
		trimmed := *resp.Lockfile
		trimmed.Checksums = nil
		resp.Lockfile = &trimmed
	}

	return jsonResult(resp)
}

// scanFileSummary is one file of a scan_lockfiles result. Lock file bodies are
// left out so large monorepos stay within a client's context window.
type scanFileSummary struct {
	Path             string `json:"path"`
	Pods             int    `json:"pods,omitempty"`
	Checkouts        int    `json:"checkouts,omitempty"`
	CocoaPodsVersion string `json:"cocoapods_version,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorCode        string `json:"error_code,omitempty"`
}

// HandleScanLockfiles handles the scan_lockfiles tool
func (h *HandlerSet) HandleScanLockfiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg, err := h.deps.ConfigFor(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}

	recursive := cfg.Scan.Recursive
	if r, ok := args["recursive"].(bool); ok {
		recursive = r
	}

	resp, err := h.deps.LockfileService().Scan(ctx, domain.ScanRequest{
		Paths:           []string{path},
		Recursive:       recursive,
		IncludePatterns: cfg.Scan.IncludePatterns,
		ExcludePatterns: cfg.Scan.ExcludePatterns,
		MaxConcurrency:  cfg.Scan.MaxConcurrency,
		Timeout:         time.Duration(cfg.Scan.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	files := make([]scanFileSummary, len(resp.Files))
	for i, f := range resp.Files {
		files[i] = scanFileSummary{Path: f.Path, Error: f.Error, ErrorCode: f.ErrorCode}
		if !f.Failed() {
			files[i].Pods = len(f.Lockfile.Pods)
			files[i].Checkouts = len(f.Lockfile.Checkouts)
			files[i].CocoaPodsVersion = f.Lockfile.CocoaPodsVersion.String()
		}
	}

	return jsonResult(map[string]interface{}{
		"summary": resp.Summary,
		"files":   files,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
