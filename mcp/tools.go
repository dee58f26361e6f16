package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names
const (
	ToolParseLockfile = "parse_lockfile"
	ToolScanLockfiles = "scan_lockfiles"
)

// RegisterTools registers the podlock tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool(ToolParseLockfile,
		mcp.WithDescription("Parse a CocoaPods Podfile.lock and return its pods, dependency constraints, spec repos, external sources and checksums as JSON"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a Podfile.lock, or to a directory containing one")),
		mcp.WithBoolean("include_checksums",
			mcp.Description("Include SPEC CHECKSUMS in the result (default: false)")),
	), h.HandleParseLockfile)

	s.AddTool(mcp.NewTool(ToolScanLockfiles,
		mcp.WithDescription("Find and parse every Podfile.lock under a directory, returning per-file results and totals"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory (or file) to scan")),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories (default: from configuration, normally true)")),
	), h.HandleScanLockfiles)
}
