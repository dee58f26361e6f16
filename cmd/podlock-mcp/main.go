package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ludo-technologies/podlock/internal/version"
	"github.com/ludo-technologies/podlock/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const serverName = "podlock"

func main() {
	// MCP uses stdout for JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	// PODLOCK_CONFIG pins one configuration file for every call
	configPath := os.Getenv("PODLOCK_CONFIG")
	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(nil, configPath)))

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	if configPath != "" {
		log.Printf("Using configuration: %s\n", configPath)
	}
	log.Println("Registered tools:")
	log.Printf("  - %s: Parse a single Podfile.lock\n", mcp.ToolParseLockfile)
	log.Printf("  - %s: Parse every lock file under a directory\n", mcp.ToolScanLockfiles)
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
