// Package mcp exposes the snippit feed to AI agents over the Model Context
// Protocol (stdio transport).
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CuriouslyCory/snippit.fyi/internal/api"
)

// apiClient holds the API client for tool handlers
var apiClient *api.Client

// ServeStdio starts the MCP server using the official go-sdk over stdio
func ServeStdio(client *api.Client) error {
	if client == nil {
		return errors.New("api client is required")
	}
	apiClient = client

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "snipit",
			Version: "0.3.0",
		},
		&mcp.ServerOptions{
			Instructions: `📇 SNIPIT - personalized card feed

Tools:
- next_snipit: fetch the next card (feed: "focus" or "followed", not: id to exclude)
- check_snipit: acknowledge a card (makes it show up less often)
- skip_snipit: permanently remove a card from the user's feed
- create_snipit: add a new card

Cards the user checks often surface less; skipped cards never return.`,
		},
	)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// textResult converts any data to a CallToolResult with JSON TextContent.
func textResult(data interface{}) (*mcp.CallToolResult, error) {
	if data == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "{}"},
			},
		}, nil
	}
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, nil
}
