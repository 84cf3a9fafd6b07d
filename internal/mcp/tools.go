package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NextSnipitInput is the input for the next_snipit tool.
type NextSnipitInput struct {
	Feed string `json:"feed,omitempty" jsonschema:"feed mode, 'focus' (default) or 'followed'"`
	Not  uint   `json:"not,omitempty" jsonschema:"snipit id to exclude, usually the card just shown"`
}

// SnipitIDInput is the input for tools acting on one snipit.
type SnipitIDInput struct {
	ID uint `json:"id" jsonschema:"snipit id"`
}

// CreateSnipitInput is the input for the create_snipit tool.
type CreateSnipitInput struct {
	Prompt   string   `json:"prompt" jsonschema:"card content, markdown allowed"`
	IsPublic bool     `json:"is_public,omitempty" jsonschema:"make the card visible to everyone"`
	Tags     []string `json:"tags,omitempty" jsonschema:"tags for the card"`
}

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "next_snipit",
		Description: "Fetch the next card from the user's feed. Returns null when no card is available. Pass the previous card's id as 'not' to avoid an immediate repeat.",
	}, handleNextSnipit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_snipit",
		Description: "Acknowledge a card. Checked cards surface less often over time.",
	}, handleCheckSnipit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "skip_snipit",
		Description: "Permanently remove a card from the user's feed. This cannot be undone.",
	}, handleSkipSnipit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_snipit",
		Description: "Create a new card.",
	}, handleCreateSnipit)
}

func handleNextSnipit(ctx context.Context, req *mcp.CallToolRequest, input NextSnipitInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	feed := input.Feed
	if feed == "" {
		feed = "focus"
	}
	snipit, err := apiClient.GetNext(feed, input.Not)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]interface{}{"snipit": snipit})
	return res, nil, err
}

func handleCheckSnipit(ctx context.Context, req *mcp.CallToolRequest, input SnipitIDInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if err := apiClient.Check(input.ID); err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]interface{}{"success": true})
	return res, nil, err
}

func handleSkipSnipit(ctx context.Context, req *mcp.CallToolRequest, input SnipitIDInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if err := apiClient.Skip(input.ID); err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]interface{}{"success": true})
	return res, nil, err
}

func handleCreateSnipit(ctx context.Context, req *mcp.CallToolRequest, input CreateSnipitInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	snipit, err := apiClient.CreateSnipit(input.Prompt, input.IsPublic, input.Tags)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(snipit)
	return res, nil, err
}
