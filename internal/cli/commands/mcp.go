package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/CuriouslyCory/snippit.fyi/internal/api"
	"github.com/CuriouslyCory/snippit.fyi/internal/mcp"
)

func NewMcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server over stdio (for AI agent integration)",
		Action: func(c *cli.Context) error {
			return mcp.ServeStdio(api.NewClient())
		},
	}
}
