package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/CuriouslyCory/snippit.fyi/internal/api"
)

func NewCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new snipit",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "tags", Aliases: []string{"t"}, Usage: "tags for the snipit"},
			&cli.BoolFlag{Name: "public", Aliases: []string{"p"}, Usage: "make the snipit visible to everyone"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("prompt is required, e.g. snipit create \"Drink water\"")
			}
			prompt := strings.Join(c.Args().Slice(), " ")

			client := api.NewClient()
			snipit, err := client.CreateSnipit(prompt, c.Bool("public"), c.StringSlice("tags"))
			if err != nil {
				return fmt.Errorf("create failed: %w", err)
			}
			fmt.Printf("✅ Created snipit #%d\n", snipit.ID)
			return nil
		},
	}
}

func NewCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Acknowledge a snipit by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseIDArg(c)
			if err != nil {
				return err
			}
			if err := api.NewClient().Check(id); err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			fmt.Println("✅ Checked")
			return nil
		},
	}
}

func NewSkipCommand() *cli.Command {
	return &cli.Command{
		Name:      "skip",
		Usage:     "Permanently skip a snipit by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseIDArg(c)
			if err != nil {
				return err
			}
			if err := api.NewClient().Skip(id); err != nil {
				return fmt.Errorf("skip failed: %w", err)
			}
			fmt.Println("🚫 Skipped — you won't see this one again")
			return nil
		},
	}
}

func parseIDArg(c *cli.Context) (uint, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("snipit id is required")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid snipit id %q", c.Args().First())
	}
	return uint(id), nil
}
