package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/CuriouslyCory/snippit.fyi/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "0.3.0"

func main() {
	app := &cli.App{
		Name:    "snipit",
		Usage:   "Personalized card feed CLI",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewSetupCommand(),
			commands.NewNextCommand(),
			commands.NewCreateCommand(),
			commands.NewCheckCommand(),
			commands.NewSkipCommand(),
			commands.NewMcpCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
