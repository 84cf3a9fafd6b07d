package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/CuriouslyCory/snippit.fyi/internal/api"
	"github.com/CuriouslyCory/snippit.fyi/internal/crypto"
)

func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the CLI with user authentication",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a new user account",
				Action: func(c *cli.Context) error {
					return handleUserRegistration()
				},
			},
			{
				Name:  "login",
				Usage: "Login with existing user credentials",
				Action: func(c *cli.Context) error {
					return handleUserLogin()
				},
			},
			{
				Name:  "logout",
				Usage: "Forget the stored API key",
				Action: func(c *cli.Context) error {
					if err := crypto.ClearAPIKey(); err != nil {
						return fmt.Errorf("could not clear API key: %w", err)
					}
					fmt.Println("👋 Logged out")
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			// Default action - show help
			return cli.ShowCommandHelp(c, "setup")
		},
	}
}

func handleUserRegistration() error {
	var answers struct {
		Name     string
		Email    string
		Password string
	}
	qs := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Display name:"}},
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
		{Name: "password", Prompt: &survey.Password{Message: "Password (min 8 chars):"}, Validate: survey.MinLength(8)},
	}
	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}

	client := api.NewClient()
	apiKey, err := client.Register(answers.Name, answers.Email, answers.Password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := crypto.StoreAPIKey(apiKey); err != nil {
		return fmt.Errorf("could not save API key: %w", err)
	}

	fmt.Println("✅ Account created and API key saved")
	return nil
}

func handleUserLogin() error {
	var answers struct {
		Email    string
		Password string
	}
	qs := []*survey.Question{
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
		{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.Required},
	}
	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}

	client := api.NewClient()
	apiKey, err := client.Login(answers.Email, answers.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := crypto.StoreAPIKey(apiKey); err != nil {
		return fmt.Errorf("could not save API key: %w", err)
	}

	fmt.Println("✅ Logged in and API key saved")
	return nil
}
