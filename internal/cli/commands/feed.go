package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/CuriouslyCory/snippit.fyi/internal/api"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

var metaStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241"))

func NewNextCommand() *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Show the next card from your feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "feed", Aliases: []string{"f"}, Value: "focus", Usage: "feed mode: focus or followed"},
			&cli.BoolFlag{Name: "copy", Aliases: []string{"c"}, Usage: "copy the card content to the clipboard"},
			&cli.BoolFlag{Name: "once", Usage: "show a single card without the action prompt"},
		},
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			feed := c.String("feed")
			var lastShown uint

			for {
				snipit, err := client.GetNext(feed, lastShown)
				if err != nil {
					return fmt.Errorf("could not fetch next card: %w", err)
				}
				if snipit == nil {
					fmt.Println("📭 No snipits available right now")
					return nil
				}

				printCard(snipit)

				if c.Bool("copy") {
					if err := clipboard.WriteAll(snipit.Prompt); err == nil {
						fmt.Println("📋 Copied to clipboard")
					}
				}
				if c.Bool("once") {
					return nil
				}

				action := ""
				prompt := &survey.Select{
					Message: "What next?",
					Options: []string{"check", "skip", "next", "quit"},
					Default: "check",
				}
				if err := survey.AskOne(prompt, &action); err != nil {
					return err
				}

				switch action {
				case "check":
					if err := client.Check(snipit.ID); err != nil {
						return fmt.Errorf("check failed: %w", err)
					}
					fmt.Println("✅ Checked")
				case "skip":
					if err := client.Skip(snipit.ID); err != nil {
						return fmt.Errorf("skip failed: %w", err)
					}
					fmt.Println("🚫 Skipped — you won't see this one again")
				case "quit":
					return nil
				}
				lastShown = snipit.ID
			}
		},
	}
}

// printCard renders the snipit as a bordered markdown card, falling back to
// plain text when stdout is not a terminal.
func printCard(snipit *models.Snipit) {
	meta := cardMeta(snipit)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("#%d %s\n%s\n", snipit.ID, meta, snipit.Prompt)
		return
	}

	body := snipit.Prompt
	if rendered, err := glamour.Render(snipit.Prompt, "dark"); err == nil {
		body = strings.TrimSpace(rendered)
	}

	fmt.Println(cardStyle.Render(body))
	fmt.Println(metaStyle.Render(fmt.Sprintf("#%d %s", snipit.ID, meta)))
}

func cardMeta(snipit *models.Snipit) string {
	parts := []string{}
	if snipit.Creator != nil && snipit.Creator.Name != "" {
		parts = append(parts, "by "+snipit.Creator.Name)
	}
	if len(snipit.Tags) > 0 {
		names := make([]string, 0, len(snipit.Tags))
		for _, tag := range snipit.Tags {
			names = append(names, "#"+tag.Name)
		}
		parts = append(parts, strings.Join(names, " "))
	}
	if len(snipit.Interactions) > 0 {
		parts = append(parts, fmt.Sprintf("checked %d×", snipit.Interactions[0].NumChecked))
	}
	parts = append(parts, fmt.Sprintf("%d followers", snipit.NumFollows))
	return strings.Join(parts, " · ")
}
