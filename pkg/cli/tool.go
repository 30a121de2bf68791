package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/secmon-lab/hemera/pkg/agent/tool/core"
	"github.com/secmon-lab/hemera/pkg/service/notes"
	"github.com/urfave/cli/v3"
)

func cmdTool() *cli.Command {
	return &cli.Command{
		Name:  "tool",
		Usage: "Inspect the assistant's tool catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the tools the chat agent can call",
				Action: func(ctx context.Context, c *cli.Command) error {
					// Listing only reads the descriptors, so placeholder
					// backends are enough to build the full catalog.
					heading := color.New(color.FgCyan, color.Bold)
					for _, t := range core.NewWithCalendar(notes.New(""), nil) {
						fmt.Printf("%s\n    %s\n", heading.Sprint(t.Name()), t.Description())
					}
					return nil
				},
			},
		},
	}
}
