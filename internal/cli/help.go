// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: cli :: help
// ─────────────────────────────────────────────────────────────────────────────

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/ui"
)

const helpText = `
   %s
   A suite of tools to make working with the Raspberry Pi Pico a little faster

   Commands:
      build          Build a project
      upload         Upload a binary to the pico
      attach-sdk     Register the Pico SDK with Picotools so it knows where to find it
      check          Check that a project is ready to build and upload
      config         Show the stored picotools configuration
      version        Print the picotools version

   Run 'picotools help <command>' for the flags of a command.
`

// printHelp writes the command overview to stdout.
func printHelp() {
	fmt.Fprintf(ui.Stdout, helpText, banner())
}

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show help for picotools or one of its commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printHelp()
				return nil
			}
			root := cmd.Root()
			sub, rest, err := root.Find(args)
			if err != nil || sub == root || len(rest) > 0 {
				return unknownCommand(root, args[0])
			}
			return sub.Help()
		},
	}
}
