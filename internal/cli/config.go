// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: cli :: config
//
//  picotools config              → table of stored settings
//  picotools config --raw        → key = value lines
//  picotools config get <key>    → bare value, exit 8 if unset
//  picotools config path         → location of the config file
// ─────────────────────────────────────────────────────────────────────────────

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/config"
	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/ui"
)

func newConfigCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the stored picotools configuration",
		Args:  noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Open()
			if err != nil {
				return err
			}
			all := store.All()
			if len(all) == 0 {
				if !raw {
					ui.Info(fmt.Sprintf("%s is empty. Run 'picotools attach-sdk <path>' to register the SDK", store.File()))
				}
				return nil
			}
			entries := make([]ui.ConfigEntry, 0, len(all))
			for _, e := range all {
				entries = append(entries, ui.ConfigEntry{Key: e.Key, Value: e.Value, Comment: e.Comment})
			}
			ui.PrintConfig(store.File(), entries, raw)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print key = value lines without styling")

	cmd.AddCommand(newConfigGetCmd(), newConfigPathCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print one stored value",
		Example: "  picotools config get pico-sdk",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return errs.MissingArgument("no key given. Usage: picotools config get <key>")
			case len(args) > 1:
				return errs.ExcessArguments("excessive arguments provided: expected 1, got %d", len(args))
			}
			store, err := config.Open()
			if err != nil {
				return err
			}
			v, ok := store.Get(args[0])
			if !ok {
				return &errs.Error{
					Kind:    errs.KindConfigRead,
					Message: fmt.Sprintf("key '%s' is not set in %s", args[0], store.File()),
					Path:    store.File(),
				}
			}
			fmt.Fprintln(ui.Stdout, v)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the config file",
		Args:  noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return errs.ConfigRead(config.FileName, err)
			}
			fmt.Fprintln(ui.Stdout, p)
			return nil
		},
	}
}
