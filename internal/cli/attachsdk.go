package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/config"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/ui"
)

func newAttachSDKCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach-sdk <path-to-sdk>",
		Short: "Register the Pico SDK with Picotools so it knows where to find it",
		Long: `Store the Pico SDK location in ~/.picotools so build and upload -B
no longer need '-s'. Other keys in the file are kept.`,
		Example: `  picotools attach-sdk ~/pico/pico-sdk`,
		// Argument count is checked by options.AttachSDK so the error kinds
		// stay distinct.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := options.AttachSDK(projectDir(), args)
			if err != nil {
				return err
			}
			store, err := config.Open()
			if err != nil {
				return err
			}
			if err := store.Set(config.KeySDK, sdk); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Attached Pico SDK '%s'", sdk))
			ui.Step("config", store.File())
			return nil
		},
	}
}
