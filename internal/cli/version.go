package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/ui"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the picotools version",
		Args:  noPositional,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(ui.Stdout, "picotools %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
