// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: cli :: root cobra command + subcommand registration
// ─────────────────────────────────────────────────────────────────────────────

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/toolchain"
	"github.com/picotools/cli/internal/ui"
)

// Version is the picotools release.
const Version = "0.0.1"

var (
	globalVerbose bool
	globalNoColor bool
)

// newRunner builds the toolchain runner used by build and upload -B.
var newRunner = func() toolchain.Runner {
	return toolchain.NewExec()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "picotools",
		Short: "Build and flash Raspberry Pi Pico projects",
		Long: banner() + `
A suite of tools to make working with the Raspberry Pi Pico a little faster.

Run 'picotools <command> --help' for details on each command.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if globalNoColor {
				color.NoColor = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printHelp()
				return nil
			}
			return unknownCommand(cmd, args[0])
		},
	}

	root.SetOut(ui.Stdout)
	root.SetErr(ui.Stderr)
	root.SetFlagErrorFunc(flagError)

	root.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "print every external command before running it")
	root.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "disable colored output")

	root.SetHelpCommand(newHelpCmd())
	root.AddCommand(
		newBuildCmd(),
		newUploadCmd(),
		newCheckCmd(),
		newAttachSDKCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs picotools with args and returns the process exit code.
func Execute(args []string) int {
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		report(err)
	}
	return errs.ExitCode(err)
}

// report prints err once. Tool failures get their raw output in a panel.
func report(err error) {
	var e *errs.Error
	if errors.As(err, &e) && e.Kind == errs.KindExternalTool {
		ui.Diagnostic(e.Kind.String(), e.Message, e.Tool, e.Diagnostic)
		return
	}
	ui.Fail(err.Error())
}

// flagError turns pflag parse failures into UsageErrors and shows usage.
func flagError(cmd *cobra.Command, err error) error {
	_ = cmd.Usage()
	return &errs.Error{Kind: errs.KindUsage, Message: "invalid usage", Err: err}
}

// noPositional rejects stray arguments on commands that take only flags.
func noPositional(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	_ = cmd.Usage()
	return errs.Usage("unexpected argument %q for %q", args[0], cmd.CommandPath())
}

func unknownCommand(cmd *cobra.Command, name string) error {
	e := errs.UnknownCommand(name)
	if s := cmd.SuggestionsFor(name); len(s) > 0 {
		e.Message += "\n\nDid you mean this?\n\t" + strings.Join(s, "\n\t")
	}
	e.Message += fmt.Sprintf("\n\nRun '%s help' for usage.", cmd.CommandPath())
	return e
}

func banner() string {
	b := fmt.Sprintf("Picotools v%s", Version)
	if color.NoColor {
		return b
	}
	return ui.ColorInfo.Sprint(b)
}

func projectDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
