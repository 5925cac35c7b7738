package cli

import (
	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/check"
	"github.com/picotools/cli/internal/manifest"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/ui"
)

func newCheckCmd() *cobra.Command {
	var (
		buildDir   string
		sdkPath    string
		targetName string
	)

	cmd := &cobra.Command{
		Use:   "check [-b <build-directory>] [-s <path-to-sdk>] [-t <target>]",
		Short: "Check that a project is ready to build and upload",
		Long: `Report every problem build or upload would run into, without running
cmake, make or touching the Pico: the target, the SDK path, the tools on PATH
and the state of the built .uf2.`,
		Args: noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir()
			m, err := manifest.Load(dir)
			if err != nil {
				return err
			}
			sdk, err := resolveSDK(sdkPath, m)
			if err != nil {
				return err
			}
			if targetName == "" {
				targetName = m.Project.Target
			}

			tools := []string{m.Toolchain.CMake, m.Toolchain.Make}
			if tools[0] == "" {
				tools[0] = "cmake"
			}
			if tools[1] == "" {
				tools[1] = "make"
			}

			ui.SectionTitle("Checking " + dir)
			report := check.Run(check.Options{
				ProjectDir: dir,
				BuildDir:   buildDirFor(cmd.Flags(), buildDir, m),
				Target:     targetName,
				SDKPath:    sdk.Path,
				SDKFrom:    sdk.From,
				Tools:      tools,
				Unknown:    m.Unknown,
			})
			check.PrintReport(report)
			return report.Err()
		},
	}

	cmd.Flags().StringVarP(&buildDir, "build-directory", "b", options.DefaultBuildDir, "build subdirectory")
	cmd.Flags().StringVarP(&sdkPath, "sdk-path", "s", "", "path to the Pico SDK")
	cmd.Flags().StringVarP(&targetName, "target", "t", "", "target to look for")
	return cmd
}
