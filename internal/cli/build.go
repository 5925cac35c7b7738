// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: cli :: build
//
//  Configures the project with cmake (PICO_SDK_PATH set for that call only)
//  and builds it with make. Flags win over picotools.toml; the SDK path falls
//  back to the attached SDK and then to $PICO_SDK_PATH.
// ─────────────────────────────────────────────────────────────────────────────

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/picotools/cli/internal/build"
	"github.com/picotools/cli/internal/config"
	"github.com/picotools/cli/internal/manifest"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/ui"
)

func newBuildCmd() *cobra.Command {
	var (
		buildDir string
		sdkPath  string
	)

	cmd := &cobra.Command{
		Use:   "build [-b <build-directory>] -s <path-to-sdk>",
		Short: "Build a project",
		Long: `Build the project in the current directory.

build-directory defaults to 'build' if unspecified. The SDK path may be left
out once it has been registered with 'picotools attach-sdk'.`,
		Example: `  picotools build -s ~/pico/pico-sdk
  picotools build -b out --sdk-path ~/pico/pico-sdk`,
		Args: noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir()
			m, err := manifest.Load(dir)
			if err != nil {
				return err
			}
			warnUnknownKeys(m)

			opts := options.Build{BuildDir: buildDirFor(cmd.Flags(), buildDir, m)}
			sdk, err := resolveSDK(sdkPath, m)
			if err != nil {
				return err
			}
			opts.SDKPath, opts.SDKFrom = sdk.Path, sdk.From
			if err := opts.Validate(dir); err != nil {
				return err
			}

			ui.SectionTitle(fmt.Sprintf("Building  [sdk: %s]", opts.SDKPath))
			res, err := build.Run(newRunner(), build.Options{
				ProjectDir: dir,
				BuildDir:   opts.BuildDir,
				SDKPath:    opts.SDKPath,
				CMake:      m.Toolchain.CMake,
				Make:       m.Toolchain.Make,
				Jobs:       m.Toolchain.Jobs,
				Verbose:    globalVerbose,
			})
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				ui.Warn(w)
			}
			ui.Step("build", res.BuildDir)
			ui.Success("Build finished!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&buildDir, "build-directory", "b", options.DefaultBuildDir, "build subdirectory")
	cmd.Flags().StringVarP(&sdkPath, "sdk-path", "s", "", "path to the Pico SDK")
	return cmd
}

// buildDirFor picks the build directory: flag, then manifest, then default.
func buildDirFor(fs *pflag.FlagSet, flagValue string, m *manifest.Manifest) string {
	if fs.Changed("build-directory") {
		return flagValue
	}
	if m.Build.Directory != "" {
		return m.Build.Directory
	}
	return options.DefaultBuildDir
}

// resolveSDK returns the first SDK path found in: the -s flag, the project
// manifest, the attached SDK in the user config, $PICO_SDK_PATH. The user
// config is only read when the earlier sources are empty.
func resolveSDK(flagValue string, m *manifest.Manifest) (options.SDKCandidate, error) {
	if c, ok := options.FirstSDK(
		options.SDKCandidate{From: "", Path: flagValue},
		options.SDKCandidate{From: manifest.FileName, Path: m.Build.SDKPath},
	); ok {
		return c, nil
	}

	store, err := config.Open()
	if err != nil {
		return options.SDKCandidate{}, err
	}
	c, _ := options.FirstSDK(
		options.SDKCandidate{From: "attached SDK in " + store.File(), Path: store.SDKPath()},
		options.SDKCandidate{From: build.SDKEnv, Path: os.Getenv(build.SDKEnv)},
	)
	return c, nil
}

func warnUnknownKeys(m *manifest.Manifest) {
	for _, k := range m.Unknown {
		ui.Warn(fmt.Sprintf("%s: unknown key %q ignored", manifest.FileName, k))
	}
}
