// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: cli :: upload
// ─────────────────────────────────────────────────────────────────────────────

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picotools/cli/internal/build"
	"github.com/picotools/cli/internal/flash"
	"github.com/picotools/cli/internal/manifest"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/ui"
)

func newUploadCmd() *cobra.Command {
	var (
		picoPath   string
		buildDir   string
		targetName string
		buildFirst bool
		sdkPath    string
	)

	cmd := &cobra.Command{
		Use:   "upload -p <path-to-pico> [optional-flags]",
		Short: "Upload a binary to the pico",
		Long: `Copy <build-directory>/<target>.uf2 onto the Pico's mass-storage volume.

Hold BOOTSEL while plugging the Pico in; it mounts as RPI-RP2. Pass that mount
point with -p. If no target is given, the first add_executable() in
CMakeLists.txt is used.`,
		Example: `  picotools upload -p /media/$USER/RPI-RP2
  picotools upload -p /media/$USER/RPI-RP2 -t blinky -B`,
		Args: noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir()
			m, err := manifest.Load(dir)
			if err != nil {
				return err
			}
			warnUnknownKeys(m)

			opts := options.Upload{
				BuildDir:    buildDirFor(cmd.Flags(), buildDir, m),
				BuildDirSet: cmd.Flags().Changed("build-directory"),
				Target:      targetName,
				DevicePath:  picoPath,
				BuildFirst:  buildFirst,
			}
			if opts.Target == "" {
				opts.Target = m.Project.Target
			}
			if opts.BuildFirst {
				sdk, err := resolveSDK(sdkPath, m)
				if err != nil {
					return err
				}
				opts.SDKPath, opts.SDKFrom = sdk.Path, sdk.From
			}
			if err := opts.Validate(dir); err != nil {
				return err
			}

			res, err := flash.Run(flash.Options{
				ProjectDir:  dir,
				BuildDir:    opts.BuildDir,
				BuildDirSet: opts.BuildDirSet,
				Target:      opts.Target,
				DevicePath:  opts.DevicePath,
				BuildFirst:  opts.BuildFirst,
				Build: build.Options{
					SDKPath: opts.SDKPath,
					CMake:   m.Toolchain.CMake,
					Make:    m.Toolchain.Make,
					Jobs:    m.Toolchain.Jobs,
					Verbose: globalVerbose,
				},
				Runner: newRunner(),
			})
			if err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Flashed '%s' to '%s'", res.Artifact, res.Destination))
			return nil
		},
	}

	cmd.Flags().StringVarP(&picoPath, "pico-path", "p", "", "path to where the Pico has mounted itself as a mass storage device")
	cmd.Flags().StringVarP(&buildDir, "build-directory", "b", options.DefaultBuildDir, "custom build subdirectory")
	cmd.Flags().StringVarP(&targetName, "target", "t", "", "the target to flash; defaults to the first add_executable() in CMakeLists.txt")
	cmd.Flags().BoolVarP(&buildFirst, "build-first", "B", false, "build the project before uploading")
	cmd.Flags().StringVarP(&sdkPath, "sdk-path", "s", "", "path to the Pico SDK, used with --build-first")
	return cmd
}
