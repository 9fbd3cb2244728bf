package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildVersion is set at link time with -ldflags "-X github.com/rezi-labs/cup/cmd.buildVersion=...".
var buildVersion string

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the cup version and the Go version used to build it.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := resolveVersion(buildVersion, debug.ReadBuildInfo)
			if version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("cup version\t", version)

			if goVersion != "" {
				cmd.Println("go version\t", goVersion)
			}
		},
	}
}

// resolveVersion prefers the link-time version and falls back to the module
// build info.
func resolveVersion(linked string, readBuildInfo func() (*debug.BuildInfo, bool)) (string, string) {
	info, ok := readBuildInfo()

	goVersion := ""
	if ok {
		goVersion = info.GoVersion
	}

	if linked != "" {
		return linked, goVersion
	}

	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "", goVersion
	}

	return info.Main.Version, goVersion
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
