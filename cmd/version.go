package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// fallbackVersion is reported by builds that carry no module version, such as `go run`.
const fallbackVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the remora version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), GetCurrentVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func GetCurrentVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallbackVersion
	}
	return versionFrom(info)
}

func versionFrom(info *debug.BuildInfo) string {
	if info == nil {
		return fallbackVersion
	}
	switch v := info.Main.Version; v {
	case "", "(devel)":
		return fallbackVersion
	default:
		return v
	}
}
