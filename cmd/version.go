package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/brogergvhs/mangascraper/internal/config"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the mangascraper version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionShort)
	},
}

// buildVersion falls back to the module version stamped by `go install`
// when no version was injected.
func buildVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

func printVersion(w io.Writer, short bool) {
	v := buildVersion()
	if short {
		_, _ = fmt.Fprintln(w, v)
		return
	}

	_, _ = fmt.Fprintf(w, "mangascraper %s\n", v)
	_, _ = fmt.Fprintf(w, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(w, "  source: %s\n", config.DefaultBaseURL)
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}
