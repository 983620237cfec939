package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version may be stamped with -ldflags "-X github.com/evalyze/evalyze/cmd.version=v1.2.3".
// Otherwise the module version from the build info is used.
var version = ""

// buildInfo identifies the running binary.
type buildInfo struct {
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

func (b buildInfo) String() string {
	s := "evalyze " + b.Version
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		s += " (" + rev
		if b.Modified {
			s += ", modified"
		}
		s += ")"
	}
	if b.GoVersion != "" {
		s += " " + b.GoVersion
	}
	return s
}

func currentBuild() buildInfo {
	info, _ := debug.ReadBuildInfo()
	return describeBuild(version, info)
}

// describeBuild merges the stamped version with what the Go toolchain
// recorded. info may be nil when the binary carries no build info.
func describeBuild(stamped string, info *debug.BuildInfo) buildInfo {
	b := buildInfo{Version: stamped}
	if info != nil {
		b.GoVersion = info.GoVersion
		if b.Version == "" {
			b.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				b.Revision = s.Value
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if b.Version == "" {
		b.Version = "(devel)"
	}
	return b
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, VCS revision and Go toolchain of this binary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), currentBuild())
	},
}
