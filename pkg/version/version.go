package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at link time:
//
//	go build -ldflags "-X confreplace/pkg/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

const programName = "confreplace"

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the current build information. When no version was injected at
// link time, the module version recorded by `go install` is used if present.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			info.Version = moduleVersion(bi.Main.Version)
		}
	}
	return info
}

func moduleVersion(v string) string {
	if v == "" || v == "(devel)" {
		return "dev"
	}
	return v
}

func (b BuildInfo) String() string {
	result := fmt.Sprintf("%s version %s", programName, b.Version)

	if b.GitCommit != "" {
		result += fmt.Sprintf(" (%s)", b.GitCommit)
	}

	if b.BuildDate != "" {
		result += fmt.Sprintf(" built on %s", b.BuildDate)
	}

	return result + fmt.Sprintf(" %s %s", b.GoVersion, b.Platform)
}
