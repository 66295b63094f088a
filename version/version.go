package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GitBranch string    `json:"git_branch"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	// Module is the main module path, e.g. "github.com/kbukum/ioc".
	Module    string `json:"module,omitempty"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

// GetVersionInfo combines the -ldflags variables with the build info
// embedded by the Go toolchain. Explicit ldflags values win.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyBuildInfo(bi)
	}

	if info.BuildDate.IsZero() {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}

	return info
}

// applyBuildInfo fills fields left empty by ldflags from bi.
func (i *Info) applyBuildInfo(bi *debug.BuildInfo) {
	if i.GoVersion == "" {
		i.GoVersion = bi.GoVersion
	}
	if i.Module == "" {
		i.Module = bi.Main.Path
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = setting.Value
				if len(i.GitCommit) > 7 {
					i.GitCommit = i.GitCommit[:7]
				}
			}
		case "vcs.modified":
			i.IsDirty = setting.Value == "true"
		case "vcs.time":
			if i.BuildTime == "" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					i.BuildDate = t
					i.BuildTime = setting.Value
				}
			}
		}
	}
}

// Short returns "version[-commit][-dirty]".
func (i *Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}

// Full returns the short form plus a feature branch name and build date.
func (i *Info) Full() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.GitBranch != "" && i.GitBranch != "main" && i.GitBranch != "master" {
		parts = append(parts, i.GitBranch)
	}
	if i.IsDirty {
		parts = append(parts, "dirty")
	}
	s := strings.Join(parts, "-")
	if !i.BuildDate.IsZero() {
		s += fmt.Sprintf(" (built %s)", i.BuildDate.UTC().Format(time.RFC3339))
	}
	return s
}

// GetShortVersion returns GetVersionInfo().Short().
func GetShortVersion() string {
	return GetVersionInfo().Short()
}

// GetFullVersion returns GetVersionInfo().Full().
func GetFullVersion() string {
	return GetVersionInfo().Full()
}
