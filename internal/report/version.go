package report

import (
	"runtime"
	"runtime/debug"
)

// VersionInfo describes the build of the running binary.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// NewVersionInfo fills gaps left by unset ldflags from the embedded build info.
func NewVersionInfo(version, commit, buildDate string) VersionInfo {
	info := VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if (info.Version == "" || info.Version == "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" || info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" || info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// Document renders the version_report section.
func (v VersionInfo) Document() Document {
	return Document{
		{Key: "version_number", Value: v.Version},
		{Key: "last_git_commit_hash", Value: v.Commit},
		{Key: "build_date", Value: v.BuildDate},
		{Key: "go_version", Value: v.GoVersion},
	}
}
