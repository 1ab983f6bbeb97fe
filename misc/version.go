// Package misc keeps build identity helpers shared across the program.
package misc

import "runtime/debug"

// Values are overwritten at build time via -ldflags.
var (
	appName = "textag"
	version = "0.0.0-dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
