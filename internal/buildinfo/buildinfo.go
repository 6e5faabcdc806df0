// Package buildinfo holds the version stamped in with
//
//	-ldflags "-X bonnet/internal/buildinfo.Version=v1.2.0 -X bonnet/internal/buildinfo.Commit=abc123 -X bonnet/internal/buildinfo.Date=2026-01-02"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the label for the window title and splash: the version when
// stamped, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full line printed by "bonnet version".
func String() string {
	return fmt.Sprintf("bonnet %s (commit %s, built %s)", Version, Commit, Date)
}
