package buildinfo

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/neighborstan/hippodrome/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("hippodrome %s (commit=%s, date=%s, %s)", Version, Commit, Date, runtime.Version())
}
