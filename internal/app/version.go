package app

import "fmt"

// Version, Commit and BuildTime are stamped with ldflags, e.g.
// -X github.com/careloop/careloop-backend/internal/app.Version=1.2.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the one-line version string used in the startup log and
// the health endpoint.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
