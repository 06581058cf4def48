package version

import "fmt"

// Version, Commit and BuildDate are set at build time, e.g.
// go build -ldflags "-X github.com/oukeidos/promise/internal/version.Version=0.2.0"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Name is the product name shown in the about screens and share text.
const Name = "Prayer & Promise"

// Info returns a multi-line version string for CLI output.
func Info() string {
	return fmt.Sprintf("promise %s\ncommit: %s\nbuild: %s", Version, Commit, BuildDate)
}
