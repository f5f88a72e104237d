// Package buildinfo holds the version stamped into stackorder binaries.
//
// Release builds set the variables with the linker:
//
//	pkg=github.com/matzehuels/stackorder/pkg/buildinfo
//	go build -ldflags "-X $pkg.Version=v1.0.0 -X $pkg.Commit=$(git rev-parse HEAD) \
//	    -X $pkg.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/stackorder
//
// Unstamped builds report "dev". The version is shown by
// `stackorder --version` and returned by GET /healthz.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns version, commit and build date, one per line.
func String() string {
	return fmt.Sprintf("version: %s\n%s", Version, details())
}

// Template returns cobra's --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\n%s\n", Version, details())
}

func details() string {
	return fmt.Sprintf("commit: %s\nbuilt: %s", Commit, Date)
}
