// Package version holds build-time metadata injected via ldflags.
package version

// These variables are set at build time using -ldflags:
//
//	-X 'github.com/sunil-gr/cursor-poc/internal/version.Version=...'
//	-X 'github.com/sunil-gr/cursor-poc/internal/version.CommitHash=...'
//	-X 'github.com/sunil-gr/cursor-poc/internal/version.BuildDate=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + CommitHash + ") built " + BuildDate
}
