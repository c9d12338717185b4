package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("nutstools %s (commit=%s, date=%s)", Version, Commit, Date)
}

// UserAgent is sent with every download request.
func UserAgent() string {
	return "nutstools/" + Version
}
