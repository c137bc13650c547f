package gotrans

// Name and Version identify the gateway in /healthz and -version output.
const (
	Name        = "gotrans"
	Description = "Translation gateway exposing translate-shell engines over HTTP"
	Version     = "0.1.0"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/ZaguanLabs/gotrans.GitCommit=$(git rev-parse HEAD)"
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns Version with the short commit appended when known,
// as in "0.1.0+abc1234".
func FullVersion() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return Version
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + "+" + commit
}
