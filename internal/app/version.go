package app

import "fmt"

// Name identifies the program to the services it talks to.
const Name = "deutschkurs"

// Version, Commit and BuildTime are set via ldflags at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/deutschkurs/internal/app.Version=1.2.0" ./cmd/...
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion describes the running binary for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, Version, Commit, BuildTime)
}

// ClientName returns "<name>-<command>/<version>", the identity a command
// reports to PostgreSQL as application_name.
func ClientName(command string) string {
	return fmt.Sprintf("%s-%s/%s", Name, command, Version)
}
