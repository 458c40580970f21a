// Portscan is a concurrent TCP port scanner with per-host summaries,
// JSON export, and a rule-based security analysis.
package main

import (
	"github.com/Nikesh24/portscanner/cmd/cli"
)

// Build information - set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
