// Package analysis turns scan summaries into a short, human-readable
// security report using a rule-based engine.
package analysis

import (
	"fmt"
	"strings"

	"github.com/Nikesh24/portscanner/internal/scan"
	"github.com/Nikesh24/portscanner/internal/target"
)

// hardeningHints maps well-known ports to a one-line mitigation hint.
var hardeningHints = map[uint16]string{
	445:  "SMB: disable SMBv1, restrict access",
	3389: "RDP: require NLA, strong auth, restrict by VPN/firewall",
	22:   "SSH: prefer keys, disable password login",
	80:   "HTTP: check admin panels, prefer HTTPS",
	21:   "FTP: avoid plain FTP; prefer SFTP/FTPS",
}

const nextSteps = "Next steps: validate services safely, apply least-exposure firewall rules, keep software updated."

// Report renders a per-host findings report from the run's summaries.
// One line per host, in summary order, followed by a closing advice line.
func Report(run *scan.Run) string {
	lines := make([]string, 0, len(run.Summaries)+2)

	for _, summary := range run.Summaries {
		lines = append(lines, hostLine(summary))
	}
	if len(lines) == 0 {
		lines = append(lines, "No notable findings. Many 'filtered' ports may indicate a firewall dropping probes.")
	}
	lines = append(lines, "", nextSteps)

	return strings.Join(lines, "\n")
}

// hostLine renders a single host's findings.
func hostLine(summary scan.HostSummary) string {
	if len(summary.OpenTCP) == 0 {
		return fmt.Sprintf("%s: no open TCP ports in the scanned range.", summary.Host)
	}

	parts := make([]string, 0, len(summary.OpenTCP))
	for _, port := range summary.OpenTCP {
		svc := target.ServiceName(port)
		if svc == "" {
			svc = "unknown"
		}
		part := fmt.Sprintf("%d/tcp (%s)", port, svc)
		if hint, ok := hardeningHints[port]; ok {
			part += " - " + hint
		}
		parts = append(parts, part)
	}
	return fmt.Sprintf("%s: open %s", summary.Host, strings.Join(parts, ", "))
}
