package scan

import (
	"math"
	"sort"
)

// firewallWarning is the advisory emitted when a host accumulates enough
// filtered ports to suggest a dropping firewall.
const firewallWarning = "many TCP timeouts/filtered — possible firewall"

// firewallMinFiltered is the floor of the warning threshold: below five
// filtered ports the heuristic never fires regardless of ratio.
const firewallMinFiltered = 5

// Summarize derives per-host summaries from the final state of a results
// map. It is a pure function: calling it twice over the same state yields
// identical output. Hosts appear in input target order, including hosts
// with zero recorded probes.
func Summarize(targets []string, results map[string]HostResults) []HostSummary {
	summaries := make([]HostSummary, 0, len(targets))

	for _, host := range targets {
		recorded := results[host]

		open := make([]uint16, 0)
		filtered := 0
		for port, probes := range recorded {
			tcp, ok := probes[ProtocolTCP]
			if !ok {
				continue
			}
			switch tcp.State {
			case StateOpen:
				open = append(open, port)
			case StateFiltered:
				filtered++
			}
		}
		sort.Slice(open, func(i, j int) bool { return open[i] < open[j] })

		warnings := make([]string, 0, 1)
		if filtered >= warnThreshold(len(recorded)) {
			warnings = append(warnings, firewallWarning)
		}

		summaries = append(summaries, HostSummary{
			Host:     host,
			OpenTCP:  open,
			Warnings: warnings,
		})
	}

	return summaries
}

// warnThreshold returns max(5, ceil(0.5 * portsRecorded)). The exact
// shape of this heuristic is deliberate; do not tune it.
func warnThreshold(portsRecorded int) int {
	half := int(math.Ceil(0.5 * float64(portsRecorded)))
	if half < firewallMinFiltered {
		return firewallMinFiltered
	}
	return half
}
