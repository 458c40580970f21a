package scan

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nikesh24/portscanner/internal/errors"
)

const (
	// ProtocolTCP is the only probe protocol currently implemented.
	ProtocolTCP = "tcp"

	defaultTimeout    = 800 * time.Millisecond
	defaultMaxWorkers = 200
)

// PortState classifies the outcome of a single probe.
type PortState string

const (
	// StateOpen means the TCP handshake completed.
	StateOpen PortState = "open"
	// StateClosed means the connection was actively refused.
	StateClosed PortState = "closed"
	// StateFiltered means no response arrived before the timeout,
	// commonly a dropping firewall rather than a closed port.
	StateFiltered PortState = "filtered"
	// StateError covers every other network-level failure.
	StateError PortState = "error"
)

// ProbeResult is the immutable outcome of one probe attempt.
type ProbeResult struct {
	Protocol  string    `json:"protocol"`
	State     PortState `json:"state"`
	LatencyMS int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
}

// PortProbes maps protocol name to the probe result recorded for it.
type PortProbes map[string]ProbeResult

// HostResults maps port number to the probes recorded for it.
type HostResults map[uint16]PortProbes

// HostSummary is the per-host digest derived after the work loop ends.
type HostSummary struct {
	Host     string   `json:"host"`
	OpenTCP  []uint16 `json:"open_tcp"`
	Warnings []string `json:"warnings"`
}

// Run is the complete result document of one scan invocation. Results is
// built incrementally as probes complete; Summaries is computed once from
// the final Results state.
type Run struct {
	ID        uuid.UUID              `json:"id"`
	StartedAt time.Time              `json:"started_at"`
	EndedAt   time.Time              `json:"ended_at"`
	Targets   []string               `json:"targets"`
	Results   map[string]HostResults `json:"results"`
	Summaries []HostSummary          `json:"summaries"`
}

// ResultFunc is invoked once per completed, non-discarded probe unit.
// It runs on the scan's completion path and must not block.
type ResultFunc func(host string, port uint16, probes PortProbes)

// ProgressFunc is invoked alongside every ResultFunc call with the
// monotonically increasing completion count.
type ProgressFunc func(done, total int)

// Config holds the orchestrator parameters.
type Config struct {
	// Timeout bounds each individual probe attempt.
	Timeout time.Duration
	// MaxWorkers bounds the number of concurrently executing probes.
	MaxWorkers int
	// DoUDP is reserved for future UDP probing and is currently ignored.
	DoUDP bool
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    defaultTimeout,
		MaxWorkers: defaultMaxWorkers,
	}
}

// Validate checks the orchestrator parameters.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.NewConfigError(errors.CodeValidation, "probe timeout must be positive")
	}
	if c.MaxWorkers <= 0 {
		return errors.NewConfigError(errors.CodeValidation, "max workers must be positive")
	}
	return nil
}
