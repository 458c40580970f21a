// Package scan implements the concurrent scan orchestrator: it fans out
// per-(host, port) TCP probes across a bounded worker pool, drains
// completions from a single consuming loop, supports cooperative
// cancellation, and derives per-host summaries into a result document.
package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Nikesh24/portscanner/internal/errors"
	"github.com/Nikesh24/portscanner/internal/logging"
	"github.com/Nikesh24/portscanner/internal/metrics"
)

// Scanner orchestrates one scan run. A Scanner is single-use: the stop
// flag is terminal, so a new run requires a new Scanner.
type Scanner struct {
	cfg  Config
	stop atomic.Bool
}

// probeUnit is one (host, port) pair scheduled for a single probe attempt.
type probeUnit struct {
	host string
	port uint16
}

// completion carries a finished probe back to the draining loop.
type completion struct {
	host   string
	port   uint16
	result ProbeResult
}

// New creates a scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Stop requests cooperative cancellation. It is idempotent and safe to
// call from any goroutine at any time after Scan has started. No further
// probe units are submitted; results of units already in flight are
// discarded, and Scan still returns the partial result document.
func (s *Scanner) Stop() {
	s.stop.Store(true)
}

// Stopped reports whether cancellation has been requested.
func (s *Scanner) Stopped() bool {
	return s.stop.Load()
}

// halted reports whether the scan should stop submitting and recording,
// either through Stop or through context cancellation.
func (s *Scanner) halted(ctx context.Context) bool {
	return s.stop.Load() || ctx.Err() != nil
}

// Scan is a convenience wrapper around ScanWithContext using a background context.
func (s *Scanner) Scan(targets []string, ports []uint16, onResult ResultFunc, onProgress ProgressFunc) (*Run, error) {
	return s.ScanWithContext(context.Background(), targets, ports, onResult, onProgress)
}

// ScanWithContext probes the full targets x ports product and blocks until
// every submitted unit has been drained or cancellation is observed. It
// returns the result document with per-host summaries derived from the
// final state of the results map.
//
// Callbacks are invoked synchronously from the single completion-draining
// loop; they must be fast since they sit on the scan's critical path.
// Completion order is non-deterministic and unrelated to submission order.
func (s *Scanner) ScanWithContext(ctx context.Context, targets []string, ports []uint16,
	onResult ResultFunc, onProgress ProgressFunc) (*Run, error) {
	if len(targets) == 0 {
		return nil, errors.ErrEmptyTargets()
	}
	if len(ports) == 0 {
		return nil, errors.ErrEmptyPorts()
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.cfg.DoUDP {
		logging.Warn("UDP probing is not implemented; proceeding with TCP only")
	}

	run := &Run{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Targets:   targets,
		Results:   make(map[string]HostResults, len(targets)),
	}
	// Seed every target so hosts with zero completions still appear.
	for _, host := range targets {
		run.Results[host] = make(HostResults, len(ports))
	}

	total := len(targets) * len(ports)
	if total < 1 {
		total = 1
	}

	workers := s.cfg.MaxWorkers
	if workers > total {
		workers = total
	}

	logging.Info("Starting scan",
		"scan_id", run.ID.String(),
		"target_count", len(targets),
		"port_count", len(ports),
		"workers", workers,
		"timeout", s.cfg.Timeout)

	timer := metrics.NewTimer(metrics.MetricScanDuration, nil)
	defer timer.Stop()

	units := make(chan probeUnit)
	completions := make(chan completion)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range units {
				s.execute(unit, completions)
			}
		}()
	}

	// Submit target-major, port-minor. The stop flag is checked before
	// each submission; already-submitted units are allowed to finish.
	go func() {
		defer close(units)
		for _, host := range targets {
			for _, port := range ports {
				if s.halted(ctx) {
					return
				}
				units <- probeUnit{host: host, port: port}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(completions)
	}()

	// Single consumer: the only writer of Results and done, so no lock
	// is needed on the aggregate state. Completions arriving after a
	// stop are still reaped to release workers, but discarded.
	done := 0
	for c := range completions {
		if s.halted(ctx) {
			continue
		}
		probes := PortProbes{ProtocolTCP: c.result}
		run.Results[c.host][c.port] = probes
		metrics.IncrementProbesTotal(string(c.result.State))
		if onResult != nil {
			onResult(c.host, c.port, probes)
		}
		done++
		if onProgress != nil {
			onProgress(done, total)
		}
	}

	run.Summaries = Summarize(run.Targets, run.Results)
	run.EndedAt = time.Now()

	status := "success"
	if s.halted(ctx) {
		status = "stopped"
	}
	metrics.IncrementScanTotal(status)
	logging.Info("Scan finished",
		"scan_id", run.ID.String(),
		"completed", done,
		"total", total,
		"duration", run.EndedAt.Sub(run.StartedAt),
		"status", status)

	return run, nil
}

// execute runs one probe and reports its completion. Unexpected faults
// never cross the probe boundary: a panic drops the unit, is logged, and
// the scan continues.
func (s *Scanner) execute(unit probeUnit, out chan<- completion) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncrementUnitsDropped()
			logging.ErrorWorker("Probe worker fault, unit dropped", unit.host, unit.port, "panic", r)
		}
	}()
	out <- completion{
		host:   unit.host,
		port:   unit.port,
		result: Probe(unit.host, unit.port, s.cfg.Timeout),
	}
}
