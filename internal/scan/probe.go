package scan

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// dialTimeout is swappable in tests.
var dialTimeout = net.DialTimeout

// Probe attempts a TCP connect to (host, port) bounded by timeout and
// classifies the outcome. The connection is closed immediately after a
// successful handshake; no data is exchanged. Probe failures are data,
// not propagated faults: every outcome maps to one of the four states.
func Probe(host string, port uint16, timeout time.Duration) ProbeResult {
	start := time.Now()
	result := ProbeResult{Protocol: ProtocolTCP}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := dialTimeout("tcp", addr, timeout)

	switch {
	case err == nil:
		_ = conn.Close()
		result.State = StateOpen
	case isConnectionRefused(err):
		result.State = StateClosed
	case isTimeout(err):
		result.State = StateFiltered
	default:
		result.State = StateError
		result.Error = err.Error()
	}

	result.LatencyMS = time.Since(start).Milliseconds()
	return result
}

// isConnectionRefused reports whether the dial failed because the remote
// stack actively refused the connection (RST).
func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	// Windows surfaces refusal with a different wording.
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "actively refused")
}

// isTimeout reports whether the dial ran out the probe timeout without
// any response from the remote stack.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
