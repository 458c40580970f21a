// Package target normalizes scan input: host lists, port specifications,
// and well-known service names. The scan orchestrator consumes its output
// as-is and performs no validation of its own.
package target

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Nikesh24/portscanner/internal/errors"
)

const (
	minPort = 1
	maxPort = 65535

	// Upper bound of the "full" mode range.
	fullRangeEnd = 1024

	expectedRangeParts = 2
)

// Mode selects how the port list is produced.
type Mode string

const (
	// ModeQuick probes a fixed list of well-known ports.
	ModeQuick Mode = "quick"
	// ModeFull probes every port in [1, 1024].
	ModeFull Mode = "full"
	// ModeCustom probes a user-specified list of ports and ranges.
	ModeCustom Mode = "custom"
)

// TopPorts is the fixed well-known port list used by quick mode.
var TopPorts = []uint16{
	21, 22, 23, 25, 53, 80, 110, 135, 139, 143, 389, 443, 445, 587, 993, 995,
	1433, 1521, 3306, 3389, 5432, 5900, 6379, 8080, 9000,
}

// serviceNames maps well-known ports to service names for display and export.
var serviceNames = map[uint16]string{
	21:   "ftp",
	22:   "ssh",
	23:   "telnet",
	25:   "smtp",
	53:   "dns",
	80:   "http",
	110:  "pop3",
	135:  "msrpc",
	139:  "netbios",
	143:  "imap",
	389:  "ldap",
	443:  "https",
	445:  "smb",
	587:  "smtp",
	993:  "imaps",
	995:  "pop3s",
	1433: "mssql",
	1521: "oracle",
	3306: "mysql",
	3389: "rdp",
	5432: "postgres",
	5900: "vnc",
	6379: "redis",
	8080: "http-alt",
}

var validate = validator.New()

// ServiceName returns the well-known service name for a port, or "" if unknown.
func ServiceName(port uint16) string {
	return serviceNames[port]
}

// ParseHosts splits a comma-separated host string into a trimmed,
// order-preserving, de-duplicated list.
func ParseHosts(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		host := strings.TrimSpace(part)
		if host == "" {
			continue
		}
		if _, dup := seen[host]; dup {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}
	return hosts
}

// ValidateHost checks that a host is an IP literal or an RFC 1123 hostname.
func ValidateHost(host string) error {
	if err := validate.Var(host, "required,ip|hostname_rfc1123"); err != nil {
		return errors.ErrInvalidTarget(host)
	}
	return nil
}

// ValidateHosts validates every host in the list and returns the invalid ones.
func ValidateHosts(hosts []string) []string {
	var bad []string
	for _, host := range hosts {
		if err := ValidateHost(host); err != nil {
			bad = append(bad, host)
		}
	}
	return bad
}

// ParsePorts produces the ascending, de-duplicated port list for a mode.
// Custom mode accepts comma-separated single ports and inclusive "a-b"
// ranges; range bounds may appear in either order.
func ParsePorts(mode Mode, custom string) ([]uint16, error) {
	switch mode {
	case ModeQuick:
		ports := make([]uint16, len(TopPorts))
		copy(ports, TopPorts)
		return ports, nil
	case ModeFull:
		ports := make([]uint16, 0, fullRangeEnd)
		for p := minPort; p <= fullRangeEnd; p++ {
			ports = append(ports, uint16(p))
		}
		return ports, nil
	case ModeCustom:
		return parsePortSpec(custom)
	default:
		return nil, errors.NewInputError(errors.CodeValidation,
			fmt.Sprintf("Unknown port mode: %s", mode), "mode", string(mode))
	}
}

// parsePortSpec parses a custom port specification into a sorted,
// de-duplicated port list.
func parsePortSpec(spec string) ([]uint16, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.ErrEmptyPorts()
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			if err := addRange(seen, token); err != nil {
				return nil, err
			}
			continue
		}
		port, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.WrapInputError(errors.CodePortInvalid,
				fmt.Sprintf("Invalid port: %s", token), "ports", err)
		}
		if port < minPort || port > maxPort {
			return nil, errors.ErrInvalidPort(port)
		}
		seen[port] = struct{}{}
	}

	if len(seen) == 0 {
		return nil, errors.ErrEmptyPorts()
	}

	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)

	out := make([]uint16, 0, len(ports))
	for _, p := range ports {
		out = append(out, uint16(p))
	}
	return out, nil
}

// addRange expands an inclusive "a-b" range token into the seen set.
// Bounds are normalized so "2000-1000" behaves like "1000-2000".
func addRange(seen map[int]struct{}, token string) error {
	bounds := strings.SplitN(token, "-", expectedRangeParts)
	if len(bounds) != expectedRangeParts {
		return errors.NewInputError(errors.CodePortInvalid,
			fmt.Sprintf("Invalid port range: %s", token), "ports", token)
	}

	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return errors.WrapInputError(errors.CodePortInvalid,
			fmt.Sprintf("Invalid range start: %s", bounds[0]), "ports", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return errors.WrapInputError(errors.CodePortInvalid,
			fmt.Sprintf("Invalid range end: %s", bounds[1]), "ports", err)
	}

	if start > end {
		start, end = end, start
	}
	if start < minPort || end > maxPort {
		return errors.ErrInvalidPort(token)
	}

	for p := start; p <= end; p++ {
		seen[p] = struct{}{}
	}
	return nil
}
