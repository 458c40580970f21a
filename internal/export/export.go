// Package export materializes a scan run into a stable JSON document
// suitable for archiving or feeding into the analysis engine.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Nikesh24/portscanner/internal/errors"
	"github.com/Nikesh24/portscanner/internal/scan"
	"github.com/Nikesh24/portscanner/internal/target"
)

const (
	exportDirPerm  = 0o750
	exportFilePerm = 0o600
)

// PortReport is one port's entry in the exported document.
type PortReport struct {
	Port         uint16 `json:"port"`
	TCP          string `json:"tcp"`
	ServiceGuess string `json:"service_guess"`
	Banner       string `json:"banner"`
	TCPLatencyMS int64  `json:"tcp_latency_ms"`
	TCPError     string `json:"tcp_error,omitempty"`
}

// HostReport groups a host's port entries, sorted by port.
type HostReport struct {
	Host  string       `json:"host"`
	Ports []PortReport `json:"ports"`
}

// Document is the exported form of one scan run.
type Document struct {
	ID        string             `json:"id"`
	StartedAt time.Time          `json:"started_at"`
	EndedAt   time.Time          `json:"ended_at"`
	Targets   []string           `json:"targets"`
	Results   []HostReport       `json:"results"`
	Summaries []scan.HostSummary `json:"summaries"`
}

// Materialize flattens a run's nested results map into the export
// document. Hosts appear in target order; ports ascend within a host.
func Materialize(run *scan.Run) *Document {
	doc := &Document{
		ID:        run.ID.String(),
		StartedAt: run.StartedAt,
		EndedAt:   run.EndedAt,
		Targets:   run.Targets,
		Results:   make([]HostReport, 0, len(run.Targets)),
		Summaries: run.Summaries,
	}

	for _, host := range run.Targets {
		recorded := run.Results[host]

		ports := make([]PortReport, 0, len(recorded))
		for port, probes := range recorded {
			tcp, ok := probes[scan.ProtocolTCP]
			if !ok {
				continue
			}
			ports = append(ports, PortReport{
				Port:         port,
				TCP:          string(tcp.State),
				ServiceGuess: target.ServiceName(port),
				Banner:       "",
				TCPLatencyMS: tcp.LatencyMS,
				TCPError:     tcp.Error,
			})
		}
		sort.Slice(ports, func(i, j int) bool { return ports[i].Port < ports[j].Port })

		doc.Results = append(doc.Results, HostReport{Host: host, Ports: ports})
	}

	return doc
}

// Marshal renders the document as JSON, pretty-printed when indent is set.
func Marshal(doc *Document, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// WriteFile materializes the run and writes it to path, creating parent
// directories as needed.
func WriteFile(run *scan.Run, path string, indent bool) error {
	data, err := Marshal(Materialize(run), indent)
	if err != nil {
		return errors.WrapScanError(errors.CodeExportFailed, "failed to encode scan document", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, exportDirPerm); err != nil {
			return errors.WrapScanError(errors.CodeExportFailed,
				fmt.Sprintf("failed to create export directory %s", dir), err)
		}
	}

	if err := os.WriteFile(path, data, exportFilePerm); err != nil {
		return errors.WrapScanError(errors.CodeExportFailed,
			fmt.Sprintf("failed to write scan document %s", path), err)
	}

	return nil
}
