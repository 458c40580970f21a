package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nikesh24/portscanner/internal/analysis"
	"github.com/Nikesh24/portscanner/internal/config"
	"github.com/Nikesh24/portscanner/internal/export"
	"github.com/Nikesh24/portscanner/internal/scan"
	"github.com/Nikesh24/portscanner/internal/target"
)

var (
	scanTargets string
	scanMode    string
	scanPorts   string
	scanTimeout time.Duration
	scanWorkers int
	scanOutput  string
	scanAnalyze bool
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan targets for open TCP ports",
	Long: `Scan one or more targets for open TCP ports using connect probes.

Port selection is controlled by --mode: quick probes a curated set of
common ports, full probes 1-1024, and custom takes an explicit spec
via --ports (e.g. '22,80,8000-8010'). Press Ctrl-C to stop a running
scan; results gathered so far are kept.`,
	Example: `  portscan scan --targets 192.168.1.10
  portscan scan --targets "192.168.1.1,192.168.1.10" --mode full
  portscan scan --targets scanme.example --mode custom --ports "22,80,443"
  portscan scan --targets 10.0.0.1 --output results.json --analyze`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanTargets, "targets", "", "Comma-separated list of targets to scan")
	scanCmd.Flags().StringVar(&scanMode, "mode", "", "Port selection mode: quick, full, custom")
	scanCmd.Flags().StringVar(&scanPorts, "ports", "", "Port spec for custom mode (e.g. '22,80,8000-8010')")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Per-probe connect timeout (e.g. 800ms)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Maximum concurrent probes")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Write the scan document to this JSON file")
	scanCmd.Flags().BoolVar(&scanAnalyze, "analyze", false, "Print a rule-based security analysis after the scan")

	_ = scanCmd.MarkFlagRequired("targets")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyScanFlags(cfg)

	hosts := target.ParseHosts(scanTargets)
	if bad := target.ValidateHosts(hosts); len(bad) > 0 {
		return fmt.Errorf("invalid targets: %v", bad)
	}

	ports, err := target.ParsePorts(cfg.PortMode(), cfg.Scanning.DefaultPorts)
	if err != nil {
		return fmt.Errorf("parsing ports: %w", err)
	}

	scanner := scan.New(scan.Config{
		Timeout:    cfg.Scanning.Timeout,
		MaxWorkers: cfg.Scanning.MaxWorkers,
	})

	// Ctrl-C stops submission; in-flight probes drain and partial
	// results are kept.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)
	go func() {
		<-interrupts
		fmt.Fprintln(os.Stderr, "\nStopping scan...")
		scanner.Stop()
	}()

	run, err := scanner.Scan(hosts, ports, nil, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rProbed %d/%d", done, total)
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	fmt.Fprintln(os.Stderr)

	displayResults(run)
	displayWarnings(run)

	if scanOutput != "" {
		if err := export.WriteFile(run, scanOutput, cfg.Export.Indent); err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		fmt.Printf("Results written to %s\n", scanOutput)
	}

	if scanAnalyze {
		fmt.Println()
		fmt.Println(analysis.Report(run))
	}

	return nil
}

// applyScanFlags overlays explicitly set flags onto the loaded config.
func applyScanFlags(cfg *config.Config) {
	if scanMode != "" {
		cfg.Scanning.DefaultMode = scanMode
	}
	if scanPorts != "" {
		cfg.Scanning.DefaultPorts = scanPorts
		if scanMode == "" {
			cfg.Scanning.DefaultMode = string(target.ModeCustom)
		}
	}
	if scanTimeout > 0 {
		cfg.Scanning.Timeout = scanTimeout
	}
	if scanWorkers > 0 {
		cfg.Scanning.MaxWorkers = scanWorkers
	}
}

// displayResults renders recorded probes as a table, hosts in target
// order and ports ascending. Hosts with nothing recorded are skipped.
func displayResults(run *scan.Run) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Host", "Port", "State", "Service", "Latency", "Error")

	for _, host := range run.Targets {
		recorded := run.Results[host]

		ports := make([]uint16, 0, len(recorded))
		for port := range recorded {
			ports = append(ports, port)
		}
		sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })

		for _, port := range ports {
			tcp, ok := recorded[port][scan.ProtocolTCP]
			if !ok {
				continue
			}
			_ = table.Append([]string{
				host,
				strconv.Itoa(int(port)),
				string(tcp.State),
				target.ServiceName(port),
				fmt.Sprintf("%dms", tcp.LatencyMS),
				tcp.Error,
			})
		}
	}

	_ = table.Render()
}

// displayWarnings prints per-host advisory warnings, if any.
func displayWarnings(run *scan.Run) {
	for _, summary := range run.Summaries {
		for _, warning := range summary.Warnings {
			fmt.Printf("Warning: %s: %s\n", summary.Host, warning)
		}
	}
}
