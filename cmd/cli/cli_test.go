package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikesh24/portscanner/internal/config"
)

func resetScanFlags() {
	scanMode = ""
	scanPorts = ""
	scanTimeout = 0
	scanWorkers = 0
}

func TestApplyScanFlags(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "no flags keep config values",
			setup: func() {},
			check: func(t *testing.T, cfg *config.Config) {
				defaults := config.Default()
				assert.Equal(t, defaults.Scanning, cfg.Scanning)
			},
		},
		{
			name: "explicit flags override config",
			setup: func() {
				scanMode = "full"
				scanTimeout = 250 * time.Millisecond
				scanWorkers = 32
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "full", cfg.Scanning.DefaultMode)
				assert.Equal(t, 250*time.Millisecond, cfg.Scanning.Timeout)
				assert.Equal(t, 32, cfg.Scanning.MaxWorkers)
			},
		},
		{
			name: "ports flag alone implies custom mode",
			setup: func() {
				scanPorts = "22,80"
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "custom", cfg.Scanning.DefaultMode)
				assert.Equal(t, "22,80", cfg.Scanning.DefaultPorts)
			},
		},
		{
			name: "explicit mode wins over ports implication",
			setup: func() {
				scanMode = "quick"
				scanPorts = "22,80"
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "quick", cfg.Scanning.DefaultMode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetScanFlags()
			defer resetScanFlags()
			tt.setup()

			cfg := config.Default()
			applyScanFlags(cfg)
			tt.check(t, cfg)
		})
	}
}

func TestCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["scan"], "scan command should be registered")
	assert.True(t, names["config"], "config command should be registered")
}

func TestScanCommandFlags(t *testing.T) {
	for _, flag := range []string{"targets", "mode", "ports", "timeout", "workers", "output", "analyze"} {
		require.NotNil(t, scanCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestVersionString(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-08-01")
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2026-08-01)", rootCmd.Version)
}
