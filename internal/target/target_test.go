package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikesh24/portscanner/internal/errors"
)

func TestParseHosts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "10.0.0.1,example.org",
			want:  []string{"10.0.0.1", "example.org"},
		},
		{
			name:  "whitespace and empties",
			input: " 10.0.0.1 , ,example.org, ",
			want:  []string{"10.0.0.1", "example.org"},
		},
		{
			name:  "duplicates keep first occurrence order",
			input: "b.example,a.example,b.example,a.example",
			want:  []string{"b.example", "a.example"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHosts(tt.input))
		})
	}
}

func TestValidateHost(t *testing.T) {
	valid := []string{"127.0.0.1", "192.168.1.10", "2001:db8::1", "localhost", "example.org", "my-host.internal"}
	for _, host := range valid {
		assert.NoError(t, ValidateHost(host), "expected %q to validate", host)
	}

	invalid := []string{"", "bad_host!", "-leadingdash.example", "host with spaces"}
	for _, host := range invalid {
		err := ValidateHost(host)
		require.Error(t, err, "expected %q to be rejected", host)
		assert.True(t, errors.IsCode(err, errors.CodeTargetInvalid))
	}
}

func TestValidateHosts(t *testing.T) {
	bad := ValidateHosts([]string{"127.0.0.1", "no spaces allowed", "example.org", "also bad!"})
	assert.Equal(t, []string{"no spaces allowed", "also bad!"}, bad)
}

func TestParsePortsQuick(t *testing.T) {
	ports, err := ParsePorts(ModeQuick, "")
	require.NoError(t, err)
	assert.Equal(t, TopPorts, ports)

	// Quick mode returns a copy, not the shared slice.
	ports[0] = 9999
	assert.Equal(t, uint16(21), TopPorts[0])
}

func TestParsePortsFull(t *testing.T) {
	ports, err := ParsePorts(ModeFull, "")
	require.NoError(t, err)
	require.Len(t, ports, 1024)
	assert.Equal(t, uint16(1), ports[0])
	assert.Equal(t, uint16(1024), ports[1023])
}

func TestParsePortsCustom(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []uint16
		wantErr bool
	}{
		{
			name: "singles and range",
			spec: "443,80,1000-1003",
			want: []uint16{80, 443, 1000, 1001, 1002, 1003},
		},
		{
			name: "reversed range is normalized",
			spec: "1003-1000",
			want: []uint16{1000, 1001, 1002, 1003},
		},
		{
			name: "overlap de-duplicated",
			spec: "80,80,79-81",
			want: []uint16{79, 80, 81},
		},
		{
			name:    "port too large",
			spec:    "70000",
			wantErr: true,
		},
		{
			name:    "port zero",
			spec:    "0",
			wantErr: true,
		},
		{
			name:    "garbage token",
			spec:    "http",
			wantErr: true,
		},
		{
			name:    "garbage range bound",
			spec:    "80-http",
			wantErr: true,
		},
		{
			name:    "empty spec",
			spec:    "  ",
			wantErr: true,
		},
		{
			name:    "only separators",
			spec:    ",,,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports, err := ParsePorts(ModeCustom, tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ports)
		})
	}
}

func TestParsePortsUnknownMode(t *testing.T) {
	_, err := ParsePorts(Mode("turbo"), "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "ssh", ServiceName(22))
	assert.Equal(t, "rdp", ServiceName(3389))
	assert.Equal(t, "", ServiceName(9000))
	assert.Equal(t, "", ServiceName(12345))
}
