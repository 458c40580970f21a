package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ScanError
		want string
	}{
		{
			name: "with target",
			err:  NewScanErrorWithTarget(CodeTargetInvalid, "Invalid target specification", "bad..host"),
			want: "[TARGET_INVALID] Invalid target specification (target: bad..host)",
		},
		{
			name: "without target",
			err:  NewScanError(CodeScanFailed, "Scan failed"),
			want: "[SCAN_FAILED] Scan failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestScanErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := WrapScanError(CodeScanFailed, "probe failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestInputErrorFormatting(t *testing.T) {
	err := ErrEmptyTargets()
	assert.Equal(t, "[VALIDATION] No targets specified (field: targets)", err.Error())
	assert.Equal(t, "targets", err.Field)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"scan error", NewScanError(CodeTimeout, "timed out"), CodeTimeout},
		{"input error", ErrEmptyPorts(), CodeValidation},
		{"config error", NewConfigError(CodeConfiguration, "missing"), CodeConfiguration},
		{"plain error", fmt.Errorf("plain"), CodeUnknown},
		{"nil-ish wrapped", errors.New("x"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := ErrInvalidPort(70000)
	assert.True(t, IsCode(err, CodePortInvalid))
	assert.False(t, IsCode(err, CodeValidation))
}

func TestErrConfigInvalid(t *testing.T) {
	cause := fmt.Errorf("must be positive")
	err := ErrConfigInvalid("scanning.max_workers", cause)

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "scanning.max_workers", err.Field)
	require.ErrorIs(t, err, cause)
}
