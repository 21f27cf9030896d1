package process_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	goerrors "github.com/kbukum/procout/errors"
	"github.com/kbukum/procout/process"
)

func TestLaunchSpec_CommandLine(t *testing.T) {
	spec := process.LaunchSpec{Path: "sh", Args: []string{"-c", "echo a b"}}
	assert.Equal(t, `-c "echo a b"`, spec.Arguments())
	assert.Equal(t, `sh -c "echo a b"`, spec.CommandLine())

	spec.NoQuote = true
	assert.Equal(t, "sh -c echo a b", spec.CommandLine())

	bare := process.LaunchSpec{Path: `C:\Program Files\tool.exe`}
	assert.Equal(t, `"C:\Program Files\tool.exe"`, bare.CommandLine())
}

func TestLaunchSpec_Validate(t *testing.T) {
	tests := []struct {
		name string
		spec process.LaunchSpec
		code goerrors.ErrorCode
	}{
		{"valid", process.LaunchSpec{Path: "sh", Args: []string{""}, Env: map[string]string{"A": ""}}, ""},
		{"empty path", process.LaunchSpec{}, goerrors.ErrCodeMissingField},
		{"blank path", process.LaunchSpec{Path: "  "}, goerrors.ErrCodeMissingField},
		{"nul in arg", process.LaunchSpec{Path: "sh", Args: []string{"a\x00b"}}, goerrors.ErrCodeInvalidInput},
		{"nul in dir", process.LaunchSpec{Path: "sh", Dir: "/tmp\x00"}, goerrors.ErrCodeInvalidInput},
		{"equals in env name", process.LaunchSpec{Path: "sh", Env: map[string]string{"A=B": "c"}}, goerrors.ErrCodeInvalidInput},
		{"empty env name", process.LaunchSpec{Path: "sh", Env: map[string]string{"": "c"}}, goerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			appErr, ok := goerrors.AsAppError(err)
			require.True(t, ok, "want *AppError, got %v", err)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg process.Config
	cfg.ApplyDefaults()

	assert.Equal(t, "process", cfg.Name)
	assert.Positive(t, cfg.DrainTimeout)
	assert.Equal(t, 4096, cfg.ChunkSize)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidatePriority(t *testing.T) {
	ok := process.Config{Priority: "Below-Normal"}
	assert.NoError(t, ok.Validate())

	bad := process.Config{Priority: "turbo", ChunkSize: -1}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority")
	assert.Contains(t, err.Error(), "chunk_size")
}

func TestParsePriority(t *testing.T) {
	for _, p := range []process.Priority{
		process.PriorityLowest, process.PriorityBelowNormal, process.PriorityNormal,
		process.PriorityAboveNormal, process.PriorityHighest, process.PriorityRealtime,
	} {
		got, err := process.ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	p, err := process.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, process.PriorityNormal, p)

	_, err = process.ParsePriority("turbo")
	assert.Error(t, err)
}

func TestState(t *testing.T) {
	assert.Equal(t, "failed_to_start", process.StateFailedToStart.String())
	assert.False(t, process.StateRunning.IsTerminal())
	assert.True(t, process.StateExited.IsTerminal())
	assert.True(t, process.StateFailedToStart.IsTerminal())
}

func TestLine_Encoding(t *testing.T) {
	line := process.Line{Stream: process.Stderr, Text: "oops"}

	b, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stream":"stderr","text":"oops"}`, string(b))

	y, err := yaml.Marshal(line)
	require.NoError(t, err)
	assert.Equal(t, "stream: stderr\ntext: oops\n", string(y))

	var decoded process.Line
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, line, decoded)

	err = json.Unmarshal([]byte(`{"stream":"stdin"}`), &decoded)
	assert.Error(t, err)
}
