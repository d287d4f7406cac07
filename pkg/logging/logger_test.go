package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "WARN", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestFileLoggerWritesComponentTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.log")
	logger, err := New(Options{Level: "info", OutputFile: path, Colors: true})
	require.NoError(t, err)

	logger.ComponentInfo(ComponentWallet, "wallet synchronized")
	logger.ComponentDebug(ComponentWallet, "hidden below info")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "[WALLET] wallet synchronized")
	assert.NotContains(t, out, "hidden below info")
	assert.False(t, strings.Contains(out, "\033["), "file output must not carry color codes")
}

func TestWrapNil(t *testing.T) {
	logger := Wrap(nil)
	require.NotNil(t, logger.Logger)
	logger.ComponentWarn(ComponentState, "no-op")
}

func TestOutputWriterReceivesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.ComponentInfo(ComponentCLI, "hidden")
	logger.ComponentWarn(ComponentCLI, "shown")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"[CLI] shown"`)
}
