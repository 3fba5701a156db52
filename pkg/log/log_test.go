package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		levelStr string
		want     Level
		wantErr  bool
	}{
		{name: "debug", levelStr: "DEBUG", want: LevelDebug},
		{name: "lowercase debug", levelStr: "debug", want: LevelDebug},
		{name: "mixed case debug", levelStr: "Debug", want: LevelDebug},
		{name: "info", levelStr: "INFO", want: LevelInfo},
		{name: "warn", levelStr: "WARN", want: LevelWarn},
		{name: "warning", levelStr: "WARNING", want: LevelWarn},
		{name: "error", levelStr: "ERROR", want: LevelError},
		{name: "padded", levelStr: " error ", want: LevelError},
		{name: "invalid", levelStr: "INVALID", want: LevelInfo, wantErr: true},
		{name: "empty", levelStr: "", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.levelStr)
			assert.Equal(t, tt.want, got)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLogLevel))
			assert.Contains(t, err.Error(), tt.levelStr)
		})
	}
}

func TestLevelStringRepresentation(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: LevelDebug, want: "DEBUG"},
		{level: LevelInfo, want: "INFO"},
		{level: LevelWarn, want: "WARN"},
		{level: LevelError, want: "ERROR"},
		{level: Level(99), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestLevelBasedFiltering(t *testing.T) {
	original := CurrentLevel()
	defer SetLevel(original)

	logFuncs := map[string]func(string, ...any){
		"Debugf": Debugf,
		"Infof":  Infof,
		"Warnf":  Warnf,
		"Errorf": Errorf,
	}

	tests := []struct {
		name       string
		setLevel   Level
		wantOutput map[string]bool
	}{
		{
			name:       "debug level shows all logs",
			setLevel:   LevelDebug,
			wantOutput: map[string]bool{"Debugf": true, "Infof": true, "Warnf": true, "Errorf": true},
		},
		{
			name:       "info level hides debug logs",
			setLevel:   LevelInfo,
			wantOutput: map[string]bool{"Debugf": false, "Infof": true, "Warnf": true, "Errorf": true},
		},
		{
			name:       "warn level hides debug and info logs",
			setLevel:   LevelWarn,
			wantOutput: map[string]bool{"Debugf": false, "Infof": false, "Warnf": true, "Errorf": true},
		},
		{
			name:       "error level shows only error logs",
			setLevel:   LevelError,
			wantOutput: map[string]bool{"Debugf": false, "Infof": false, "Warnf": false, "Errorf": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(tt.setLevel)
			for name, fn := range logFuncs {
				var buf bytes.Buffer
				restore := SetOutput(&buf)
				fn("message from %s", name)
				restore()

				got := strings.Contains(buf.String(), "message from "+name)
				assert.Equal(t, tt.wantOutput[name], got, "%s at level %s", name, tt.setLevel)
			}
		})
	}
}

func TestJSONOutputOmitsTime(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("scan finished", "kind", "plugin")

	out := buf.String()
	assert.Contains(t, out, `"msg":"scan finished"`)
	assert.Contains(t, out, `"kind":"plugin"`)
	assert.NotContains(t, out, `"time"`)
}

func TestIsDebugEnabled(t *testing.T) {
	original := CurrentLevel()
	defer SetLevel(original)

	SetLevel(LevelDebug)
	assert.True(t, IsDebugEnabled())
	SetLevel(LevelWarn)
	assert.False(t, IsDebugEnabled())
}
