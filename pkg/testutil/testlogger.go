package testutil

import (
	"bytes"
	"sync"
	"testing"

	"github.com/croemmich/wpheader/pkg/log"
)

// mutex serializes helpers that swap the global log writer.
var mutex sync.Mutex

// CaptureLogging buffers pkg/log output. The returned func restores the writer
// and returns what was logged.
func CaptureLogging() func() string {
	mutex.Lock()

	var logBuf bytes.Buffer
	restore := log.SetOutput(&logBuf)

	return func() string {
		defer mutex.Unlock()
		restore()
		return logBuf.String()
	}
}

// UseTestLogger hides log output unless the test fails or runs with -v.
func UseTestLogger(t *testing.T) {
	t.Helper()
	if testing.Verbose() {
		return
	}
	restoreAndGet := CaptureLogging()
	t.Cleanup(func() {
		captured := restoreAndGet()
		if t.Failed() && captured != "" {
			t.Logf("Log output captured during test:\n%s", captured)
		}
	})
}
