package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/croemmich/wpheader/pkg/log"
)

// CaptureLogOutput redirects pkg/log output into a buffer while testFunc runs
// at the given level, then restores the previous writer and level.
//
//	output, err := testutil.CaptureLogOutput(log.LevelDebug, func() {
//	    log.Info("This will be captured")
//	})
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("panic during log capture: %v", r)
			}
		}()
		testFunc()
	}()

	return logBuf.String(), panicErr
}

// CaptureJSONLogs captures output like CaptureLogOutput and parses each line as
// a JSON record. LOG_FORMAT is forced to json for the duration.
func CaptureJSONLogs(t *testing.T, logLevel log.Level, testFunc func()) (string, []map[string]interface{}, error) {
	t.Helper()
	t.Setenv("LOG_FORMAT", "json")

	output, err := CaptureLogOutput(logLevel, testFunc)
	if err != nil {
		return output, nil, err
	}

	var parsed []map[string]interface{}
	for i, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return output, parsed, fmt.Errorf("failed to unmarshal log line %d as JSON: %w\nLine content: %s", i+1, err, line)
		}
		parsed = append(parsed, entry)
	}
	return output, parsed, nil
}

// AssertLogContainsJSON fails unless some entry in logs carries every key/value
// of expected.
func AssertLogContainsJSON(t *testing.T, logs []map[string]interface{}, expected map[string]interface{}) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, expected) {
			return
		}
	}
	want, _ := json.MarshalIndent(expected, "", "  ") //nolint:errcheck // test helper
	got, _ := json.MarshalIndent(logs, "", "  ")      //nolint:errcheck // test helper
	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s", want, got)
}

// AssertLogDoesNotContainJSON fails if any entry in logs carries every key/value
// of unexpected.
func AssertLogDoesNotContainJSON(t *testing.T, logs []map[string]interface{}, unexpected map[string]interface{}) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, unexpected) {
			found, _ := json.MarshalIndent(entry, "", "  ") //nolint:errcheck // test helper
			assert.Fail(t, "Unexpected log entry found", "Found log entry:\n%s", found)
			return
		}
	}
}

// containsAll compares top-level keys only. JSON numbers decode as float64, so
// ints in expected are widened before comparing.
func containsAll(actual, expected map[string]interface{}) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok {
			return false
		}
		if f, isFloat := got.(float64); isFloat {
			switch w := want.(type) {
			case int:
				if f != float64(w) {
					return false
				}
				continue
			case int64:
				if f != float64(w) {
					return false
				}
				continue
			}
		}
		if got != want {
			return false
		}
	}
	return true
}
