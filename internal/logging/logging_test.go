package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesKeyValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create log file: %v", err)
	}
	defer out.Close()

	logger := New(out, zapcore.InfoLevel)
	logger.Debugw("hidden")
	logger.Infow("Exported subtitles", "track", "Subs", "records", 3)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "hidden") {
		t.Errorf("debug entry written at info level: %q", got)
	}
	if !strings.Contains(got, "INFO") || !strings.Contains(got, `"track": "Subs"`) {
		t.Errorf("unexpected log output: %q", got)
	}
	// files are not terminals, so no color codes
	if strings.Contains(got, "\x1b[") {
		t.Errorf("unexpected color codes: %q", got)
	}
}
