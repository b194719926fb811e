package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"barcodereader/internal/config"
)

func TestLogger_WritesLevelFiles(t *testing.T) {
	dir := t.TempDir()
	var diag bytes.Buffer

	l, err := NewLogger(&config.Config{LogDirectory: dir}, "run-1", &diag)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	l.Info("frame %d processed", 1)
	l.Warning("decoder hiccup")
	l.Error("camera lost")

	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	tests := []struct {
		file     string
		contains string
	}{
		{"info.log", "frame 1 processed"},
		{"warning.log", "decoder hiccup"},
		{"error.log", "camera lost"},
	}

	for _, tt := range tests {
		data, err := os.ReadFile(filepath.Join(dir, tt.file))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", tt.file, err)
		}
		if !strings.Contains(string(data), tt.contains) {
			t.Errorf("%s: expected %q, got %q", tt.file, tt.contains, string(data))
		}
		if !strings.Contains(string(data), "[run-1]") {
			t.Errorf("%s: expected run id tag, got %q", tt.file, string(data))
		}
	}

	out := diag.String()
	if strings.Contains(out, "frame 1 processed") {
		t.Error("info entries must not reach the diagnostic writer")
	}
	if !strings.Contains(out, "decoder hiccup") || !strings.Contains(out, "camera lost") {
		t.Errorf("diagnostic writer missing warning/error entries: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("ignored")
	l.Warning("ignored")
	l.Error("ignored")
	if err := l.Close(); err != nil {
		t.Errorf("Close on discard logger: %v", err)
	}
}
