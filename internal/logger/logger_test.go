package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	path, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}

	wantDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("eval tmp dir failed: %v", err)
	}
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		t.Fatalf("eval log dir failed: %v", err)
	}
	if gotDir != filepath.Join(wantDir, defaultLogDirName) {
		t.Fatalf("log dir want %s got %s", filepath.Join(wantDir, defaultLogDirName), gotDir)
	}
	if base := filepath.Base(path); base != defaultLogFilename {
		t.Fatalf("log filename want %s got %s", defaultLogFilename, base)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("log dir must exist after resolve: %v", err)
	}
}

func TestResolveLogFilePathTrimsOptions(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := resolveLogFilePath(Options{
		Dir:      "  " + tmpDir + "  ",
		Filename: " store.log ",
	})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	if path != filepath.Join(tmpDir, "store.log") {
		t.Fatalf("log path want %s got %s", filepath.Join(tmpDir, "store.log"), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file must be created writable: %v", err)
	}
}

func TestReleaseModeWritesJSONToFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "store.log"})
	log.Info("inventory-sync-done")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "store.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "inventory-sync-done") {
		t.Fatalf("log file must contain message, got %s", line)
	}
	if !strings.Contains(line, `"message"`) || !strings.Contains(line, `"time"`) {
		t.Fatalf("log line must carry json keys, got %s", line)
	}
}

func TestDebugModeSkipsFileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "store.log"})
	log.Debug("inventory-sync-trace")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "store.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode must not create log file, stat err %v", err)
	}
}

func TestNormalizePositiveInt(t *testing.T) {
	if got := normalizePositiveInt(0, defaultLogMaxBackups); got != defaultLogMaxBackups {
		t.Fatalf("zero want fallback %d got %d", defaultLogMaxBackups, got)
	}
	if got := normalizePositiveInt(-3, defaultLogMaxAgeDays); got != defaultLogMaxAgeDays {
		t.Fatalf("negative want fallback %d got %d", defaultLogMaxAgeDays, got)
	}
	if got := normalizePositiveInt(12, defaultLogMaxSizeMB); got != 12 {
		t.Fatalf("positive want 12 got %d", got)
	}
}
