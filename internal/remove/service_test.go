package remove

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("weights"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func waitReport(t *testing.T, done chan Report) Report {
	t.Helper()
	select {
	case report := <-done:
		return report
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for delete report")
		return Report{}
	}
}

func TestNewService(t *testing.T) {
	service := NewService(zap.NewNop())
	if service == nil {
		t.Fatal("NewService returned nil")
	}
	if service.IsRunning() {
		t.Error("Expected new service to not be running")
	}
}

func TestModeDefaultIsRecycle(t *testing.T) {
	var mode Mode
	if mode != ModeRecycle {
		t.Errorf("Expected zero value mode to be ModeRecycle, got %v", mode)
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeRecycle, "recycle"},
		{ModePermanent, "permanent"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestDelete_Permanent(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "a.safetensors"),
		filepath.Join(dir, "b.ckpt"),
		filepath.Join(dir, "c.gguf"),
	}
	for _, path := range paths {
		writeFile(t, path)
	}

	service := NewService(zap.NewNop())
	done := make(chan Report, 1)
	service.SetDoneCallback(func(report Report) { done <- report })

	id, err := service.Start(paths, ModePermanent)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if id == "" {
		t.Error("Expected a non-empty operation ID")
	}

	report := waitReport(t, done)

	if len(report.Deleted) != 3 {
		t.Errorf("Expected 3 deleted, got %d", len(report.Deleted))
	}
	if len(report.Failures) != 0 {
		t.Errorf("Expected no failures, got %d", len(report.Failures))
	}
	if report.Remaining != 0 {
		t.Errorf("Expected no remaining files, got %d", report.Remaining)
	}
	if report.Cancelled() {
		t.Error("Expected report to not be cancelled")
	}
	for _, path := range paths {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be deleted", path)
		}
	}
}

func TestDelete_MissingFileContinuesBatch(t *testing.T) {
	dir := t.TempDir()
	existing1 := filepath.Join(dir, "a.pt")
	missing := filepath.Join(dir, "gone.pt")
	existing2 := filepath.Join(dir, "b.pt")
	writeFile(t, existing1)
	writeFile(t, existing2)

	service := NewService(zap.NewNop())
	done := make(chan Report, 1)
	service.SetDoneCallback(func(report Report) { done <- report })

	if _, err := service.Start([]string{existing1, missing, existing2}, ModePermanent); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	report := waitReport(t, done)

	if len(report.Deleted) != 2 {
		t.Errorf("Expected 2 deleted, got %d (%v)", len(report.Deleted), report.Deleted)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(report.Failures))
	}
	if report.Failures[0].Path != missing {
		t.Errorf("Expected failure for %s, got %s", missing, report.Failures[0].Path)
	}
	if report.Failures[0].Err == nil {
		t.Error("Expected failure to carry an error")
	}
}

func TestDelete_Recycle(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Recycle test uses the XDG trash layout")
	}

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	src := filepath.Join(t.TempDir(), "model.onnx")
	writeFile(t, src)

	service := NewService(zap.NewNop())
	done := make(chan Report, 1)
	service.SetDoneCallback(func(report Report) { done <- report })

	if _, err := service.Start([]string{src}, ModeRecycle); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	report := waitReport(t, done)

	if len(report.Deleted) != 1 {
		t.Fatalf("Expected 1 deleted, got %d (failures: %v)", len(report.Deleted), report.Failures)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Expected source file to be gone")
	}
	trashed := filepath.Join(dataHome, "Trash", "files", "model.onnx")
	if _, err := os.Stat(trashed); err != nil {
		t.Errorf("Expected file in trash at %s: %v", trashed, err)
	}
}

func TestDelete_EmptyBatch(t *testing.T) {
	service := NewService(zap.NewNop())

	if _, err := service.Start(nil, ModePermanent); !errors.Is(err, ErrNoPaths) {
		t.Errorf("Expected ErrNoPaths, got %v", err)
	}
}

func TestDelete_SecondStartWhileRunning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	writeFile(t, path)

	service := NewService(zap.NewNop())
	release := make(chan struct{})
	service.SetProgressCallback(func(processed, total int) {
		<-release
	})
	done := make(chan Report, 1)
	service.SetDoneCallback(func(report Report) { done <- report })

	if _, err := service.Start([]string{path}, ModePermanent); err != nil {
		t.Fatalf("First Start failed: %v", err)
	}

	if _, err := service.Start([]string{path}, ModePermanent); !errors.Is(err, ErrDeleteActive) {
		t.Errorf("Expected ErrDeleteActive, got %v", err)
	}

	close(release)
	waitReport(t, done)

	if service.IsRunning() {
		t.Error("Expected service to stop running after the batch")
	}
}

func TestDelete_CancelMidBatch(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 50; i++ {
		path := filepath.Join(dir, fmt.Sprintf("model-%02d.pt", i))
		writeFile(t, path)
		paths = append(paths, path)
	}

	service := NewService(zap.NewNop())
	done := make(chan Report, 1)
	service.SetDoneCallback(func(report Report) { done <- report })
	service.SetProgressCallback(func(processed, total int) {
		if processed == 1 {
			service.Stop()
		}
	})

	if _, err := service.Start(paths, ModePermanent); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	report := waitReport(t, done)

	if !report.Cancelled() {
		t.Error("Expected report to be cancelled")
	}
	if report.Remaining == 0 {
		t.Error("Expected untouched files after cancellation")
	}
	if len(report.Deleted) == 0 {
		t.Error("Expected some files deleted before cancellation")
	}
	total := len(report.Deleted) + len(report.Failures) + report.Remaining
	if total != len(paths) {
		t.Errorf("Expected counts to add up to %d, got %d", len(paths), total)
	}
}
