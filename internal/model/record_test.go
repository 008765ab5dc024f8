package model

import (
	"testing"
	"time"
)

func TestNewFileRecord(t *testing.T) {
	accessed := time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local)
	rec := NewFileRecord("/models/checkpoints/SDXL.SAFETENSORS", 1024, accessed)

	if rec.Name != "SDXL.SAFETENSORS" {
		t.Errorf("Expected name 'SDXL.SAFETENSORS', got '%s'", rec.Name)
	}

	if rec.Ext != ".safetensors" {
		t.Errorf("Expected lowercase extension '.safetensors', got '%s'", rec.Ext)
	}

	if rec.SizeBytes != 1024 {
		t.Errorf("Expected size 1024, got %d", rec.SizeBytes)
	}

	if !rec.AccessedAt.Equal(accessed) {
		t.Errorf("Expected accessed time %v, got %v", accessed, rec.AccessedAt)
	}

	if rec.Selected {
		t.Error("New records should not be selected")
	}
}

func TestFileRecord_MatchesFilter(t *testing.T) {
	rec := NewFileRecord("/models/LoRA/style-anime.safetensors", 2048, time.Now())

	tests := []struct {
		filter   string
		expected bool
	}{
		{"", true},
		{"anime", true},
		{"ANIME", true},
		{"lora", true},
		{"/models/", true},
		{".safetensors", true},
		{"SAFETENSORS", true},
		{"ckpt", false},
		{"missing", false},
	}

	for _, test := range tests {
		result := rec.MatchesFilter(test.filter)
		if result != test.expected {
			t.Errorf("MatchesFilter(%q) = %v, expected %v", test.filter, result, test.expected)
		}
	}
}

func TestFileRecord_FormatSize(t *testing.T) {
	tests := []struct {
		sizeBytes int64
		expected  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1000, "1.0 kB"},
		{2500000, "2.5 MB"},
		{83000000, "83 MB"},
		{4200000000, "4.2 GB"},
	}

	for _, test := range tests {
		rec := &FileRecord{SizeBytes: test.sizeBytes}
		result := rec.FormatSize()
		if result != test.expected {
			t.Errorf("FormatSize() with SizeBytes=%d = %s, expected %s", test.sizeBytes, result, test.expected)
		}
	}
}

func TestFileRecord_FormatAccessedAt(t *testing.T) {
	rec := &FileRecord{AccessedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local)}

	result := rec.FormatAccessedAt()
	if result != "2024-03-01 10:30:00" {
		t.Errorf("Expected '2024-03-01 10:30:00', got '%s'", result)
	}
}
