package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/modelsweep/modelsweep/internal/model"
)

func record(t *testing.T, path string, size int64, selected bool) *model.FileRecord {
	t.Helper()
	rec := model.NewFileRecord(path, size, time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local))
	rec.Selected = selected
	return rec
}

func sheetRows(t *testing.T, path string) [][]string {
	t.Helper()
	book, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows("Models")
	if err != nil {
		t.Fatalf("Failed to read Models sheet: %v", err)
	}
	return rows
}

func TestExportFile_WritesWorkbook(t *testing.T) {
	recs := []*model.FileRecord{
		record(t, "/data/models/sdxl.safetensors", 5000000, true),
		record(t, "/data/models/old.ckpt", 1234, false),
	}

	path := filepath.Join(t.TempDir(), "models.xlsx")
	service := NewService(zap.NewNop())
	if err := service.ExportFile(recs, path); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	rows := sheetRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d rows", len(rows))
	}

	wantHeader := []string{"Name", "Path", "Extension", "Size", "Last Access Time", "Selected"}
	for i, title := range wantHeader {
		if rows[0][i] != title {
			t.Errorf("Expected header %q in column %d, got %q", title, i, rows[0][i])
		}
	}

	first := rows[1]
	if first[0] != "sdxl.safetensors" {
		t.Errorf("Expected name sdxl.safetensors, got %q", first[0])
	}
	if first[1] != "/data/models/sdxl.safetensors" {
		t.Errorf("Expected full path, got %q", first[1])
	}
	if first[2] != ".safetensors" {
		t.Errorf("Expected extension .safetensors, got %q", first[2])
	}
	if first[3] != "5000000" {
		t.Errorf("Expected plain number size, got %q", first[3])
	}
	if first[4] != recs[0].FormatAccessedAt() {
		t.Errorf("Expected formatted access time %q, got %q", recs[0].FormatAccessedAt(), first[4])
	}
	if first[5] != "TRUE" {
		t.Errorf("Expected selected TRUE, got %q", first[5])
	}
	if rows[2][5] != "FALSE" {
		t.Errorf("Expected unselected FALSE, got %q", rows[2][5])
	}
}

func TestExportFile_PreservesRowOrder(t *testing.T) {
	recs := []*model.FileRecord{
		record(t, "/m/charlie.pt", 3, false),
		record(t, "/m/alpha.pt", 1, false),
		record(t, "/m/bravo.pt", 2, false),
	}

	path := filepath.Join(t.TempDir(), "models.xlsx")
	service := NewService(zap.NewNop())
	if err := service.ExportFile(recs, path); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	rows := sheetRows(t, path)
	wantNames := []string{"charlie.pt", "alpha.pt", "bravo.pt"}
	for i, name := range wantNames {
		if rows[i+1][0] != name {
			t.Errorf("Expected row %d to be %q, got %q", i+1, name, rows[i+1][0])
		}
	}
}

func TestExportFile_UnwritablePath(t *testing.T) {
	service := NewService(zap.NewNop())

	path := filepath.Join(t.TempDir(), "missing", "dir", "models.xlsx")
	if err := service.ExportFile(nil, path); err == nil {
		t.Error("Expected error for unwritable destination")
	}
}

func TestWrite_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	service := NewService(zap.NewNop())
	if err := service.Write(nil, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows("Models")
	if err != nil {
		t.Fatalf("Failed to read Models sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected only the header row, got %d rows", len(rows))
	}
}
