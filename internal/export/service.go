package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/modelsweep/modelsweep/internal/model"
)

// Workbook layout
const (
	sheetName      = "Models"
	maxColumnWidth = 80
)

// columnTitles is the fixed header row, in column order
var columnTitles = []string{"Name", "Path", "Extension", "Size", "Last Access Time", "Selected"}

// Service writes result rows as xlsx workbooks
type Service struct {
	logger *zap.Logger
}

// NewService creates a new export service
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// ExportFile writes the rows to an xlsx file at path. The file is created
// first so an unwritable destination fails before any workbook is built.
func (s *Service) ExportFile(rows []*model.FileRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := s.Write(rows, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	s.logger.Info("export written", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

// Write builds the workbook and streams it to w. Rows appear in the order
// given, which is the visible order at the time of the export.
func (s *Service) Write(rows []*model.FileRecord, w io.Writer) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name export sheet: %w", err)
	}

	for col, title := range columnTitles {
		if err := setCell(book, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, rec := range rows {
		row := i + 2
		cells := []interface{}{
			rec.Name,
			rec.Path,
			rec.Ext,
			rec.SizeBytes,
			rec.FormatAccessedAt(),
			rec.Selected,
		}
		for col, value := range cells {
			if err := setCell(book, col+1, row, value); err != nil {
				return err
			}
		}
	}

	if err := sizeColumns(book, rows); err != nil {
		return err
	}

	// Keep the header row visible while scrolling
	if err := book.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header row: %w", err)
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// setCell writes one value at 1-based coordinates
func setCell(book *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("resolve cell %d,%d: %w", col, row, err)
	}
	if err := book.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}

// sizeColumns widens each column to its longest content, capped so one deep
// path cannot stretch the sheet absurdly
func sizeColumns(book *excelize.File, rows []*model.FileRecord) error {
	widths := make([]int, len(columnTitles))
	for col, title := range columnTitles {
		widths[col] = len(title)
	}

	for _, rec := range rows {
		lengths := []int{
			len(rec.Name),
			len(rec.Path),
			len(rec.Ext),
			len(strconv.FormatInt(rec.SizeBytes, 10)),
			len(rec.FormatAccessedAt()),
			len("FALSE"),
		}
		for col, length := range lengths {
			if length > widths[col] {
				widths[col] = length
			}
		}
	}

	for col := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("resolve column %d: %w", col+1, err)
		}
		width := float64(widths[col] + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := book.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
	}
	return nil
}
