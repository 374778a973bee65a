// Package xlsx writes task lists to spreadsheet workbooks.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/benjamonnguyen/todo"
)

const SheetName = "Tasks"

var headers = []string{"ID", "Title", "Description", "Category", "Priority", "Completed", "Due", "Created", "Updated"}

// Build lays out one header row and one row per task, in the given order.
func Build(tasks []todo.Task, dateFormat string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, tasks, dateFormat); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, tasks []todo.Task, dateFormat string) error {
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}
	first, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
		return err
	}

	for r, t := range tasks {
		for c, v := range row(t, dateFormat) {
			if err := setCell(f, c+1, r+2, v); err != nil {
				return fmt.Errorf("failed to write task %d: %w", t.ID(), err)
			}
		}
	}

	return f.SetColWidth(SheetName, "B", "C", 40)
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(SheetName, cell, v)
}

// Export saves the workbook to path.
func Export(path string, tasks []todo.Task, dateFormat string) error {
	f, err := Build(tasks, dateFormat)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	return f.SaveAs(path)
}

func Write(w io.Writer, tasks []todo.Task, dateFormat string) error {
	f, err := Build(tasks, dateFormat)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	return f.Write(w)
}

func row(t todo.Task, dateFormat string) []any {
	completed := "no"
	if t.Completed() {
		completed = "yes"
	}
	var due string
	if d, ok := t.DueDate(); ok {
		due = d.Format(dateFormat)
	}
	return []any{
		t.ID(),
		t.Title(),
		t.Description(),
		t.Category(),
		t.Priority().String(),
		completed,
		due,
		t.CreatedAt().Format(time.DateTime),
		t.UpdatedAt().Format(time.DateTime),
	}
}
