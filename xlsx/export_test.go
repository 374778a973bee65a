package xlsx

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/benjamonnguyen/todo"
)

func testTasks(t *testing.T) []todo.Task {
	t.Helper()
	due := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	milk := todo.TaskFromRecord(todo.Record{
		ID:          1,
		Title:       "Buy milk",
		Description: "2%",
		Category:    "errands",
		Priority:    todo.PriorityHigh,
		CreatedAt:   due.Add(-48 * time.Hour),
		UpdatedAt:   due.Add(-24 * time.Hour),
		DueDate:     &due,
	})
	report := todo.TaskFromRecord(todo.Record{
		ID:        2,
		Title:     "File report",
		Category:  "work",
		Completed: true,
		Priority:  todo.PriorityLow,
		CreatedAt: due,
		UpdatedAt: due,
	})
	return []todo.Task{milk, report}
}

func TestExport_WritesHeaderAndRows(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "tasks.xlsx")

	// Act
	err := Export(path, testTasks(t), "2006-01-02")

	// Assert
	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"1", "Buy milk", "2%", "errands", "high", "no", "2026-03-14"}, rows[1][:7])
	assert.Equal(t, "File report", rows[2][1])
	assert.Equal(t, "yes", rows[2][5])
	assert.Equal(t, "", rows[2][6])
}

func TestWrite_EmptyList(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, nil, "2006-01-02")

	require.NoError(t, err)
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSetCell_RejectsInvalidCoordinates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	assert.Error(t, setCell(f, 0, 1, "x"))
	assert.Error(t, setCell(f, 1, 0, "x"))
	assert.NoError(t, setCell(f, 1, 1, "x"))
}
