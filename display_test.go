package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func task(title string, p Priority, completed bool, due *time.Time) Task {
	return TaskFromRecord(Record{
		Title:     title,
		Category:  DefaultCategory,
		Priority:  p,
		Completed: completed,
		DueDate:   due,
		CreatedAt: t0,
		UpdatedAt: t0,
	})
}

func titles(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title())
	}
	return out
}

func TestSortForDisplay(t *testing.T) {
	soon := t0.Add(time.Hour)
	later := t0.Add(48 * time.Hour)
	tasks := []Task{
		task("done high", PriorityHigh, true, nil),
		task("low no due", PriorityLow, false, nil),
		task("high later", PriorityHigh, false, &later),
		task("medium no due", PriorityMedium, false, nil),
		task("high soon", PriorityHigh, false, &soon),
		task("high no due", PriorityHigh, false, nil),
		task("done low", PriorityLow, true, nil),
	}

	SortForDisplay(tasks)

	assert.Equal(t, []string{
		"high soon",
		"high later",
		"high no due",
		"medium no due",
		"low no due",
		"done high",
		"done low",
	}, titles(tasks))
}

func TestSortForDisplay_StableForTies(t *testing.T) {
	tasks := []Task{
		task("first", PriorityMedium, false, nil),
		task("second", PriorityMedium, false, nil),
		task("third", PriorityMedium, false, nil),
	}

	SortForDisplay(tasks)

	assert.Equal(t, []string{"first", "second", "third"}, titles(tasks))
}

func TestDueLabel(t *testing.T) {
	at := func(d time.Duration) *time.Time {
		v := t0.Add(d)
		return &v
	}
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"no due date", task("a", PriorityMedium, false, nil), ""},
		{"completed overdue", task("a", PriorityMedium, true, at(-time.Hour)), ""},
		{"overdue", task("a", PriorityMedium, false, at(-time.Second)), "overdue"},
		{"later today", task("a", PriorityMedium, false, at(5*time.Hour)), "due today"},
		{"tomorrow", task("a", PriorityMedium, false, at(30*time.Hour)), "due tomorrow"},
		{"in three days", task("a", PriorityMedium, false, at(3*24*time.Hour)), "due in 3d"},
		{"in a week", task("a", PriorityMedium, false, at(7*24*time.Hour)), "due in 7d"},
		{"beyond a week", task("a", PriorityMedium, false, at(8*24*time.Hour)), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.DueLabel(t0))
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	work := TaskFromRecord(Record{Title: "w", Category: "work"})
	home := TaskFromRecord(Record{Title: "h", Category: "home"})
	workUpper := TaskFromRecord(Record{Title: "W", Category: "Work"})
	tasks := []Task{work, home, workUpper}

	assert.Equal(t, []string{"w"}, titles(FilterByCategory(tasks, "work")))
	assert.Len(t, FilterByCategory(tasks, ""), 3)
	assert.Empty(t, FilterByCategory(tasks, "garden"))
}

func TestSummarize(t *testing.T) {
	past := t0.Add(-time.Hour)
	tasks := []Task{
		task("a", PriorityMedium, true, nil),
		task("b", PriorityMedium, false, &past),
		task("c", PriorityMedium, true, &past),
		task("d", PriorityMedium, false, nil),
	}

	s := Summarize(tasks, t0)

	assert.Equal(t, Summary{Total: 4, Completed: 2, Overdue: 1}, s)
	assert.Equal(t, "4 items · 2 completed · 1 overdue", s.String())
}

func TestSummary_String(t *testing.T) {
	assert.Equal(t, "No items", Summary{}.String())
	assert.Equal(t, "1 item", Summary{Total: 1}.String())
	assert.Equal(t, "2 items · 1 overdue", Summary{Total: 2, Overdue: 1}.String())
	assert.Equal(t, "3 items · 3 completed", Summary{Total: 3, Completed: 3}.String())
}
