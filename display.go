package todo

import (
	"fmt"
	"slices"
	"time"
)

// SortForDisplay orders open tasks first, then by priority (high first), then
// tasks with a due date before those without, earliest due first.
func SortForDisplay(tasks []Task) {
	slices.SortStableFunc(tasks, compareForDisplay)
}

func compareForDisplay(a, b Task) int {
	if a.completed != b.completed {
		if !a.completed {
			return -1
		}
		return 1
	}
	if a.priority != b.priority {
		if a.priority > b.priority {
			return -1
		}
		return 1
	}
	aDue, bDue := a.dueDate != nil, b.dueDate != nil
	if aDue != bDue {
		if aDue {
			return -1
		}
		return 1
	}
	if aDue && bDue {
		return a.dueDate.Compare(*b.dueDate)
	}
	return 0
}

// DueLabel is empty for completed tasks, tasks without a due date and tasks due
// more than a week out.
func (t Task) DueLabel(now time.Time) string {
	if t.completed || t.dueDate == nil {
		return ""
	}
	if t.IsOverdueAt(now) {
		return "overdue"
	}
	switch days := t.DaysUntilDueAt(now); {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days > 1 && days <= 7:
		return fmt.Sprintf("due in %dd", days)
	default:
		return ""
	}
}

func FilterByCategory(tasks []Task, category string) []Task {
	if category == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

type Summary struct {
	Total     int
	Completed int
	Overdue   int
}

func Summarize(tasks []Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.completed {
			s.Completed++
		}
		if t.IsOverdueAt(now) {
			s.Overdue++
		}
	}
	return s
}

func (s Summary) String() string {
	var status string
	switch s.Total {
	case 0:
		status = "No items"
	case 1:
		status = "1 item"
	default:
		status = fmt.Sprintf("%d items", s.Total)
	}
	if s.Completed > 0 {
		status += fmt.Sprintf(" · %d completed", s.Completed)
	}
	if s.Overdue > 0 {
		status += fmt.Sprintf(" · %d overdue", s.Overdue)
	}
	return status
}
