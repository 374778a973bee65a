package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

var (
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	completedStyle = faintStyle.Strikethrough(true)
	highStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	categoryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
)

func colorize(color string, s string) string {
	return color + s + colorReset
}

func priorityMarker(p todo.Priority) string {
	switch p {
	case todo.PriorityHigh:
		return highStyle.Render("!")
	case todo.PriorityLow:
		return faintStyle.Render("↓")
	default:
		return " "
	}
}

// renderTask formats one list row:
//
//	[ ] #3 ! Buy milk @errands (due tomorrow)
func renderTask(t todo.Task, now time.Time) string {
	check := "[ ]"
	title := t.Title()
	if t.Completed() {
		check = "[x]"
		title = completedStyle.Render(title)
	}

	parts := []string{
		check,
		faintStyle.Render(fmt.Sprintf("#%d", t.ID())),
		priorityMarker(t.Priority()),
		title,
	}
	if t.Category() != todo.DefaultCategory {
		parts = append(parts, categoryStyle.Render("@"+t.Category()))
	}
	if label := t.DueLabel(now); label != "" {
		label = "(" + label + ")"
		if t.IsOverdueAt(now) {
			label = overdueStyle.Render(label)
		} else {
			label = faintStyle.Render(label)
		}
		parts = append(parts, label)
	}

	row := strings.Join(parts, " ")
	if d := t.Description(); d != "" {
		row += "\n      " + faintStyle.Render(d)
	}
	return row
}

// renderPlain is used outside the TUI where styling would end up in pipes.
func renderPlain(t todo.Task, now time.Time, dateFormat string) string {
	check := "[ ]"
	if t.Completed() {
		check = "[x]"
	}
	s := fmt.Sprintf("%s #%d %s (%s, %s)", check, t.ID(), t.Title(), t.Category(), t.Priority())
	if due, ok := t.DueDate(); ok {
		s += " due " + due.Format(dateFormat)
		if label := t.DueLabel(now); label == "overdue" {
			s += " " + label
		}
	}
	return s
}
