package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/xlsx"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const logo = `
	████████╗ ██████╗ ██████╗  ██████╗
	╚══██╔══╝██╔═══██╗██╔══██╗██╔═══██╗
	   ██║   ██║   ██║██║  ██║██║   ██║
	   ██║   ██║   ██║██║  ██║██║   ██║
	   ██║   ╚██████╔╝██████╔╝╚██████╔╝
	   ╚═╝    ╚═════╝ ╚═════╝  ╚═════╝`

const programUsage = `Usage:
  todo: open the task list
  todo /a <title>: add a task
  todo /ls [category]: print tasks, optionally for one category
  todo /export <file.xlsx>: write all tasks to a spreadsheet`

const commandHelp = `COMMANDS:
  <title>, /a <title>: add a task
  /d <id>: toggle done
  /x <id>: delete task

  /e <id> <title>: edit title
  /desc <id> [text]: set description; empty clears
  /c <id> <category>: set category
  /p <id> <1|2|3>: set priority (low, medium, high)
  /due <id> <date|none>: set or clear due date

  /f [category]: filter by category; if no category provided, clear filter
  /cats: list categories
  /export <file.xlsx>: write the visible tasks to a spreadsheet

  /q: quit
`

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model

	// supplied
	l    todo.Logger
	repo todo.TaskRepo

	// state
	tasks      []todo.Task
	categories []string
	filter     string
	alerts     []string
	quitting   bool
	h          int

	// configuration
	cmdTimeout time.Duration
	dateFormat string
	now        func() time.Time
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks, textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	// update children

	m.userinput, tiCmd = m.userinput.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// vp udpates on KeyMsg was causing a view flickering bug
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.l.Error("command failed", "error", msg.err)
		m.addAlert(msg.err.Error(), colorRed)
		m.resizeViewport()
		return m, nil
	case AlertMsg:
		m.addAlert(msg.text, msg.color)
		m.resizeViewport()
		return m, nil
	case LoadedMsg:
		if msg.filter != m.filter {
			// a reload for a filter that has since changed
			return m, nil
		}
		m.tasks = msg.tasks
		m.categories = msg.categories
		m.vp.SetContent(m.renderVisibleTasks())
		m.resizeViewport()
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			input := m.userinput.Value()
			m.userinput.Reset()
			if strings.TrimSpace(input) == "" {
				return m, nil
			}

			var cmd tea.Cmd
			m.alerts = nil
			m, cmd = m.handleInput(input)
			m.vp.SetContent(m.renderVisibleTasks())
			m.resizeViewport()
			return m, cmd
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) loadTasks() tea.Msg {
	timeout, cancel := m.newTimeout()
	defer cancel()

	var tasks []todo.Task
	var err error
	if m.filter == "" {
		tasks, err = m.repo.GetAll(timeout)
	} else {
		tasks, err = m.repo.GetByCategory(timeout, m.filter)
	}
	if err != nil {
		return ErrorMsg{
			err: err,
		}
	}
	categories, err := m.repo.GetAllCategories(timeout)
	if err != nil {
		return ErrorMsg{
			err: err,
		}
	}

	return LoadedMsg{
		filter:     m.filter,
		tasks:      tasks,
		categories: categories,
	}
}

// write runs op against the repo and reloads the list on success. On failure
// the list in memory is left as it was.
func (m model) write(op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()
		if err := op(timeout); err != nil {
			return ErrorMsg{
				err: err,
			}
		}
		return m.loadTasks()
	}
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	c, err := parseCommand(input, m.dateFormat)
	if err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			m.addAlert(err.Error(), colorYellow)
		} else {
			m.addAlert(err.Error(), colorRed)
		}
		return m, nil
	}

	switch c.kind {
	case cmdAdd:
		t, err := todo.NewTask(c.text, todo.WithCategory(m.filter))
		if err != nil {
			m.addAlert(err.Error(), colorRed)
			return m, nil
		}
		return m, m.write(func(ctx context.Context) error {
			return m.repo.Create(ctx, &t)
		})
	case cmdToggle:
		return m, m.write(func(ctx context.Context) error {
			_, err := m.repo.ToggleCompleted(ctx, c.id)
			return err
		})
	case cmdDelete:
		return m, m.write(func(ctx context.Context) error {
			return m.repo.Delete(ctx, c.id)
		})
	case cmdEdit, cmdDescribe, cmdCategory, cmdPriority, cmdDue:
		return m, m.write(func(ctx context.Context) error {
			_, err := m.repo.Edit(ctx, c.id, func(t *todo.Task) {
				applyEdit(t, c)
			})
			return err
		})
	case cmdFilter:
		m.filter = c.text
		return m, m.loadTasks
	case cmdCategories:
		if len(m.categories) == 0 {
			m.addAlert("no categories", colorYellow)
		} else {
			m.addAlert(strings.Join(m.categories, ", "), colorCyan)
		}
		return m, nil
	case cmdExport:
		tasks := m.visibleTasks()
		path, dateFormat := c.text, m.dateFormat
		return m, func() tea.Msg {
			if err := xlsx.Export(path, tasks, dateFormat); err != nil {
				return errorMsg("export %s: %w", path, err)
			}
			return AlertMsg{
				text:  fmt.Sprintf("exported %d tasks to %s", len(tasks), path),
				color: colorCyan,
			}
		}
	case cmdHelp:
		m.addAlert(commandHelp, colorYellow)
		return m, nil
	case cmdQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func applyEdit(t *todo.Task, c command) {
	switch c.kind {
	case cmdEdit:
		t.SetTitle(c.text)
	case cmdDescribe:
		t.SetDescription(c.text)
	case cmdCategory:
		t.SetCategory(c.text)
	case cmdPriority:
		t.SetPriority(c.priority)
	case cmdDue:
		if c.due == nil {
			t.ClearDueDate()
		} else {
			t.SetDueDate(*c.due)
		}
	}
}

func (m model) visibleTasks() []todo.Task {
	visible := slices.Clone(todo.FilterByCategory(m.tasks, m.filter))
	todo.SortForDisplay(visible)
	return visible
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')
	footer.WriteString(m.userinput.View())
	footer.WriteString("\n\n")

	showQuit := true
	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
		showQuit = false
	}

	footer.WriteString(faintStyle.Render(todo.Summarize(m.visibleTasks(), m.now()).String()))
	footer.WriteString("\n")

	if len(m.categories) > 0 {
		footer.WriteString(m.renderCategories())
		footer.WriteString("\n")
	}

	if showQuit {
		footer.WriteRune('\n')
		footer.WriteString(faintStyle.Render("(ctrl+c to quit)"))
		footer.WriteRune('\n')
	}

	return footer.String()
}

func (m model) renderCategories() string {
	var lines []string
	var currentLine []string
	lineWidth := 0

	for _, category := range m.categories {
		text := "@" + category

		var styled string
		if category == m.filter {
			styled = colorize(colorCyan, text)
		} else {
			styled = faintStyle.Render(text)
		}

		w := lipgloss.Width(styled)
		if lineWidth > 0 && lineWidth+w+1 >= m.vp.Width {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{styled}
			lineWidth = w
		} else {
			currentLine = append(currentLine, styled)
			lineWidth += w + 1
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}

	return strings.Join(lines, "\n")
}

func (m model) View() string {
	return lipgloss.JoinVertical(0, m.vp.View(), m.renderFooter())
}

func (m model) newTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cmdTimeout)
}

func (m *model) addAlert(alert string, c string) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

func (m *model) resizeViewport() {
	tasksHeight := lipgloss.Height(m.renderVisibleTasks())
	footerHeight := lipgloss.Height(m.renderFooter())
	m.vp.Height = max(0, min(tasksHeight, m.h-footerHeight))
	m.vp.GotoTop()
}

func (m model) renderVisibleTasks() string {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		if m.filter != "" {
			return faintStyle.Render(fmt.Sprintf("nothing in @%s", m.filter))
		}
		return faintStyle.Render("nothing to do")
	}

	now := m.now()
	lines := make([]string, 0, len(visible))
	for _, t := range visible {
		lines = append(lines, renderTask(t, now))
	}
	return strings.Join(lines, "\n")
}
