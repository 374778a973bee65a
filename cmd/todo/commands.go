package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
)

type commandKind int

const (
	cmdAdd commandKind = iota
	cmdToggle
	cmdDelete
	cmdEdit
	cmdDescribe
	cmdCategory
	cmdPriority
	cmdDue
	cmdFilter
	cmdCategories
	cmdExport
	cmdHelp
	cmdQuit
)

type command struct {
	kind     commandKind
	id       int
	text     string
	priority todo.Priority
	due      *time.Time // nil clears the due date
}

// usageError is shown as a hint rather than a failure.
type usageError string

func (e usageError) Error() string {
	return "usage: " + string(e)
}

// parseCommand turns one line of input into a command. Input without a
// leading slash adds a task.
func parseCommand(input, dateFormat string) (command, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		if input == "" {
			return command{}, usageError("<title>")
		}
		return command{kind: cmdAdd, text: input}, nil
	}

	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/a":
		if arg == "" {
			return command{}, usageError("/a <title>")
		}
		return command{kind: cmdAdd, text: arg}, nil
	case "/d":
		id, err := parseID(arg, "/d <id>")
		return command{kind: cmdToggle, id: id}, err
	case "/x":
		id, err := parseID(arg, "/x <id>")
		return command{kind: cmdDelete, id: id}, err
	case "/e":
		id, text, err := parseIDAndText(arg, "/e <id> <title>", true)
		return command{kind: cmdEdit, id: id, text: text}, err
	case "/desc":
		id, text, err := parseIDAndText(arg, "/desc <id> <text>", false)
		return command{kind: cmdDescribe, id: id, text: text}, err
	case "/c":
		id, text, err := parseIDAndText(arg, "/c <id> <category>", true)
		return command{kind: cmdCategory, id: id, text: text}, err
	case "/p":
		const usage = "/p <id> <1|2|3>"
		id, text, err := parseIDAndText(arg, usage, true)
		if err != nil {
			return command{}, err
		}
		n, err := strconv.Atoi(text)
		if err != nil || !todo.Priority(n).Valid() {
			return command{}, usageError(usage)
		}
		return command{kind: cmdPriority, id: id, priority: todo.Priority(n)}, nil
	case "/due":
		usage := fmt.Sprintf("/due <id> <%s|none>", dateFormat)
		id, text, err := parseIDAndText(arg, usage, true)
		if err != nil {
			return command{}, err
		}
		c := command{kind: cmdDue, id: id}
		if strings.EqualFold(text, "none") {
			return c, nil
		}
		due, err := parseDueDate(text, dateFormat)
		if err != nil {
			return command{}, usageError(usage)
		}
		c.due = &due
		return c, nil
	case "/f":
		return command{kind: cmdFilter, text: arg}, nil
	case "/cats":
		return command{kind: cmdCategories}, nil
	case "/export":
		if arg == "" {
			return command{}, usageError("/export <file.xlsx>")
		}
		return command{kind: cmdExport, text: arg}, nil
	case "/h":
		return command{kind: cmdHelp}, nil
	case "/q":
		return command{kind: cmdQuit}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q, enter /h for help", name)
	}
}

func parseID(s, usage string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}

func parseIDAndText(s, usage string, textRequired bool) (int, string, error) {
	rawID, text, _ := strings.Cut(s, " ")
	id, err := parseID(rawID, usage)
	if err != nil {
		return 0, "", err
	}
	text = strings.TrimSpace(text)
	if textRequired && text == "" {
		return 0, "", usageError(usage)
	}
	return id, text, nil
}

// parseDueDate reads a local calendar date; the task falls due at the end of
// that day.
func parseDueDate(s, dateFormat string) (time.Time, error) {
	day, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, 23, 59, 59, 0, time.Local), nil
}
