package main

import (
	"fmt"

	"github.com/benjamonnguyen/todo"
)

type LoadedMsg struct {
	filter     string
	tasks      []todo.Task
	categories []string
}

type AlertMsg struct {
	text  string
	color string
}

type ErrorMsg struct {
	err error
}

func errorMsg(format string, args ...any) ErrorMsg {
	return ErrorMsg{
		err: fmt.Errorf(format, args...),
	}
}
