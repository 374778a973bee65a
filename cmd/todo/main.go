package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
	"github.com/benjamonnguyen/todo/sqlite"
	"github.com/benjamonnguyen/todo/xlsx"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var logger todo.Logger

func main() {
	// conf
	conf, err := todo.LoadConfig(todo.DefaultConfFile())
	if err != nil {
		fmt.Println(colorize(colorRed, err.Error()))
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(conf.LogPath), 0o755); err != nil {
		panic(err)
	}
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger = charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
	})
	logger.Info("loaded config", "config", conf)

	// db
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	db, store, err := openStore(timeout, conf.DatabaseURL, logger)
	if err != nil {
		fmt.Println(colorize(colorRed, err.Error()))
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	// handle initial args
	opts, err := runProgramArgs(timeout, os.Args[1:], store, os.Stdout, conf.DateFormat)
	if err != nil {
		fmt.Println(colorize(colorRed, err.Error()))
		os.Exit(1)
	}
	if opts.showHelp {
		fmt.Println(colorize(colorYellow, programUsage))
		os.Exit(0)
	}
	if opts.shouldExit {
		os.Exit(0)
	}

	// start program
	fmt.Println(colorize(colorYellow, logo))
	fmt.Printf("\nEnter \"/h\" for help\n\n")

	userinput := textinput.New()
	userinput.Focus()
	userinput.CharLimit = 280
	userinput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))

	m := model{
		l:          logger,
		repo:       store,
		dateFormat: conf.DateFormat,
		cmdTimeout: 3 * time.Second,
		now:        time.Now,
		userinput:  userinput,
		vp:         viewport.New(0, 0),
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}

// openStore opens the database file and brings its schema up to date. The
// returned Database and TaskRepo are the same store.
func openStore(ctx context.Context, url string, l todo.Logger) (todo.Database, todo.TaskRepo, error) {
	store := sqlite.Open(url, l)
	if !store.IsOpen() {
		return nil, nil, fmt.Errorf("failed to open %s: %w", url, todo.ErrClosed)
	}
	if err := store.Initialize(ctx); err != nil {
		l.Error("failed migration", "error", err)
		_ = store.Close()
		return nil, nil, err
	}
	return store, store, nil
}

type options struct {
	showHelp   bool
	shouldExit bool
}

// runProgramArgs executes a one-shot command given on the command line. With
// no arguments the interactive list starts.
func runProgramArgs(ctx context.Context, args []string, repo todo.TaskRepo, out io.Writer, dateFormat string) (options, error) {
	var opts options
	if len(args) == 0 {
		return opts, nil
	}

	cmd, arg := args[0], strings.TrimSpace(strings.Join(args[1:], " "))
	logger.Debug("parsed program args", "cmd", cmd, "arg", arg)

	switch cmd {
	case "/a":
		if arg == "" {
			opts.showHelp = true
			return opts, nil
		}
		t, err := todo.NewTask(arg)
		if err != nil {
			return options{}, err
		}
		if err := repo.Create(ctx, &t); err != nil {
			return options{}, err
		}
		fmt.Fprintf(out, "Added #%d %q\n", t.ID(), t.Title())
	case "/ls":
		var tasks []todo.Task
		var err error
		if arg == "" {
			tasks, err = repo.GetAll(ctx)
		} else {
			tasks, err = repo.GetByCategory(ctx, arg)
		}
		if err != nil {
			return options{}, err
		}
		todo.SortForDisplay(tasks)
		now := time.Now()
		for _, t := range tasks {
			fmt.Fprintln(out, renderPlain(t, now, dateFormat))
		}
		fmt.Fprintln(out, todo.Summarize(tasks, now))
	case "/export":
		if arg == "" {
			opts.showHelp = true
			return opts, nil
		}
		tasks, err := repo.GetAll(ctx)
		if err != nil {
			return options{}, err
		}
		todo.SortForDisplay(tasks)
		if err := xlsx.Export(arg, tasks, dateFormat); err != nil {
			return options{}, err
		}
		fmt.Fprintf(out, "Exported %d tasks to %s\n", len(tasks), arg)
	default:
		opts.showHelp = true
		return opts, nil
	}

	opts.shouldExit = true
	return opts, nil
}
