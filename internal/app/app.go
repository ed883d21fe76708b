// Package app runs qline: a prompt loop that reads lines with the line
// editor, keeps a transcript on screen and prints the submitted lines on
// exit.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/history"
	"github.com/kobzarvs/qline/internal/lineeditor"
	"github.com/kobzarvs/qline/internal/logger"
)

// App is the top-level runtime for qline.
type App struct {
	args []string
	out  io.Writer

	cfgPath string
	screen  tcell.Screen
	source  lineeditor.EventSource
	editor  *lineeditor.LineEditor
	theme   config.Theme
	prompt  string
	history *history.Store
	closers []func()
	reload  chan struct{}

	row        int
	transcript []string
	submitted  []string
}

func New(args []string) *App {
	return &App{
		args:   args,
		out:    os.Stdout,
		reload: make(chan struct{}, 1),
	}
}

func (a *App) Run() error {
	if err := a.parseArgs(); err != nil {
		return err
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug); err != nil {
		fmt.Fprintln(os.Stderr, "qline: logging disabled:", err)
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	a.screen = s

	if stop, err := a.watch(a.cfgPath); err != nil {
		logger.Warn("config watcher disabled", "error", err)
	} else {
		defer stop()
	}

	err = a.loop(cfg)
	s.Fini()
	for _, line := range a.submitted {
		fmt.Fprintln(a.out, line)
	}
	return err
}

// parseArgs accepts an optional "--config PATH".
func (a *App) parseArgs() error {
	args := a.args
	for len(args) > 0 {
		switch args[0] {
		case "-c", "--config":
			if len(args) < 2 {
				return fmt.Errorf("%s needs a path", args[0])
			}
			a.cfgPath = args[1]
			args = args[2:]
		default:
			return fmt.Errorf("unknown argument %q", args[0])
		}
	}
	if a.cfgPath == "" {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		a.cfgPath = path
	}
	return nil
}

func (a *App) loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(a.cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", a.cfgPath, err)
	}
	return cfg, nil
}

// loop reads lines until the session ends. Pending config reloads are
// applied before each line.
func (a *App) loop(cfg config.Config) error {
	if err := a.configure(cfg); err != nil {
		return err
	}
	defer a.release()

	for {
		a.applyReload()
		a.editor.SetStartPosition(0, a.row)
		res, err := a.editor.ReadLine()
		if err != nil {
			if errors.Is(err, lineeditor.ErrScreenClosed) {
				return nil
			}
			return err
		}
		switch res.Status {
		case lineeditor.Success:
			a.submit(res.Content)
		case lineeditor.Interrupted:
			a.advance(a.prompt + "^C")
		case lineeditor.EndTerminalSession:
			return nil
		}
	}
}

func (a *App) applyReload() {
	select {
	case <-a.reload:
	default:
		return
	}
	cfg, err := a.loadConfig()
	if err != nil {
		logger.Warn("reload config", "error", err)
		return
	}
	if err := a.configure(cfg); err != nil {
		logger.Error("apply reloaded config", "error", err)
		return
	}
	logger.Info("config reloaded", "path", a.cfgPath)
}

func (a *App) submit(content string) {
	a.submitted = append(a.submitted, content)
	if a.history != nil {
		if err := a.history.Add(content); err != nil {
			logger.Warn("history add", "error", err)
		}
	}
	a.advance(a.prompt + content)
}

// advance repaints the finished line without its hint and moves the
// prompt one row down, scrolling the transcript at the bottom.
func (a *App) advance(line string) {
	a.transcript = append(a.transcript, line)
	_, rows := a.screen.Size()
	_, row := a.editor.StartPosition()
	a.paintRow(row, line)
	if row+1 < rows {
		a.row = row + 1
		a.screen.Show()
		return
	}

	a.screen.Clear()
	keep := rows - 1
	if keep < 0 {
		keep = 0
	}
	lines := a.transcript
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	for y, l := range lines {
		a.paintRow(y, l)
	}
	a.row = len(lines)
	a.screen.Show()
}

func (a *App) paintRow(y int, line string) {
	width, _ := a.screen.Size()
	promptStyle := a.theme.PromptStyle()
	baseStyle := a.theme.BaseStyle()
	promptLen := len([]rune(a.prompt))
	x := 0
	for i, r := range []rune(line) {
		if x >= width {
			break
		}
		style := baseStyle
		if i < promptLen {
			style = promptStyle
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, baseStyle)
	}
}

// Submitted returns the lines submitted so far.
func (a *App) Submitted() []string {
	return append([]string(nil), a.submitted...)
}
