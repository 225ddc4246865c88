package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/duhaesbaert/ideavim/internal/dispatch"
	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/option"
)

// ErrQuit signals a normal :q exit.
var ErrQuit = errors.New("quit")

// App owns the terminal screen and routes key events into the
// dispatcher. It implements dispatch.Host for the file commands.
type App struct {
	screen tcell.Screen
	opts   *option.Registry
	buf    *editor.LineBuffer
	disp   *dispatch.Dispatcher

	files    []string
	current  int
	readOnly bool

	// lastSaved mirrors the buffer content at the last load or write.
	lastSaved string

	top     int
	cmdline []rune
	inCmd   bool

	rcWatcher     *option.Watcher
	quitRequested bool

	mu   sync.Mutex
	done bool
}

func (a *App) requestQuit() {
	a.quitRequested = true
}

// NewApp builds the application, loads the rc file, and opens the
// first file argument.
func NewApp(opts Options) (*App, error) {
	reg := option.NewRegistryWithDefaults()

	a := &App{
		opts:     reg,
		buf:      editor.NewLineBuffer(""),
		files:    opts.Files,
		readOnly: opts.ReadOnly,
	}
	a.disp = dispatch.New(a.buf, reg, a)
	a.lastSaved = ""

	if opts.RCPath != "" {
		loader := option.NewLoader(opts.RCPath)
		if err := loader.Apply(reg); err != nil {
			return nil, fmt.Errorf("loading rc file: %w", err)
		}
		w, err := option.NewWatcher(loader, reg)
		if err == nil {
			a.rcWatcher = w
		}
	}

	if len(a.files) > 0 {
		if err := a.loadFile(a.files[0]); err != nil {
			return nil, err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen
	return a, nil
}

// Run drives the event loop until a quit command arrives.
func (a *App) Run() error {
	for {
		a.draw()
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return ErrQuit
			}
		case nil:
			// Screen finalized from another goroutine.
			return ErrQuit
		}
	}
}

// Shutdown restores the terminal. Safe to call more than once.
func (a *App) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done {
		return
	}
	a.done = true
	if a.rcWatcher != nil {
		a.rcWatcher.Close()
	}
	if a.screen != nil {
		a.screen.Fini()
	}
}

// handleKey routes one key event. Returns true when the app should
// exit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.inCmd {
		a.handleCmdlineKey(ev)
		return a.quitRequested
	}

	// ':' opens the command line from the normal-family modes.
	if ev.Key() == tcell.KeyRune && ev.Rune() == ':' &&
		a.disp.Mode() != editor.ModeInsert && a.disp.Pending() == "" {
		a.inCmd = true
		a.cmdline = a.cmdline[:0]
		if _, ok := a.disp.VisualRange(); ok {
			a.cmdline = append(a.cmdline, []rune("'<,'>")...)
		}
		return false
	}

	if key, ok := translateKey(ev); ok {
		if a.readOnly && wouldEdit(a.disp, key) {
			return false
		}
		a.disp.HandleKey(key)
	}
	return a.quitRequested
}

func (a *App) handleCmdlineKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.inCmd = false
		a.cmdline = a.cmdline[:0]
	case tcell.KeyEnter:
		line := string(a.cmdline)
		a.inCmd = false
		a.cmdline = a.cmdline[:0]
		// Errors surface through the status line.
		_, _ = a.disp.ExecuteCommandLine(line)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.cmdline) == 0 {
			a.inCmd = false
			return
		}
		a.cmdline = a.cmdline[:len(a.cmdline)-1]
	case tcell.KeyRune:
		a.cmdline = append(a.cmdline, ev.Rune())
	}
}

// translateKey maps a tcell key event to a dispatcher key.
func translateKey(ev *tcell.EventKey) (dispatch.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return dispatch.Key{Kind: dispatch.KeyEscape}, true
	case tcell.KeyEnter:
		return dispatch.Key{Kind: dispatch.KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return dispatch.Key{Kind: dispatch.KeyBackspace}, true
	case tcell.KeyLeft:
		return dispatch.Key{Kind: dispatch.KeyLeft}, true
	case tcell.KeyRight:
		return dispatch.Key{Kind: dispatch.KeyRight}, true
	case tcell.KeyUp:
		return dispatch.Key{Kind: dispatch.KeyUp}, true
	case tcell.KeyDown:
		return dispatch.Key{Kind: dispatch.KeyDown}, true
	case tcell.KeyTab:
		return dispatch.RuneKey('\t'), true
	case tcell.KeyRune:
		return dispatch.RuneKey(ev.Rune()), true
	}
	return dispatch.Key{}, false
}

// wouldEdit filters text-changing keys in read-only mode. Motions and
// yanks stay available.
func wouldEdit(d *dispatch.Dispatcher, key dispatch.Key) bool {
	if key.Kind != dispatch.KeyRune {
		return false
	}
	if d.Mode() == editor.ModeInsert {
		return true
	}
	switch key.Rune {
	case 'i', 'I', 'a', 'A', 'o', 'O', 'x', 'X', 'D', 'C', 'p', 'P', 'J', '~', 'd', 'c', 's', 'S', 'r', 'R':
		return d.Pending() == ""
	}
	return false
}

// loadFile replaces the buffer content with a file's text.
func (a *App) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	text := string(data)
	a.buf.Replace(editor.NewRange(0, a.buf.Length()), text)
	a.buf.MoveCaret(0)
	a.lastSaved = text
	return nil
}

func (a *App) modified() bool {
	return a.buf.String() != a.lastSaved
}

func (a *App) currentPath() string {
	if a.current < len(a.files) {
		return a.files[a.current]
	}
	return ""
}

// Host implementation. The dispatcher calls these for the file-level
// ":" commands.

func (a *App) Write(name string, force bool) error {
	path := name
	if path == "" {
		path = a.currentPath()
	}
	if path == "" {
		return errors.New("E32: No file name")
	}
	if a.readOnly && !force {
		return errors.New("E45: 'readonly' option is set (add ! to override)")
	}
	if err := os.WriteFile(path, []byte(a.buf.String()), 0o644); err != nil {
		return fmt.Errorf("E212: Can't open file for writing: %s", path)
	}
	a.lastSaved = a.buf.String()
	return nil
}

func (a *App) WriteAll(force bool) error {
	return a.Write("", force)
}

func (a *App) Quit(force bool) error {
	if !force && a.modified() {
		return errors.New("E37: No write since last change (add ! to override)")
	}
	a.requestQuit()
	return nil
}

func (a *App) QuitAll(force bool) error {
	return a.Quit(force)
}

func (a *App) NextFile(force bool) error {
	if a.current+1 >= len(a.files) {
		return errors.New("E165: Cannot go beyond last file")
	}
	if !force && a.modified() {
		return errors.New("E37: No write since last change (add ! to override)")
	}
	a.current++
	return a.loadFile(a.files[a.current])
}

func (a *App) PrevFile(force bool) error {
	if a.current == 0 {
		return errors.New("E164: Cannot go before first file")
	}
	if !force && a.modified() {
		return errors.New("E37: No write since last change (add ! to override)")
	}
	a.current--
	return a.loadFile(a.files[a.current])
}

func (a *App) Edit(name string, force bool) error {
	if !force && a.modified() {
		return errors.New("E37: No write since last change (add ! to override)")
	}
	if name == "" {
		return a.loadFile(a.currentPath())
	}
	a.files = append(a.files[:a.current+1], name)
	a.current = len(a.files) - 1
	return a.loadFile(name)
}
