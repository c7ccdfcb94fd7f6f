package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/jask/tripboard/internal/errors"
	"github.com/jask/tripboard/internal/keys"
	"github.com/jask/tripboard/internal/logging"
	"github.com/jask/tripboard/internal/presenter"
	"github.com/jask/tripboard/internal/render"
	"github.com/jask/tripboard/internal/store"
	"github.com/jask/tripboard/internal/view"
)

// Store is what the app needs from the itinerary store.
type Store interface {
	presenter.PointStore
	Summary() store.Summary
	Reload(ctx context.Context) error
}

// KeyMap holds the list-level bindings.
type KeyMap struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Reload key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new point")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

// App is the Bubble Tea model: the trip banner above the point list.
type App struct {
	ctx    context.Context
	store  Store
	board  *presenter.Board
	info   *view.InfoView
	keys   KeyMap
	log    *logrus.Entry
	cursor int
	status string
	failed bool
}

func New(ctx context.Context, st Store, format view.Format, log *logrus.Entry) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		ctx:   ctx,
		store: st,
		info:  view.NewInfoView(st.Summary(), format),
		keys:  DefaultKeyMap(),
		log:   log,
	}
	a.board = presenter.NewBoard(ctx, presenter.BoardParams{
		Container: render.NewContainer(),
		Store:     st,
		Keys:      keys.NewDispatcher(),
		Format:    format,
		Log:       log.WithField("component", "presenter"),
		OnChange:  a.refreshInfo,
	})
	if err := a.board.Init(); err != nil {
		return nil, fmt.Errorf("render itinerary: %w", err)
	}
	return a, nil
}

// Board exposes the list coordinator.
func (a *App) Board() *presenter.Board { return a.board }

func (a *App) Init() tea.Cmd {
	n := len(a.board.Presenters())
	return func() tea.Msg {
		return statusMsg(fmt.Sprintf("%d points loaded", n))
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case statusMsg:
		a.setStatus(string(m), nil)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	// screen-wide listeners (escape) run ahead of the focused item
	if a.board.Keys().Dispatch(m) {
		a.setStatus("", nil)
		a.syncCursor()
		return a, nil
	}

	if p := a.board.Editing(); p != nil {
		if _, err := p.HandleKey(m); err != nil {
			a.setStatus("", err)
		} else if p.Mode() == presenter.ModeViewing {
			a.setStatus("", nil)
		}
		a.syncCursor()
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.board.Presenters())-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.New):
		if err := a.board.CreatePoint(); err != nil {
			a.setStatus("", err)
		} else {
			a.setStatus("new point", nil)
		}
	case key.Matches(m, a.keys.Reload):
		a.reload()
	default:
		if p := a.focused(); p != nil {
			if _, err := p.HandleKey(m); err != nil {
				a.setStatus("", err)
			}
		}
	}
	a.syncCursor()
	return a, nil
}

func (a *App) reload() {
	if err := a.store.Reload(a.ctx); err != nil {
		a.setStatus("", err)
		return
	}
	if err := a.board.Init(); err != nil {
		a.setStatus("", err)
		return
	}
	a.refreshInfo()
	a.setStatus("reloaded", nil)
}

func (a *App) focused() *presenter.PointPresenter {
	ps := a.board.Presenters()
	if a.cursor < 0 || a.cursor >= len(ps) {
		return nil
	}
	return ps[a.cursor]
}

// syncCursor keeps the cursor on the open editor and inside the list.
func (a *App) syncCursor() {
	ps := a.board.Presenters()
	for i, p := range ps {
		if p.Mode() == presenter.ModeEditing {
			a.cursor = i
			return
		}
	}
	if a.cursor >= len(ps) {
		a.cursor = len(ps) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) refreshInfo() {
	a.info.Update(a.store.Summary())
}

func (a *App) setStatus(s string, err error) {
	a.status, a.failed = s, err != nil
	if err == nil {
		return
	}
	a.status = err.Error()
	code := errors.GetCode(err)
	entry := a.log.WithError(err).WithField("code", code)
	if code == errors.ErrCodeInternal {
		entry.Error("action failed")
		return
	}
	entry.Warn("action failed")
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.info.View())
	b.WriteString("\n")

	children := a.board.Container().Children()
	if len(children) == 0 {
		b.WriteString(mutedStyle.Render("  no points yet"))
		b.WriteString("\n")
	}
	for i, child := range children {
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("▶ ")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker, child.View()))
		b.WriteString("\n")
	}

	if a.board.Editing() == nil {
		b.WriteString(helpStyle.Render("↑/↓ move · enter edit · f favorite · n new · r reload · q quit"))
		b.WriteString("\n")
	}
	if a.status != "" {
		style := statusStyle
		if a.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(a.status))
	}
	return b.String()
}

type statusMsg string

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)
