package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-defender/internal/core"
	"github.com/vovakirdan/space-defender/internal/engine"
	"github.com/vovakirdan/space-defender/internal/storage"
)

// fpsSmoothing is the weight of the newest sample in the FPS moving average.
const fpsSmoothing = 0.1

// startErrMsg reports that the engine could not be started.
type startErrMsg struct{ err error }

// ModelOptions configures a Model.
type ModelOptions struct {
	Player string // Recorded with each round; "local" when empty
	Mode   string // play or serve
	Logger *log.Logger
}

// Model is the Bubble Tea model for one defender session.
// The engine owns the simulation; the model only dispatches input, integrates
// frames on each tick and draws the returned snapshot.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	store  *storage.Store
	logger *log.Logger
	opts   ModelOptions

	screen *core.Screen
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	snap       engine.Snapshot
	lastTick   time.Time
	fps        float64
	highScore  int
	savedRound int // Round number whose result was recorded
	quitting   bool
	err        error
}

// NewModel creates a model that drives eng. store may be nil.
func NewModel(ctx context.Context, eng *engine.Engine, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.Mode == "" {
		opts.Mode = "play"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		ctx:    ctx,
		engine: eng,
		store:  store,
		logger: logger,
		opts:   opts,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		snap:   eng.Snapshot(),
	}
	m.help.Width = cfg.ScreenW

	if store != nil {
		if high, err := store.HighScore(); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init starts the engine workers and the frame ticker.
func (m Model) Init() tea.Cmd {
	eng, ctx := m.engine, m.ctx
	start := func() tea.Msg {
		if err := eng.Start(ctx); err != nil {
			return startErrMsg{err: err}
		}
		return nil
	}
	return tea.Batch(start, tickCmd(m.config.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case startErrMsg:
		m.logger.Error("engine failed to start", "error", msg.err)
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.closeRound()
		// Quit joins every worker before the program exits.
		m.engine.Dispatch(core.ActionQuit)
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		m.closeRound()
	}

	m.engine.Dispatch(action)
	return m, nil
}

// handleTick integrates one frame and records the round once it ends.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	select {
	case <-m.engine.Done():
		// The session context ended underneath us.
		m.quitting = true
		return m, tea.Quit
	default:
	}

	dt := frameInterval(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.snap = m.engine.Frame(dt)
	if secs := dt.Seconds(); secs > 0 {
		sample := 1 / secs
		if m.fps == 0 {
			m.fps = sample
		} else {
			m.fps += fpsSmoothing * (sample - m.fps)
		}
	}

	m.recordFinished()

	return m, tickCmd(m.config.TickRate)
}

// recordFinished stores the current round once it has ended.
func (m *Model) recordFinished() {
	if !m.snap.Terminal() || m.savedRound == m.snap.Round {
		return
	}
	m.savedRound = m.snap.Round
	outcome := storage.OutcomeLost
	if m.snap.State() == engine.RoundWon {
		outcome = storage.OutcomeWon
	}
	m.record(outcome)
}

// closeRound records the current round before it is restarted or quit.
// A round still in play with a non-zero score is stored as abandoned.
func (m *Model) closeRound() {
	m.snap = m.engine.Snapshot()
	if m.snap.Terminal() {
		m.recordFinished()
		return
	}
	if m.snap.Score == 0 || m.savedRound == m.snap.Round {
		return
	}
	m.savedRound = m.snap.Round
	m.record(storage.OutcomeAbandoned)
}

func (m *Model) record(outcome string) {
	m.logger.Info("round finished",
		"player", m.opts.Player,
		"outcome", outcome,
		"score", m.snap.Score,
		"round", m.snap.Round,
		"elapsed", m.snap.Elapsed,
	)
	m.highScore = max(m.highScore, m.snap.Score)

	if m.store == nil {
		return
	}
	_, err := m.store.SaveRound(storage.RoundResult{
		Player:   m.opts.Player,
		Mode:     m.opts.Mode,
		Score:    m.snap.Score,
		Target:   m.snap.Target,
		Outcome:  outcome,
		Duration: m.snap.Elapsed,
	})
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
	}
}

// Snapshot returns the most recently drawn snapshot.
func (m Model) Snapshot() engine.Snapshot {
	return m.snap
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpView := helpStyle.Render(m.help.View(m.keys))

	// The field gets whatever the help view leaves over.
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-lipgloss.Height(helpView), 0))
	DrawSnapshot(m.screen, m.snap, HUD{FPS: m.fps, HighScore: m.highScore})

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

// Run starts the Bubble Tea program for a local session and blocks until it exits.
// The engine is shut down before Run returns.
func Run(ctx context.Context, eng *engine.Engine, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) error {
	defer eng.Shutdown()

	model := NewModel(ctx, eng, store, cfg, opts)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
