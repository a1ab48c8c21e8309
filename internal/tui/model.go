// Package tui provides the Bubble Tea reaction trainer interface.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/keymap"
	"github.com/verte-zerg/mindsight/internal/model"
	"github.com/verte-zerg/mindsight/internal/render"
	"github.com/verte-zerg/mindsight/internal/selection"
	"github.com/verte-zerg/mindsight/internal/stats"
	"github.com/verte-zerg/mindsight/internal/trial"
)

type screen int

const (
	screenCategory screen = iota
	screenItems
	screenKeys
	screenTrial
	screenSummary
)

const (
	defaultFPS         = 60
	defaultWidth       = 80
	defaultHeight      = 24
	defaultCurveWindow = 5
	letterColumns      = 3
	columnGap          = 4
	hintPaceLen        = 12
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// frameMsg drives the trial loop. Messages from an earlier session are ignored.
type frameMsg struct {
	session string
}

// Option customizes a Model.
type Option func(*Model)

// WithSelection skips the menus and opens the key assignment screen for sel.
func WithSelection(sel selection.Selection) Option {
	return func(m *Model) {
		m.preset = &sel
	}
}

// WithCategory skips the category menu and opens the item menu of c.
func WithCategory(c catalog.Category) Option {
	return func(m *Model) {
		m.selector = selection.New(c)
		m.screen = screenItems
	}
}

// WithClock sets the clock used to time responses.
func WithClock(c trial.Clock) Option {
	return func(m *Model) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithSource sets the random source used to pick stimuli.
func WithSource(src rand.Source) Option {
	return func(m *Model) {
		m.source = src
	}
}

// WithLogger sets the structured logger for session events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model implements the Bubble Tea reaction trainer UI.
type Model struct {
	config model.Config
	logger *zap.Logger
	clock  trial.Clock
	source rand.Source
	preset *selection.Selection

	keys menuKeys
	help help.Model

	width  int
	height int
	screen screen

	categoryCursor selection.Cursor
	selector       *selection.Selector
	chosen         selection.Selection
	binding        keymap.Binding
	errMsg         string

	session    *Session
	events     []trial.Event
	lastResult trial.Result

	final       model.Statistics
	summaryView viewport.Model
	curveWindow int
	interrupted bool
}

// NewModel constructs the game UI. It fails only when a preselected
// selection cannot be bound to the configured keys.
func NewModel(cfg model.Config, opts ...Option) (*Model, error) {
	if cfg.Keys[0] == "" && cfg.Keys[1] == "" {
		cfg.Keys = keymap.DefaultKeys
	}
	if cfg.SkipKey == "" {
		cfg.SkipKey = keymap.DefaultSkipKey
	}
	if cfg.QuitKey == "" {
		cfg.QuitKey = keymap.DefaultQuitKey
	}
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}
	m := &Model{
		config:         cfg,
		logger:         zap.NewNop(),
		clock:          trial.SystemClock(),
		keys:           defaultMenuKeys(),
		help:           help.New(),
		width:          defaultWidth,
		height:         defaultHeight,
		categoryCursor: selection.NewCursor(len(catalog.Categories())),
		summaryView:    viewport.New(defaultWidth, defaultHeight-2),
		curveWindow:    defaultCurveWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.source = rand.NewSource(seed)
	}
	if m.preset != nil {
		sel := *m.preset
		binding, err := m.bind(sel)
		if err != nil {
			return nil, err
		}
		m.selector = selection.New(sel.Category)
		m.chosen = sel
		m.binding = binding
		m.screen = screenKeys
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Interrupted returns the statistics of a trial run aborted with ctrl+c.
func (m *Model) Interrupted() (model.Statistics, bool) {
	return m.final.Clone(), m.interrupted
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenSummary {
			m.refreshSummary()
		}
		return m, nil
	case frameMsg:
		return m.handleFrame(msg)
	case tea.KeyMsg:
		if m.screen == screenTrial {
			return m.updateTrial(msg)
		}
		if key.Matches(msg, m.keys.ForceQ) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenCategory:
			return m.updateCategory(msg)
		case screenItems:
			return m.updateItems(msg)
		case screenKeys:
			return m.updateKeys(msg)
		case screenSummary:
			return m.updateSummary(msg)
		}
	}
	return m, nil
}

func (m *Model) updateCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.categoryCursor.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.categoryCursor.Move(1)
	case key.Matches(msg, m.keys.Choose):
		c := catalog.Categories()[m.categoryCursor.Index()]
		m.selector = selection.New(c)
		m.errMsg = ""
		m.screen = screenItems
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selector.Up()
	case key.Matches(msg, m.keys.Down):
		m.selector.Down()
	case key.Matches(msg, m.keys.Toggle):
		m.selector.Toggle()
		m.errMsg = ""
	case key.Matches(msg, m.keys.Confirm):
		sel, err := m.selector.Confirm()
		if err != nil {
			m.errMsg = "Select exactly two items."
			return m, nil
		}
		binding, err := m.bind(sel)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.chosen = sel
		m.binding = binding
		m.errMsg = ""
		m.screen = screenKeys
	case key.Matches(msg, m.keys.Back):
		m.errMsg = ""
		m.screen = screenCategory
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Start):
		return m, m.startSession()
	case key.Matches(msg, m.keys.Back):
		m.screen = screenItems
	}
	return m, nil
}

func (m *Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Continue):
		m.session = nil
		m.selector = nil
		m.errMsg = ""
		m.screen = screenCategory
		return m, nil
	case key.Matches(msg, m.keys.Window):
		if msg.String() == "-" {
			m.curveWindow = prevCurveWindow(m.curveWindow)
		} else {
			m.curveWindow = nextCurveWindow(m.curveWindow)
		}
		m.refreshSummary()
		return m, nil
	}
	var cmd tea.Cmd
	m.summaryView, cmd = m.summaryView.Update(msg)
	return m, cmd
}

// updateTrial queues keys, stamped with their arrival time, for the next
// frame. ctrl+c closes the run at once.
func (m *Model) updateTrial(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQ) {
		m.events = append(m.events, trial.Close())
		m.flushEvents()
		m.interrupted = true
		return m, tea.Quit
	}
	m.events = append(m.events, trial.KeyDownAt(msg.String(), m.clock.Now()))
	return m, nil
}

func (m *Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenTrial || m.session == nil || msg.session != m.session.ID {
		return m, nil
	}
	m.flushEvents()
	if m.screen != screenTrial {
		return m, nil
	}
	return m, m.frameCmd()
}

func (m *Model) bind(sel selection.Selection) (keymap.Binding, error) {
	return keymap.New(m.config.Keys, sel, m.config.SkipKey, m.config.QuitKey)
}

func (m *Model) startSession() tea.Cmd {
	m.session = newSession(m.chosen, m.binding, sessionConfig{
		skipKey: m.config.SkipKey,
		quitKey: m.config.QuitKey,
		clock:   m.clock,
		source:  m.source,
	})
	m.events = nil
	m.lastResult = trial.Result{}
	m.final = model.Statistics{}
	m.interrupted = false
	m.session.loop.Tick(nil)
	m.screen = screenTrial
	names := m.chosen.Names()
	m.logger.Info("session started",
		zap.String("session", m.session.ID),
		zap.String("category", m.chosen.Category.String()),
		zap.Strings("items", names[:]),
		zap.Strings("keys", m.keyNames()),
	)
	return m.frameCmd()
}

func (m *Model) frameCmd() tea.Cmd {
	id := m.session.ID
	return tea.Tick(time.Second/time.Duration(m.config.FPS), func(time.Time) tea.Msg {
		return frameMsg{session: id}
	})
}

// flushEvents hands the queued keys to the trial loop as one batch.
func (m *Model) flushEvents() {
	events := m.events
	m.events = nil
	loop := m.session.loop
	for _, res := range loop.Tick(events) {
		m.logResult(res)
		if res.Outcome != trial.OutcomeExited {
			m.lastResult = res
		}
	}
	if loop.Phase() == trial.PhaseExited {
		m.finishSession()
	}
}

func (m *Model) finishSession() {
	m.final = m.session.loop.Stats()
	m.logger.Info("session finished",
		zap.String("session", m.session.ID),
		zap.Int("correct", m.final.Correct),
		zap.Int("wrong", m.final.Wrong),
		zap.Int("skipped", m.final.Skipped),
		zap.Int("total", m.final.TotalResponded),
		zap.Duration("duration", m.clock.Now().Sub(m.session.StartedAt)),
	)
	m.screen = screenSummary
	m.refreshSummary()
	m.summaryView.GotoTop()
}

func (m *Model) logResult(res trial.Result) {
	if res.Outcome == trial.OutcomeExited {
		m.logger.Debug("trial run exited", zap.String("session", m.session.ID))
		return
	}
	m.logger.Debug("trial",
		zap.String("session", m.session.ID),
		zap.Int("seq", res.Trial.Seq),
		zap.String("item", res.Trial.Item.Name),
		zap.String("guess", res.Guess.Name),
		zap.String("outcome", res.Outcome.String()),
		zap.Duration("elapsed", res.Elapsed),
	)
}

func (m *Model) keyNames() []string {
	keys := m.binding.Keys()
	return keys[:]
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenTrial:
		return m.renderTrial()
	case screenSummary:
		return m.renderSummaryScreen()
	case screenItems:
		return m.renderMenu(m.renderItemsMenu())
	case screenKeys:
		return m.renderMenu(m.renderKeysMenu())
	default:
		return m.renderMenu(m.renderCategoryMenu())
	}
}

func (m *Model) renderMenu(content string) string {
	footer := m.help.ShortHelpView(m.keys.helpFor(m.screen))
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderCategoryMenu() string {
	lines := []string{titleStyle.Render("Select a Category"), ""}
	for i, c := range catalog.Categories() {
		if i == m.categoryCursor.Index() {
			lines = append(lines, cursorStyle.Render("> "+c.Title()))
		} else {
			lines = append(lines, itemStyle.Render("  "+c.Title()))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderItemsMenu() string {
	c := m.selector.Category()
	opts := m.selector.Options()
	cells := make([]styledCell, len(opts))
	for i, item := range opts {
		mark := "[ ]"
		if m.selector.IsSelected(i) {
			mark = "[X]"
		}
		style := itemStyle
		if i == m.selector.Cursor() {
			style = cursorStyle
		}
		cell := newStyledCell(mark+" "+item.Label(), style)
		if swatch := render.Swatch(c, item); swatch != "" {
			cell.s += " " + swatch
			cell.width += 1 + lipgloss.Width(swatch)
		}
		cells[i] = cell
	}
	cols := 1
	if c == catalog.Letters {
		cols = letterColumns
	}
	picked := m.selector.Selected()
	labels := make([]string, len(picked))
	for i, item := range picked {
		labels[i] = item.Label()
	}
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Select 2 %s (Space to confirm)", c.Title())),
		"",
		renderColumns(cells, cols, columnGap),
		"",
		selectedStyle.Render("Selected: " + strings.Join(labels, ", ")),
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderKeysMenu() string {
	lines := []string{titleStyle.Render("Key Assignments"), ""}
	keys := m.binding.Keys()
	items := m.binding.Items()
	for i := range keys {
		lines = append(lines, itemStyle.Render(fmt.Sprintf("%s: %s", keymap.DisplayName(keys[i]), items[i].Label())))
	}
	lines = append(lines,
		"",
		selectedStyle.Render("Press Space to start"),
		footerStyle.Render(fmt.Sprintf("%s skips, %s ends the run",
			keymap.DisplayName(m.config.SkipKey), keymap.DisplayName(m.config.QuitKey))),
	)
	return strings.Join(lines, "\n")
}

func (m *Model) renderTrial() string {
	if m.session == nil {
		return ""
	}
	current, ok := m.session.loop.Current()
	if !ok {
		return fitLines("", m.width, m.height)
	}
	stimulusHeight := m.height
	footer := ""
	if m.config.Hints && m.height >= 3 {
		stimulusHeight--
		footer = lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderHints(current))
	}
	view := m.session.Renderer.RenderStimulus(current.Item, m.width, stimulusHeight)
	if footer != "" {
		view += "\n" + footer
	}
	return view
}

// renderHints builds the optional one-line footer shown during a run.
func (m *Model) renderHints(current trial.Trial) string {
	keys := m.binding.Keys()
	items := m.binding.Items()
	segments := make([]string, 0, len(keys)+4)
	for i := range keys {
		segments = append(segments, fmt.Sprintf("%s %s", keymap.DisplayName(keys[i]), items[i].Label()))
	}
	segments = append(segments,
		fmt.Sprintf("%s skip", keymap.DisplayName(m.config.SkipKey)),
		fmt.Sprintf("%s finish", keymap.DisplayName(m.config.QuitKey)),
		fmt.Sprintf("Trial %d", current.Seq),
	)
	if last := m.lastResult; last.Outcome != trial.OutcomeNone {
		if last.Outcome == trial.OutcomeSkipped {
			segments = append(segments, "Last skipped")
		} else {
			segments = append(segments, fmt.Sprintf("Last %s %.2fs", last.Outcome, last.Elapsed.Seconds()))
		}
	}
	if times := m.session.loop.Stats().ResponseTimes; len(times) > 1 {
		if len(times) > hintPaceLen {
			times = times[len(times)-hintPaceLen:]
		}
		segments = append(segments, "Pace ["+stats.Sparkline(stats.ResponseSeconds(times))+"]")
	}
	return footerStyle.Render(truncateLine(strings.Join(segments, "  "), m.width))
}
