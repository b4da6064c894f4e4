package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/SentiView/internal/controller"
	"github.com/yildizm/SentiView/internal/emoji"
	"github.com/yildizm/SentiView/internal/logger"
	"github.com/yildizm/SentiView/internal/monitor"
)

// Spinner characters
var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Animation message
type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type keyMap struct {
	Analyze key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(multiline bool) keyMap {
	analyze := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze"))
	if multiline {
		analyze = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analyze"))
	}
	return keyMap{
		Analyze: analyze,
		Reset:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Analyze, k.Reset}, {k.Help, k.Quit}}
}

// Options configures the terminal UI
type Options struct {
	Labels    controller.Labels
	Multiline bool
	Endpoint  string
	Logger    *logger.Logger

	// Stats, when set, feeds the session line under the panel
	Stats *monitor.Tracker
}

// Model is the interactive sentiment panel
type Model struct {
	input  textarea.Model
	panel  *controller.Panel
	view   *programView
	ctrl   *controller.Controller
	keys   keyMap
	help   help.Model
	styles *Styles

	endpoint string
	stats    *monitor.Tracker
	width    int
	height   int
	ready    bool
	quitting bool
	pending  bool

	spinnerFrame int

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a model driving analyzer. Call Attach before the first
// analysis so view updates reach the running program.
func NewModel(analyzer controller.Analyzer, opts Options) *Model {
	labels := controller.DefaultLabels()
	if opts.Labels.Idle != "" {
		labels.Idle = opts.Labels.Idle
	}
	if opts.Labels.Busy != "" {
		labels.Busy = opts.Labels.Busy
	}

	view := newProgramView(nil)
	ctrlOpts := []controller.Option{controller.WithLabels(labels)}
	if opts.Logger != nil {
		ctrlOpts = append(ctrlOpts, controller.WithLogger(opts.Logger))
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		input:    newInput(opts.Multiline),
		panel:    controller.NewPanel(labels.Idle),
		view:     view,
		ctrl:     controller.New(analyzer, view, ctrlOpts...),
		keys:     newKeyMap(opts.Multiline),
		help:     help.New(),
		styles:   GetStyles(),
		endpoint: opts.Endpoint,
		stats:    opts.Stats,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func newInput(multiline bool) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Type or paste text to analyze..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	if multiline {
		ta.SetHeight(6)
	} else {
		ta.SetHeight(3)
		ta.KeyMap.InsertNewline.SetEnabled(false)
	}
	ta.Focus()
	return ta
}

// Attach sets the function used to deliver view updates, usually tea.Program.Send
func (m *Model) Attach(send func(tea.Msg)) {
	m.view.setSend(send)
}

// Panel exposes the current view-model
func (m *Model) Panel() *controller.Panel {
	return m.panel
}

// Init starts the cursor blink and the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.SetWidth(inputWidth(msg.Width))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			return m, m.reset()
		case key.Matches(msg, m.keys.Analyze):
			return m, m.trigger()
		}

	case renderMsg:
		m.panel.Render(msg.state)
		return m, nil

	case triggerMsg:
		m.panel.SetTrigger(msg.enabled, msg.label)
		return m, nil

	case analysisDoneMsg, resetDoneMsg:
		m.pending = false
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
		return m, tick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// trigger snapshots the input and starts one controller run
func (m *Model) trigger() tea.Cmd {
	if m.pending || !m.panel.TriggerEnabled || m.ctrl.Busy() {
		return nil
	}
	text := m.input.Value()
	m.panel.InputText = text
	m.view.snapshot(text)
	m.pending = true
	return runAnalysisCommand(m.ctx, m.ctrl)
}

// reset holds the trigger lock until the idle state is relayed, so a run
// started right after cannot be overwritten by it
func (m *Model) reset() tea.Cmd {
	if m.pending {
		return nil
	}
	m.pending = true
	return runResetCommand(m.ctrl)
}

func inputWidth(termWidth int) int {
	w := termWidth - 10
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing SentiView..."
	}

	sections := []string{
		m.renderHeader(),
		m.styles.Input.Render(m.input.View()),
		m.renderTrigger(),
	}
	if region := m.renderRegion(); region != "" {
		sections = append(sections, region)
	}
	if m.stats != nil {
		sections = append(sections, m.styles.Muted.Render(emoji.GetEmoji("statistics")+" "+m.stats.Snapshot().Summary()))
	}
	sections = append(sections, m.help.View(m.keys))

	content := m.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("sentiment") + " SentiView")
	if m.endpoint == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, m.styles.Muted.Render(m.endpoint))
}

func (m *Model) renderTrigger() string {
	if m.panel.TriggerEnabled {
		return m.styles.Trigger.Render(m.panel.TriggerLabel)
	}
	return m.styles.TriggerDisabled.Render(m.panel.TriggerLabel)
}

// renderRegion draws whichever of loading, result and error is visible
func (m *Model) renderRegion() string {
	switch {
	case m.panel.LoadingVisible:
		return m.styles.Loading.Render(spinnerChars[m.spinnerFrame] + " Waiting for the analysis service...")

	case m.panel.ResultVisible:
		badge := m.styles.Badge(emoji.ForSentiment(m.panel.BadgeClass)+" "+m.panel.BadgeText, m.panel.BadgeClass)
		return lipgloss.JoinVertical(lipgloss.Left, badge, m.styles.Raw.Render(m.panel.RawOutput))

	case m.panel.ErrorVisible:
		return m.styles.Error.Render(emoji.GetEmoji("error") + " " + m.panel.ErrorMessage)
	}
	return ""
}

// Run starts the interactive UI and blocks until the user quits
func Run(analyzer controller.Analyzer, opts Options) error {
	model := NewModel(analyzer, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.Attach(p.Send)

	_, err := p.Run()
	return err
}
