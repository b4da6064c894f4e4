package controller

// View is the bound view-model the controller drives. Implementations must
// tolerate being called from the goroutine running Controller.Run.
type View interface {
	// Input returns the current content of the text input
	Input() string

	// Render switches the visible region to state
	Render(state ViewState)

	// SetTrigger updates the trigger control
	SetTrigger(enabled bool, label string)
}

// Panel is an in-memory view-model with one field per view region. It is the
// reference View used by the non-interactive commands, the terminal UI state
// and tests.
type Panel struct {
	InputText string

	TriggerEnabled bool
	TriggerLabel   string

	LoadingVisible bool

	ResultVisible bool
	BadgeText     string
	BadgeClass    string
	RawOutput     string

	ErrorVisible bool
	ErrorMessage string

	State ViewState
}

// NewPanel creates an idle panel whose trigger carries idleLabel
func NewPanel(idleLabel string) *Panel {
	p := &Panel{
		TriggerEnabled: true,
		TriggerLabel:   idleLabel,
	}
	p.Render(Idle())
	return p
}

// Input implements View
func (p *Panel) Input() string {
	return p.InputText
}

// SetTrigger implements View
func (p *Panel) SetTrigger(enabled bool, label string) {
	p.TriggerEnabled = enabled
	p.TriggerLabel = label
}

// Render implements View. Every region is reset before the one selected by
// state is shown, so at most one of loading, result and error is visible.
func (p *Panel) Render(state ViewState) {
	p.LoadingVisible = false
	p.ResultVisible = false
	p.ErrorVisible = false

	switch state.Kind {
	case KindLoading:
		p.LoadingVisible = true
	case KindResult:
		if state.Result == nil {
			p.State = Idle()
			return
		}
		p.BadgeText = state.Result.BadgeText()
		p.BadgeClass = state.Result.BadgeClass()
		p.RawOutput = state.Result.Pretty()
		p.ResultVisible = true
	case KindError:
		p.ErrorMessage = state.Message
		p.ErrorVisible = true
	}

	p.State = state
}

// VisibleRegions counts how many of loading, result and error are shown
func (p *Panel) VisibleRegions() int {
	n := 0
	for _, visible := range []bool{p.LoadingVisible, p.ResultVisible, p.ErrorVisible} {
		if visible {
			n++
		}
	}
	return n
}
