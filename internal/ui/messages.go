package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/SentiView/internal/controller"
)

// renderMsg carries a controller Render call to the event loop
type renderMsg struct {
	state controller.ViewState
}

// triggerMsg carries a controller SetTrigger call to the event loop
type triggerMsg struct {
	enabled bool
	label   string
}

// analysisDoneMsg is returned by the command once Controller.Run is over
type analysisDoneMsg struct {
	state controller.ViewState
}

// resetDoneMsg is returned by the reset command once the idle state was relayed
type resetDoneMsg struct{}

// programView implements controller.View for a running program. Render and
// SetTrigger are forwarded as messages so the panel is only touched by Update.
type programView struct {
	mu    sync.Mutex
	input string
	send  func(tea.Msg)
}

func newProgramView(send func(tea.Msg)) *programView {
	return &programView{send: send}
}

// snapshot fixes the text the next run will read
func (v *programView) snapshot(text string) {
	v.mu.Lock()
	v.input = text
	v.mu.Unlock()
}

func (v *programView) setSend(send func(tea.Msg)) {
	v.mu.Lock()
	v.send = send
	v.mu.Unlock()
}

// Input implements controller.View
func (v *programView) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

// Render implements controller.View
func (v *programView) Render(state controller.ViewState) {
	v.dispatch(renderMsg{state: state})
}

// SetTrigger implements controller.View
func (v *programView) SetTrigger(enabled bool, label string) {
	v.dispatch(triggerMsg{enabled: enabled, label: label})
}

func (v *programView) dispatch(msg tea.Msg) {
	v.mu.Lock()
	send := v.send
	v.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// runResetCommand clears the view off the event loop, since the relay blocks on Send
func runResetCommand(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Reset()
		return resetDoneMsg{}
	}
}

// runAnalysisCommand runs one controller cycle off the event loop
func runAnalysisCommand(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		state, err := ctrl.Run(ctx)
		if errors.Is(err, controller.ErrBusy) {
			// Another run owns the view; only release the trigger lock.
			return analysisDoneMsg{}
		}
		return analysisDoneMsg{state: state}
	}
}
