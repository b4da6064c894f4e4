package controller

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/config"
	"github.com/yildizm/SentiView/internal/logger"
)

// ErrBusy is returned by Run while another run of the same controller is in flight
var ErrBusy = errors.New("analysis already in progress")

// Analyzer is the Analysis Service as seen by the controller
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*analysis.Result, error)
}

// Labels are the trigger captions for the idle and in-flight states
type Labels struct {
	Idle string
	Busy string
}

// DefaultLabels returns the built-in trigger captions
func DefaultLabels() Labels {
	return Labels{Idle: config.DefaultIdleLabel, Busy: config.DefaultBusyLabel}
}

// Controller wires one user action to one analyze call and to the view
type Controller struct {
	analyzer Analyzer
	view     View
	labels   Labels
	log      *logger.Logger
	inFlight atomic.Bool
}

// Option customizes a Controller
type Option func(*Controller)

// WithLabels overrides the trigger captions; empty fields keep the defaults
func WithLabels(labels Labels) Option {
	return func(c *Controller) {
		if labels.Idle != "" {
			c.labels.Idle = labels.Idle
		}
		if labels.Busy != "" {
			c.labels.Busy = labels.Busy
		}
	}
}

// WithLogger sets the controller logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		c.log = l.WithComponent("controller")
	}
}

// New creates a controller bound to view
func New(analyzer Analyzer, view View, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		view:     view,
		labels:   DefaultLabels(),
		log:      logger.NewWithCallback("controller", func() bool { return false }),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Labels returns the trigger captions in use
func (c *Controller) Labels() Labels {
	return c.labels
}

// Busy reports whether a run is in flight
func (c *Controller) Busy() bool {
	return c.inFlight.Load()
}

// Run performs one analysis cycle against the bound view and returns the
// state it ended in. The only error it returns is ErrBusy; every analysis
// failure is rendered as an error state instead.
func (c *Controller) Run(ctx context.Context) (ViewState, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ViewState{}, ErrBusy
	}
	defer c.inFlight.Store(false)

	text := strings.TrimSpace(c.view.Input())
	if text == "" {
		state := ShowError(analysis.MsgEmptyInput)
		c.view.Render(state)
		c.log.Debug("rejected empty input")
		return state, nil
	}

	c.view.SetTrigger(false, c.labels.Busy)
	defer c.view.SetTrigger(true, c.labels.Idle)
	c.view.Render(Loading())

	start := time.Now()
	result, err := c.analyzer.Analyze(ctx, text)

	var state ViewState
	switch {
	case err != nil:
		state = ShowError(analysis.UserMessage(err))
		c.log.DebugWithFields("analysis failed", []logger.Field{logger.Error(err), logger.Duration(time.Since(start))})
	case result == nil:
		state = ShowError(analysis.MsgGenericFailure)
	default:
		state = ShowResult(result)
		c.log.DebugWithFields("analysis finished", []logger.Field{logger.F("sentiment", result.Sentiment), logger.Duration(time.Since(start))})
	}

	c.view.Render(state)
	return state, nil
}

// Reset returns the view to idle unless a run is in flight
func (c *Controller) Reset() bool {
	if c.Busy() {
		return false
	}
	c.view.Render(Idle())
	return true
}
