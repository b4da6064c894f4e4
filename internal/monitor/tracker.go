package monitor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/controller"
)

// Tracker wraps an analyzer and keeps per-session statistics
type Tracker struct {
	next     controller.Analyzer
	requests *Counter
	failures *Counter
	latency  *Timer

	mu         sync.Mutex
	sentiments map[string]int64
	lastError  string
}

// NewTracker creates a tracker in front of next
func NewTracker(next controller.Analyzer) *Tracker {
	return &Tracker{
		next:       next,
		requests:   NewCounter(),
		failures:   NewCounter(),
		latency:    NewTimer(),
		sentiments: make(map[string]int64),
	}
}

// Analyze implements controller.Analyzer
func (t *Tracker) Analyze(ctx context.Context, text string) (*analysis.Result, error) {
	start := time.Now()
	result, err := t.next.Analyze(ctx, text)
	t.latency.Record(time.Since(start))
	t.requests.Inc()

	if err != nil || result == nil {
		t.failures.Inc()
		msg := analysis.MsgGenericFailure
		if err != nil {
			msg = analysis.UserMessage(err)
		}
		t.mu.Lock()
		t.lastError = msg
		t.mu.Unlock()
		return result, err
	}

	t.mu.Lock()
	t.sentiments[result.Sentiment]++
	t.mu.Unlock()
	return result, nil
}

// Snapshot is a point-in-time copy of the statistics
type Snapshot struct {
	Requests   int64            `json:"requests"`
	Failures   int64            `json:"failures"`
	Sentiments map[string]int64 `json:"sentiments"`
	LastError  string           `json:"last_error,omitempty"`
	AvgLatency time.Duration    `json:"avg_latency"`
	MinLatency time.Duration    `json:"min_latency"`
	MaxLatency time.Duration    `json:"max_latency"`
}

// Snapshot returns the current statistics
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	sentiments := make(map[string]int64, len(t.sentiments))
	for k, v := range t.sentiments {
		sentiments[k] = v
	}
	lastError := t.lastError
	t.mu.Unlock()

	return Snapshot{
		Requests:   t.requests.Get(),
		Failures:   t.failures.Get(),
		Sentiments: sentiments,
		LastError:  lastError,
		AvgLatency: t.latency.AvgTime(),
		MinLatency: t.latency.MinTime(),
		MaxLatency: t.latency.MaxTime(),
	}
}

// Summary renders the snapshot as one line, sentiments sorted by count then name
func (s Snapshot) Summary() string {
	if s.Requests == 0 {
		return "no analyses yet"
	}

	labels := make([]string, 0, len(s.Sentiments))
	for label := range s.Sentiments {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if s.Sentiments[labels[i]] != s.Sentiments[labels[j]] {
			return s.Sentiments[labels[i]] > s.Sentiments[labels[j]]
		}
		return labels[i] < labels[j]
	})

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%d %s", s.Sentiments[label], label))
	}

	noun := "analyses"
	if s.Requests == 1 {
		noun = "analysis"
	}
	line := fmt.Sprintf("%d %s", s.Requests, noun)
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	if s.Failures > 0 {
		line += fmt.Sprintf("; %d failed", s.Failures)
	}
	return line + fmt.Sprintf("; avg %s", s.AvgLatency.Round(time.Millisecond))
}
