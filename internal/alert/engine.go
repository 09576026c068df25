package alert

import (
	"fmt"
	"time"

	"github.com/saturnino-fabrica-de-software/fides/internal/metrics"
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Thresholds define when the review queue counts as backlogged. Zero values
// disable the corresponding check.
type Thresholds struct {
	// MaxPending triggers when more requests are waiting for review.
	MaxPending int
	// MaxOldestPendingAge triggers when the oldest pending request has been
	// waiting longer.
	MaxOldestPendingAge time.Duration
	// Cooldown is the minimum interval between two alerts so a standing
	// backlog does not spam the channel.
	Cooldown time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxPending:          50,
		MaxOldestPendingAge: 48 * time.Hour,
		Cooldown:            time.Hour,
	}
}

// Breach describes one exceeded threshold.
type Breach struct {
	Check     string   `json:"check"`
	Value     float64  `json:"value"`
	Threshold float64  `json:"threshold"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// Engine evaluates pipeline metrics against the configured thresholds.
type Engine struct {
	thresholds      Thresholds
	lastTriggeredAt time.Time
}

func NewEngine(thresholds Thresholds) *Engine {
	return &Engine{thresholds: thresholds}
}

// Evaluate returns the breached thresholds for the given overview. An empty
// slice means the queue is healthy.
func (e *Engine) Evaluate(overview *metrics.Overview) []Breach {
	var breaches []Breach

	if max := e.thresholds.MaxPending; max > 0 && overview.Pending > max {
		severity := SeverityWarning
		if overview.Pending > max*2 {
			severity = SeverityCritical
		}
		breaches = append(breaches, Breach{
			Check:     "pending_requests",
			Value:     float64(overview.Pending),
			Threshold: float64(max),
			Severity:  severity,
			Message:   fmt.Sprintf("%d requests waiting for review (threshold %d)", overview.Pending, max),
		})
	}

	if max := e.thresholds.MaxOldestPendingAge; max > 0 {
		age := time.Duration(overview.OldestPendingAge * float64(time.Second))
		if age > max {
			severity := SeverityWarning
			if age > 2*max {
				severity = SeverityCritical
			}
			breaches = append(breaches, Breach{
				Check:     "oldest_pending_age",
				Value:     age.Seconds(),
				Threshold: max.Seconds(),
				Severity:  severity,
				Message:   fmt.Sprintf("oldest pending request has waited %s (threshold %s)", age.Round(time.Minute), max),
			})
		}
	}

	return breaches
}

// ShouldTrigger reports whether enough time has passed since the last alert.
func (e *Engine) ShouldTrigger(now time.Time) bool {
	if e.lastTriggeredAt.IsZero() {
		return true
	}
	return now.After(e.lastTriggeredAt.Add(e.thresholds.Cooldown))
}

// MarkTriggered records an alert so the cooldown applies to the next one.
func (e *Engine) MarkTriggered(now time.Time) {
	e.lastTriggeredAt = now
}
