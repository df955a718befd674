// Package monitor is the host-side hook that runs on every component mount or
// update: validate, record the latest result, report it, and print auto-fix
// instructions. Scheduling belongs to the caller; the monitor has no timers.
package monitor

import (
	"fmt"
	"sync"

	"gridkit/internal/advisor"
	"gridkit/internal/logging"
	"gridkit/internal/report"
	"gridkit/internal/validator"
)

// Outcome is what one observation produced.
type Outcome struct {
	Name   string
	Result validator.Result
	Fixes  []string
}

// Monitor wires the validator to the reporting sink. Calls for the same
// component name should be serialized by the caller; different names may be
// observed concurrently.
type Monitor struct {
	validator *validator.Validator
	advisor   *advisor.Advisor
	sink      *report.Sink

	mu      sync.RWMutex
	enabled bool
}

// New creates an enabled monitor.
func New(v *validator.Validator, a *advisor.Advisor, sink *report.Sink) *Monitor {
	return &Monitor{validator: v, advisor: a, sink: sink, enabled: true}
}

// Enabled reports whether Observe does any work.
func (m *Monitor) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SetEnabled is the process-wide on/off switch.
func (m *Monitor) SetEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = on
}

// Sink returns the reporting sink.
func (m *Monitor) Sink() *report.Sink {
	return m.sink
}

// Observe validates one component and reports the result. When the monitor
// is disabled it returns an empty outcome and touches nothing.
func (m *Monitor) Observe(name string, props []validator.ObservedProperty) (Outcome, error) {
	if !m.Enabled() {
		return Outcome{Name: name}, nil
	}

	res := m.validator.Validate(props)
	out := Outcome{Name: name, Result: res, Fixes: m.advisor.Explain(res)}

	m.sink.Record(name, res)
	logging.ValidatorDebug("%s: %d errors, %d warnings, %d suggestions",
		name, len(res.Errors), len(res.Warnings), len(res.Suggestions))

	if err := m.sink.Emit(name, res); err != nil {
		return out, fmt.Errorf("observe %s: %w", name, err)
	}
	if err := m.sink.EmitFixes(name, out.Fixes); err != nil {
		return out, fmt.Errorf("observe %s: %w", name, err)
	}
	return out, nil
}

// ObserveAll observes components in order and stops at the first reporting error.
func (m *Monitor) ObserveAll(components []validator.Component) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(components))
	for _, c := range components {
		o, err := m.Observe(c.Name, c.Properties)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

// Failed reports whether any outcome carries a compliance error.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Result.HasErrors() {
			return true
		}
	}
	return false
}
