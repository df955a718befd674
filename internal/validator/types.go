package validator

import "github.com/google/go-cmp/cmp"

// Box is the rendered size of an element in pixels.
type Box struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ObservedProperty is one runtime sample produced by an observation adapter.
// Value holds the raw CSS-like string; Number, when set, is a pre-parsed
// magnitude that takes precedence over Value.
type ObservedProperty struct {
	Property   string   `json:"property" yaml:"property"`
	Value      string   `json:"value,omitempty" yaml:"value,omitempty"`
	Number     *float64 `json:"number,omitempty" yaml:"number,omitempty"`
	Element    string   `json:"element,omitempty" yaml:"element,omitempty"`
	Role       string   `json:"role,omitempty" yaml:"role,omitempty"`
	Box        *Box     `json:"box,omitempty" yaml:"box,omitempty"`
	Foreground string   `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background string   `json:"background,omitempty" yaml:"background,omitempty"`
	LargeText  bool     `json:"large_text,omitempty" yaml:"large_text,omitempty"`
}

// Num returns a pointer to v, for building ObservedProperty literals.
func Num(v float64) *float64 {
	return &v
}

// Result holds the messages of one validation pass, bucketed by severity.
type Result struct {
	Errors      []string `json:"errors" yaml:"errors"`
	Warnings    []string `json:"warnings" yaml:"warnings"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// Equal compares two results structurally; nil and empty buckets are equal.
func (r Result) Equal(o Result) bool {
	return cmp.Equal(r.normalized(), o.normalized())
}

func (r Result) normalized() Result {
	n := Result{
		Errors:      r.Errors,
		Warnings:    r.Warnings,
		Suggestions: r.Suggestions,
	}
	if n.Errors == nil {
		n.Errors = []string{}
	}
	if n.Warnings == nil {
		n.Warnings = []string{}
	}
	if n.Suggestions == nil {
		n.Suggestions = []string{}
	}
	return n
}

// Empty reports whether the result carries no messages at all.
func (r Result) Empty() bool {
	return r.Count() == 0
}

// HasErrors reports whether any hard rule was violated.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Count returns the total number of messages.
func (r Result) Count() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Suggestions)
}

// Merge appends o's messages after r's, bucket by bucket.
func (r Result) Merge(o Result) Result {
	return Result{
		Errors:      append(append([]string(nil), r.Errors...), o.Errors...),
		Warnings:    append(append([]string(nil), r.Warnings...), o.Warnings...),
		Suggestions: append(append([]string(nil), r.Suggestions...), o.Suggestions...),
	}
}

// Component groups the observations taken from one named component instance.
type Component struct {
	Name       string             `json:"name" yaml:"name"`
	Properties []ObservedProperty `json:"properties" yaml:"properties"`
}
