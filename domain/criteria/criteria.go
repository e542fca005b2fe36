// Package criteria defines the ordered set of evaluation criteria.
package criteria

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Common errors for criterion operations.
var (
	ErrEmptyCriterion     = errors.New("criterion label is empty")
	ErrDuplicateCriterion = errors.New("criterion already exists")
)

// Normalize trims surrounding whitespace and converts the label to NFC,
// so that labels which render identically compare equal.
func Normalize(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}

// List is an insertion-ordered collection of unique criterion labels.
// The order is the order sliders are presented in.
type List struct {
	labels []string
}

// NewList creates a list from the given labels, skipping empty and duplicate entries.
func NewList(labels ...string) *List {
	l := &List{}
	for _, label := range labels {
		_, _ = l.Add(label)
	}
	return l
}

// Add normalizes and appends a label.
// Returns the stored label, or an error if the label is empty or already present;
// in both error cases the list is unchanged.
func (l *List) Add(label string) (string, error) {
	label = Normalize(label)
	if label == "" {
		return "", ErrEmptyCriterion
	}
	if l.Contains(label) {
		return label, ErrDuplicateCriterion
	}
	l.labels = append(l.labels, label)
	return label, nil
}

// Remove removes the first occurrence of a label.
// Returns true if the label was removed.
func (l *List) Remove(label string) bool {
	label = Normalize(label)
	i := slices.Index(l.labels, label)
	if i < 0 {
		return false
	}
	l.labels = slices.Delete(l.labels, i, i+1)
	return true
}

// Contains checks if the list contains a label.
func (l *List) Contains(label string) bool {
	return slices.Contains(l.labels, Normalize(label))
}

// Labels returns a copy of the labels in insertion order, or nil if the list is empty.
func (l *List) Labels() []string {
	if len(l.labels) == 0 {
		return nil
	}
	return slices.Clone(l.labels)
}

// Len returns the number of criteria.
func (l *List) Len() int {
	return len(l.labels)
}

// IsEmpty returns true if no criteria are defined.
func (l *List) IsEmpty() bool {
	return len(l.labels) == 0
}

// Clear removes all criteria.
func (l *List) Clear() {
	l.labels = nil
}
