// Package formsink is a small HTTP endpoint that accepts contact form
// submissions, used for local development and tests.
package formsink

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Submission is one accepted form post.
type Submission struct {
	ID         string            `json:"id"`
	Form       string            `json:"form"`
	Fields     map[string]string `json:"fields"`
	ReceivedAt time.Time         `json:"received_at"`
}

// Store keeps submissions in memory, grouped by form name.
type Store struct {
	mu    sync.RWMutex
	forms map[string][]Submission
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		forms: make(map[string][]Submission),
		now:   time.Now,
	}
}

// Add records a submission and returns it with its assigned id.
func (s *Store) Add(form string, fields map[string]string) Submission {
	sub := Submission{
		ID:         uuid.NewString(),
		Form:       form,
		Fields:     fields,
		ReceivedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.forms[form] = append(s.forms[form], sub)
	s.mu.Unlock()
	return sub
}

// List returns the submissions for form, oldest first.
func (s *Store) List(form string) []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Submission, len(s.forms[form]))
	copy(out, s.forms[form])
	return out
}

// Count returns the total number of submissions across all forms.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, subs := range s.forms {
		n += len(subs)
	}
	return n
}
