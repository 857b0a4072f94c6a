// Package session holds the per-visitor plan state: the last generated report
// and the follow-up transcript. State lives for the process lifetime only.
package session

import "sync"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session tracks at most one report and one active transcript. Storing a new
// report discards the previous transcript so follow-ups always refer to the
// current plan.
type Session struct {
	mu         sync.Mutex
	report     string
	transcript []Message
}

func New() *Session {
	return &Session{}
}

// StoreReport replaces the current report with the rundown and full report
// joined by a blank line (just the report when the rundown is empty) and
// clears the transcript.
func (s *Session) StoreReport(rundown, report string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rundown != "" {
		s.report = rundown + "\n\n" + report
	} else {
		s.report = report
	}
	s.transcript = nil
}

// AppendTurn adds one entry to the transcript.
func (s *Session) AppendTurn(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, Message{Role: role, Content: content})
}

// CurrentReport returns the stored report, empty when none was generated yet.
func (s *Session) CurrentReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Messages returns a copy of the transcript in insertion order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}
