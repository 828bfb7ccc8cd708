// Package session owns the process-wide "one document at a time" state: the
// current document's retrieval engine plus the accumulated conversation.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/VyomThaker-2154/Documind-ai/internal/chat"
	"github.com/VyomThaker-2154/Documind-ai/internal/document"
)

// ErrNotReady is returned when a question arrives before any document has
// been processed.
var ErrNotReady = errors.New("no PDF has been processed yet, upload a PDF first")

// Snapshot is the immutable per-document state. A new upload builds a fresh
// snapshot off to the side and swaps it in; an in-flight question keeps
// answering against the snapshot it started with.
type Snapshot struct {
	Document document.Extracted
	Engine   *chat.Engine
}

// Session binds the current snapshot to its conversation history.
type Session struct {
	mu      sync.RWMutex
	current *Snapshot
	history []chat.Turn
}

func New() *Session {
	return &Session{}
}

// Replace swaps in a new document snapshot and clears the conversation.
func (s *Session) Replace(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.history = nil
}

// Ready reports whether a document has been processed.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Current returns the live snapshot, or nil.
func (s *Session) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// History returns a copy of the conversation so far, in arrival order.
func (s *Session) History() []chat.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Ask answers a question against the current snapshot and, on success,
// appends the turn to the history. If the snapshot was superseded by a
// re-upload while the question was in flight, the stale turn is discarded
// rather than appended to the new document's conversation.
func (s *Session) Ask(ctx context.Context, question string) (chat.Answer, error) {
	s.mu.RLock()
	snap := s.current
	history := make([]chat.Turn, len(s.history))
	copy(history, s.history)
	s.mu.RUnlock()

	if snap == nil {
		return chat.Answer{}, ErrNotReady
	}

	answer, err := snap.Engine.Ask(ctx, question, history)
	if err != nil {
		return chat.Answer{}, err
	}

	s.mu.Lock()
	if s.current == snap {
		s.history = append(s.history, chat.Turn{Question: question, Answer: answer.Answer})
	}
	s.mu.Unlock()

	return answer, nil
}
