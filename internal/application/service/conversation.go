package service

import (
	"sync"

	"leave-agent/internal/domain/entity"
)

// ConversationStore checkpoints message history per conversation thread, in
// memory only. It is an explicit object owned by the caller, so independent
// conversations (or tests) never share ambient state. Nothing survives the
// process.
type ConversationStore struct {
	mu      sync.RWMutex
	threads map[string][]entity.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		threads: make(map[string][]entity.Message),
	}
}

// History returns a copy of the thread's checkpointed messages. An unknown
// thread yields an empty history, not an error.
func (s *ConversationStore) History(threadID string) []entity.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.threads[threadID]
	out := make([]entity.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Save replaces the thread's checkpoint with the given messages.
func (s *ConversationStore) Save(threadID string, messages []entity.Message) {
	cp := make([]entity.Message, len(messages))
	copy(cp, messages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[threadID] = cp
}

// Delete drops a thread's checkpoint.
func (s *ConversationStore) Delete(threadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threads, threadID)
}

// Threads lists the thread IDs with a stored checkpoint.
func (s *ConversationStore) Threads() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.threads))
	for id := range s.threads {
		out = append(out, id)
	}
	return out
}
