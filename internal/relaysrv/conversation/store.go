package conversation

import (
	"sync"

	"github.com/linguachat/linguachat/internal/common/apperrors"
	"github.com/linguachat/linguachat/internal/common/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a conversation. Turns are append-only and their
// insertion order is significant.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation holds the server-side state of one chat session: the ordered
// turn history and the upstream continuation tokens, one per completed
// assistant turn. The most recent continuation token is the parent context
// for the next upstream call.
//
// Each Conversation carries its own mutex, so individual reads and appends
// are atomic. Two concurrent turns against the same session can still
// interleave their turn pairs; callers wanting strict ordering must serialize
// their own per-session traffic.
type Conversation struct {
	id            string
	mu            sync.Mutex
	turns         []Turn
	continuations []string
}

// ID returns the session identifier.
func (c *Conversation) ID() string {
	return c.id
}

// AppendUserTurn records a user message.
func (c *Conversation) AppendUserTurn(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, Turn{Role: RoleUser, Content: text})
}

// AppendAssistantTurn records an assistant reply together with the upstream
// continuation token assigned to it.
func (c *Conversation) AppendAssistantTurn(text, continuation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: text})
	c.continuations = append(c.continuations, continuation)
}

// LastContinuation returns the most recent continuation token. The second
// return is false when the conversation has no completed assistant turn yet.
func (c *Conversation) LastContinuation() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.continuations) == 0 {
		return "", false
	}
	return c.continuations[len(c.continuations)-1], true
}

// Turns returns a copy of the turn history.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Continuations returns a copy of the continuation token history.
func (c *Conversation) Continuations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.continuations))
	copy(out, c.continuations)
	return out
}

// Store is the process-local session store. Sessions are never evicted;
// their lifetime is bounded by the process lifetime.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		conversations: make(map[string]*Conversation),
	}
}

// Create inserts a new empty conversation and returns it. Identifiers are
// UUIDv7 strings (millisecond timestamp prefix plus random suffix), so no
// identifier repeats within the process lifetime.
func (s *Store) Create() *Conversation {
	conv := &Conversation{id: uuid.New().String()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.id] = conv
	return conv
}

// Get retrieves a conversation by session identifier. An unknown identifier
// is a distinct, caller-visible condition, not an empty session.
func (s *Store) Get(id string) (*Conversation, apperrors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if conv, exists := s.conversations[id]; exists {
		return conv, nil
	}
	return nil, ErrSessionNotFound
}

// Count returns the number of sessions held by the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
