// Package history keeps a bounded window of recent chat turns per
// session, backed by Redis when available and by process memory
// otherwise.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/drivelane/showroom/internal/db"
	"github.com/drivelane/showroom/internal/domain"
)

const keyPrefix = "chat:history:"

// Roles for stored turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one stored chat turn.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Store persists per-session history windows.
type Store struct {
	store  db.Store
	window int
	ttl    time.Duration

	mu  sync.Mutex
	mem map[string][]Message
}

// NewStore creates a history store. A nil backing store degrades to an
// in-memory map, which loses history on restart and does not expire.
func NewStore(store db.Store, window int, ttl time.Duration) *Store {
	if window <= 0 {
		window = 10
	}
	s := &Store{store: store, window: window, ttl: ttl}
	if store == nil {
		s.mem = make(map[string][]Message)
	}
	return s
}

// Append records a turn and trims the session to the window size.
func (s *Store) Append(ctx context.Context, sessionID string, msg Message) error {
	if msg.At.IsZero() {
		msg.At = time.Now().UTC()
	}

	if s.store == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		msgs := append(s.mem[sessionID], msg)
		if len(msgs) > s.window {
			msgs = msgs[len(msgs)-s.window:]
		}
		s.mem[sessionID] = msgs
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	key := keyPrefix + sessionID
	if err := s.store.RPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	if err := s.store.LTrim(ctx, key, int64(-s.window), -1); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	if s.ttl > 0 {
		if err := s.store.Expire(ctx, key, s.ttl); err != nil {
			return fmt.Errorf("failed to refresh history ttl: %w", err)
		}
	}
	return nil
}

// Recent returns the stored window for a session, oldest first.
// Unknown sessions yield domain.ErrSessionNotFound.
func (s *Store) Recent(ctx context.Context, sessionID string) ([]Message, error) {
	if s.store == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		msgs, ok := s.mem[sessionID]
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		out := make([]Message, len(msgs))
		copy(out, msgs)
		return out, nil
	}

	raw, err := s.store.LRange(ctx, keyPrefix+sessionID, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if len(raw) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Clear drops a session's history.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if s.store == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.mem, sessionID)
		return nil
	}
	if err := s.store.Del(ctx, keyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Ping reports backing-store health; the in-memory fallback is always
// healthy.
func (s *Store) Ping(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(ctx)
}
