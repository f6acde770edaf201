package out

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessionout "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/out"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

type sessionEntry struct {
	mu      sync.Mutex
	session domain.Session
}

// MemoryStore holds live sessions in an expirable LRU. Capacity and TTL bound
// memory; evicted sessions read as not found. Read-modify-write on one
// session serializes on the entry lock, so concurrent runs against different
// sessions never contend.
type MemoryStore struct {
	entries *expirable.LRU[string, *sessionEntry]
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: expirable.NewLRU[string, *sessionEntry](capacity, nil, ttl),
	}
}

var _ sessionout.Store = (*MemoryStore)(nil)

func (s *MemoryStore) Create(_ context.Context, session domain.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session id required: %w", apperrors.ErrInvalidInput)
	}
	s.entries.Add(session.ID, &sessionEntry{session: session})
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (domain.Session, error) {
	entry, ok := s.entries.Get(sessionID)
	if !ok {
		return domain.Session{}, apperrors.ErrNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session, nil
}

func (s *MemoryStore) AttachResult(_ context.Context, sessionID string, result reconstructdomain.Result) error {
	entry, ok := s.entries.Get(sessionID)
	if !ok {
		return apperrors.ErrNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.session.LastResult = &result
	return nil
}
