package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"internship-chatbot-be/internal/repository/contract"
	"internship-chatbot-be/pkg/store"
)

// SessionRepository keeps conversation histories in process memory. Each
// (user, session) key carries its own lock so concurrent appends to
// different sessions never contend, while appends to the same session stay
// serialized and FIFO eviction stays correct.
type SessionRepository struct {
	cache      *cache.Cache
	maxHistory int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(maxHistory int) *SessionRepository {
	if maxHistory <= 0 {
		maxHistory = 10
	}
	// Idle sessions expire after an hour; expired entries are purged every
	// 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache:      c,
		maxHistory: maxHistory,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (r *SessionRepository) keyLock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[key] = l
	return l
}

func (r *SessionRepository) Append(_ context.Context, userID, sessionID string, turn store.ConversationTurn) error {
	key := store.SessionKey(userID, sessionID)
	lock := r.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	var turns []store.ConversationTurn
	if x, found := r.cache.Get(key); found {
		turns = x.([]store.ConversationTurn)
	}
	turns = append(turns, turn)
	if len(turns) > r.maxHistory {
		turns = turns[len(turns)-r.maxHistory:]
	}
	r.cache.Set(key, turns, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) History(_ context.Context, userID, sessionID string) ([]store.ConversationTurn, error) {
	key := store.SessionKey(userID, sessionID)
	lock := r.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	x, found := r.cache.Get(key)
	if !found {
		return []store.ConversationTurn{}, nil
	}
	turns := x.([]store.ConversationTurn)
	out := make([]store.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (r *SessionRepository) Clear(_ context.Context, userID, sessionID string) error {
	key := store.SessionKey(userID, sessionID)
	lock := r.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	r.cache.Delete(key)
	return nil
}
