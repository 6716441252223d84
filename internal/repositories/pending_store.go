package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"greenjourney/internal/domain/models"
)

// ErrPendingNotFound is returned for unknown or expired pending bookings.
var ErrPendingNotFound = errors.New("pending booking not found")

const pendingKeyPrefix = "pending_booking:"

// PendingStore keeps priced selections until they are paid for or expire.
type PendingStore interface {
	Save(ctx context.Context, p models.PendingBooking, ttl time.Duration) error
	Get(ctx context.Context, id string) (models.PendingBooking, error)
	// Take removes and returns the entry in one step, so only one caller can claim it.
	Take(ctx context.Context, id string) (models.PendingBooking, error)
}

// RedisPendingStore stores pending bookings as JSON values with a TTL.
type RedisPendingStore struct {
	Client *redis.Client
}

func NewRedisPendingStore(client *redis.Client) *RedisPendingStore {
	return &RedisPendingStore{Client: client}
}

func pendingKey(id string) string {
	return pendingKeyPrefix + id
}

func (s *RedisPendingStore) Save(ctx context.Context, p models.PendingBooking, ttl time.Duration) error {
	if p.ID == "" {
		return fmt.Errorf("pending booking id is required")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, pendingKey(p.ID), payload, ttl).Err()
}

func (s *RedisPendingStore) Get(ctx context.Context, id string) (models.PendingBooking, error) {
	return decodePending(s.Client.Get(ctx, pendingKey(id)).Bytes())
}

// Take uses GETDEL so concurrent payments cannot both read the selection.
func (s *RedisPendingStore) Take(ctx context.Context, id string) (models.PendingBooking, error) {
	return decodePending(s.Client.GetDel(ctx, pendingKey(id)).Bytes())
}

func decodePending(raw []byte, err error) (models.PendingBooking, error) {
	if errors.Is(err, redis.Nil) {
		return models.PendingBooking{}, ErrPendingNotFound
	}
	if err != nil {
		return models.PendingBooking{}, err
	}
	var p models.PendingBooking
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.PendingBooking{}, fmt.Errorf("decode pending booking: %w", err)
	}
	return p, nil
}

// MemoryPendingStore is used when Redis is not configured and in tests.
type MemoryPendingStore struct {
	mu      sync.Mutex
	entries map[string]memoryPending
	Now     func() time.Time
}

type memoryPending struct {
	booking   models.PendingBooking
	expiresAt time.Time
}

func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{entries: map[string]memoryPending{}}
}

func (s *MemoryPendingStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryPendingStore) Save(_ context.Context, p models.PendingBooking, ttl time.Duration) error {
	if p.ID == "" {
		return fmt.Errorf("pending booking id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = map[string]memoryPending{}
	}
	var expires time.Time
	if ttl > 0 {
		expires = s.now().Add(ttl)
	}
	s.entries[p.ID] = memoryPending{booking: p, expiresAt: expires}
	return nil
}

func (s *MemoryPendingStore) Get(_ context.Context, id string) (models.PendingBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

func (s *MemoryPendingStore) Take(_ context.Context, id string) (models.PendingBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(id)
	if err == nil {
		delete(s.entries, id)
	}
	return p, err
}

// lookup expects s.mu to be held.
func (s *MemoryPendingStore) lookup(id string) (models.PendingBooking, error) {
	e, ok := s.entries[id]
	if !ok {
		return models.PendingBooking{}, ErrPendingNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return models.PendingBooking{}, ErrPendingNotFound
	}
	return e.booking, nil
}
