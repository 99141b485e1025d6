package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "idem:cart:"

	// DefaultReservationTTL bounds how long a crashed request can hold a key.
	DefaultReservationTTL = 30 * time.Second
)

// StoredResponse is what an Idempotency-Key maps to: a reservation while the
// first request is still running, then the response it produced.
// Fingerprint identifies the request body the key was first used with.
type StoredResponse struct {
	Status      int             `json:"status,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	Fingerprint string          `json:"fingerprint"`
	Pending     bool            `json:"pending,omitempty"`
}

// IdempotencyStore remembers responses per (user, key). A nil store never
// remembers anything.
type IdempotencyStore struct {
	client     store
	ttl        time.Duration
	reserveTTL time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl, reserveTTL: DefaultReservationTTL}
}

func (s *IdempotencyStore) key(userID, key string) string {
	return idempotencyPrefix + userID + ":" + key
}

// Get returns the stored entry, or nil when the key is unseen.
func (s *IdempotencyStore) Get(ctx context.Context, userID, key string) (*StoredResponse, error) {
	if s == nil {
		return nil, nil
	}
	data, err := s.client.Get(ctx, s.key(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp StoredResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reserve claims key for a request with the given fingerprint. It returns nil
// when the caller now owns the key, otherwise the entry already there.
// Exactly one of several concurrent callers gets nil.
func (s *IdempotencyStore) Reserve(ctx context.Context, userID, key, fingerprint string) (*StoredResponse, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(StoredResponse{Fingerprint: fingerprint, Pending: true})
	if err != nil {
		return nil, err
	}
	ok, err := s.client.SetNX(ctx, s.key(userID, key), data, s.reserveTTL).Result()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}

	existing, err := s.Get(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// the holder released between SETNX and GET; report it as busy
		return &StoredResponse{Fingerprint: fingerprint, Pending: true}, nil
	}
	return existing, nil
}

// Save replaces the reservation with the finished response.
func (s *IdempotencyStore) Save(ctx context.Context, userID, key string, resp StoredResponse) error {
	if s == nil {
		return nil
	}
	resp.Pending = false
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID, key), data, s.ttl).Err()
}

// Release drops a reservation so the key can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, userID, key string) error {
	if s == nil {
		return nil
	}
	return s.client.Del(ctx, s.key(userID, key)).Err()
}
