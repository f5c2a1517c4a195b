package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
)

// Store is the key-value accessor every repository goes through. Each
// collection lives as one whole JSON blob under a namespaced string key;
// there is no per-record addressing. A per-key mutex serializes
// read-patch-write cycles within this process, and a circuit breaker guards
// the underlying Redis calls.
type Store struct {
	rdb       *redis.Client
	namespace string
	breaker   *gobreaker.CircuitBreaker

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a store over the given Redis connection options.
func NewStore(opts *redis.Options, namespace string) (*Store, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "StoreCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Store{
		rdb:       redis.NewClient(opts),
		namespace: namespace,
		breaker:   breaker,
		locks:     make(map[string]*sync.Mutex),
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies store connectivity. Useful for startup health checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

func (s *Store) key(name string) string {
	return s.namespace + ":" + name
}

// lockFor hands out the process-level mutex guarding one collection key.
func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// WithLock runs fn while holding the mutex for the named collection. Every
// read-patch-write sequence must run under it so two in-process writers
// cannot lose each other's update.
func (s *Store) WithLock(name string, fn func() error) error {
	l := s.lockFor(name)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// Get fetches the raw blob stored under name. A missing key is reported via
// the boolean, not as an error.
func (s *Store) Get(ctx context.Context, name string) ([]byte, bool, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		data, err := s.rdb.Get(ctx, s.key(name)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %v", models.ErrStorage, name, err)
	}
	if res == nil {
		return nil, false, nil
	}
	return res.([]byte), true, nil
}

// Set writes the raw blob stored under name, replacing it wholesale.
func (s *Store) Set(ctx context.Context, name string, data []byte) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.rdb.Set(ctx, s.key(name), data, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", models.ErrStorage, name, err)
	}
	return nil
}

// Load decodes the collection blob under name into v. An absent key leaves
// v at its zero value (empty default); a present but corrupt blob is a
// DecodeError.
func (s *Store) Load(ctx context.Context, name string, v any) error {
	data, ok, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: collection %s: %v", models.ErrDecode, name, err)
	}
	return nil
}

// Save encodes v and writes it as the whole collection blob under name.
func (s *Store) Save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	return s.Set(ctx, name, data)
}
