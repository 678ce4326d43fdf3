package algorithm

import "sync"

// Store guards the one Config instance shared across live signal generation
// and optimization. All access is serialized: the optimizer takes snapshots
// per trial instead of mutating the shared value, so a reader can never
// observe a partially applied candidate.
type Store struct {
	mu     sync.RWMutex
	config Config
}

// NewStore creates a store holding the given config. The config is validated
// before the store is usable.
func NewStore(config Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Store{config: config}, nil
}

// Snapshot returns a copy of the current config.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Replace swaps in a new config after validating it. The stored config is
// untouched when validation fails.
func (s *Store) Replace(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config

	return nil
}

// Update applies fn to a copy of the current config and commits the copy
// only when fn succeeds and the result still validates. A rejected update
// leaves every field untouched.
func (s *Store) Update(fn func(*Config) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config
	if err := fn(&candidate); err != nil {
		return err
	}

	if err := candidate.Validate(); err != nil {
		return err
	}

	s.config = candidate

	return nil
}
