// Package memstore keeps users, sessions and the bank ledger in memory.
//
// It serves the same contracts as the postgres repositories and is used when
// the server runs with STORE=memory and in tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/vaultbank/internal/bankservice"
	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/google/uuid"
)

var _ bankservice.Store = (*Store)(nil)

type state struct {
	users    map[string]domain.User
	emails   map[string]string
	banks    map[string]domain.Bank
	owners   map[string]string // owner -> bank address
	holdings map[string]uint64
	entries  []domain.Entry
	lastID   int64
}

func newState() *state {
	return &state{
		users:    make(map[string]domain.User),
		emails:   make(map[string]string),
		banks:    make(map[string]domain.Bank),
		owners:   make(map[string]string),
		holdings: make(map[string]uint64),
	}
}

// clone returns a copy that can be changed without affecting st.
func (st *state) clone() *state {
	c := &state{
		users:    make(map[string]domain.User, len(st.users)),
		emails:   make(map[string]string, len(st.emails)),
		banks:    make(map[string]domain.Bank, len(st.banks)),
		owners:   make(map[string]string, len(st.owners)),
		holdings: make(map[string]uint64, len(st.holdings)),
		// Appends on the copy always reallocate.
		entries: st.entries[:len(st.entries):len(st.entries)],
		lastID:  st.lastID,
	}

	for k, v := range st.users {
		c.users[k] = v
	}

	for k, v := range st.emails {
		c.emails[k] = v
	}

	for k, v := range st.banks {
		c.banks[k] = v
	}

	for k, v := range st.owners {
		c.owners[k] = v
	}

	for k, v := range st.holdings {
		c.holdings[k] = v
	}

	return c
}

// Store holds all the data behind a single mutex.
type Store struct {
	mu       sync.Mutex
	st       *state
	sessions map[uuid.UUID]domain.Session
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		st:       newState(),
		sessions: make(map[uuid.UUID]domain.Session),
	}
}

// ExecTx runs fn against a copy of the ledger and keeps the copy only if fn
// returns nil. Calls are serialized.
func (s *Store) ExecTx(ctx context.Context, fn func(tx bankservice.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()

	if err := fn(txView{st: work}); err != nil {
		return err
	}

	s.st = work

	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
