package memstore

import (
	"context"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/google/uuid"
)

// UserRepo stores users in the Store.
type UserRepo struct {
	s *Store
}

// Users returns the user repository backed by s.
func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

// Create creates the user and then returns it.
func (r *UserRepo) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st := r.s.st

	if _, ok := st.users[arg.Username]; ok {
		return domain.User{}, domain.ErrUsernameAlreadyExists
	}

	if _, ok := st.emails[arg.Email]; ok {
		return domain.User{}, domain.ErrEmailALreadyExists
	}

	u := domain.User{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		FullName:       arg.FullName,
		Email:          arg.Email,
		Funds:          arg.Funds,
		CreatedAt:      now(),
	}

	st.users[u.Username] = u
	st.emails[u.Email] = u.Username

	return u, nil
}

// Get returns the user with the given username.
func (r *UserRepo) Get(ctx context.Context, username string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.st.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}

// SessionRepo stores sessions in the Store.
type SessionRepo struct {
	s *Store
}

// Sessions returns the session repository backed by s.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{s: s}
}

// Create creates the session and then returns it.
func (r *SessionRepo) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.users[arg.Username]; !ok {
		return domain.Session{}, domain.ErrUserNotFound
	}

	sess := domain.Session{
		ID:           arg.ID,
		Username:     arg.Username,
		RefreshToken: arg.RefreshToken,
		UserAgent:    arg.UserAgent,
		ClientIP:     arg.ClientIP,
		IsBlocked:    arg.IsBlocked,
		ExpiresAt:    arg.ExpiresAt,
		CreatedAt:    now(),
	}

	r.s.sessions[sess.ID] = sess

	return sess, nil
}

// Get returns session with the given id.
func (r *SessionRepo) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return sess, nil
}
