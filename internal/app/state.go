// Package app holds the state shared by every request: the storage gateway
// and the user store built on it. A State is built once at startup and only
// read afterwards.
package app

import (
	"context"

	"github.com/geocoder89/usersvc/internal/domain/user"
	"github.com/geocoder89/usersvc/internal/repo/postgres"
	"github.com/geocoder89/usersvc/internal/storage"
)

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	SoftDelete(ctx context.Context, id int64) error
}

type State struct {
	db    *storage.Gateway
	users UserStore
}

func New(db *storage.Gateway) *State {
	return &State{
		db:    db,
		users: postgres.NewUsersRepo(db),
	}
}

// NewWithStore builds a State over any user store, with no database behind it.
func NewWithStore(users UserStore) *State {
	return &State{users: users}
}

func (s *State) Users() UserStore {
	return s.users
}

// Ping reports whether the store can serve queries.
func (s *State) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Ping(ctx)
}

func (s *State) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
