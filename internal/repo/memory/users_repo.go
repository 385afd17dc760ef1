package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/usersvc/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

// UsersRepo is an in-process user store with the same contract as the postgres one:
// the store assigns id and created_at, and a missing row reports pgx.ErrNoRows.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[int64]user.User),
	}
}

func (r *UsersRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, pgx.ErrNoRows
	}

	return u, nil
}

func (r *UsersRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil
	}

	u.Status = user.StatusInactive
	r.items[id] = u

	return nil
}
