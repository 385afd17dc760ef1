package postgres

import (
	"context"

	"github.com/geocoder89/usersvc/internal/domain/user"
	"github.com/geocoder89/usersvc/internal/storage"
)

const userColumns = `id, name, email, password, role, status, created_at`

type UsersRepo struct {
	db *storage.Gateway
}

func NewUsersRepo(db *storage.Gateway) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create inserts u and returns the stored row, including the id and created_at the database assigned.
func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return storage.FetchOne[user.User](
		ctx,
		r.db,
		"users.create",
		`INSERT INTO users (name, email, password, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Name, u.Email, u.Password, u.Role, u.Status,
	)
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	return storage.FetchOne[user.User](
		ctx,
		r.db,
		"users.get_by_id",
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
}

// SoftDelete marks the user inactive. A missing id is not an error.
func (r *UsersRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.db.Execute(
		ctx,
		"users.soft_delete",
		`UPDATE users SET status = $2 WHERE id = $1`,
		id, user.StatusInactive,
	)

	return err
}
