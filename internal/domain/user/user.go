package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRole = errors.New("invalid user role")
var ErrInvalidStatus = errors.New("invalid user status")

// Role is spelled "Admin"/"User" on the wire and "admin"/"user" in the store.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status is spelled "Active"/"Inactive" on the wire and "active"/"inactive" in the store.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"password" db:"password"`
	Role      Role      `json:"role" db:"role"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewFromCreateRequest keeps only the caller-owned fields of a create payload.
// Role and status are forced, id and created_at are left for the store.
func NewFromCreateRequest(req User) User {
	return User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     RoleUser,
		Status:   StatusActive,
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	switch r {
	case RoleAdmin:
		return json.Marshal("Admin")
	case RoleUser:
		return json.Marshal("User")
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch s {
	case "Admin":
		*r = RoleAdmin
	case "User":
		*r = RoleUser
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return nil
}

func (r Role) Value() (driver.Value, error) {
	switch r {
	case RoleAdmin, RoleUser:
		return string(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
}

func (r *Role) Scan(src any) error {
	s, err := scanText(src)
	if err != nil {
		return err
	}

	switch Role(s) {
	case RoleAdmin, RoleUser:
		*r = Role(s)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case StatusActive:
		return json.Marshal("Active")
	case StatusInactive:
		return json.Marshal("Inactive")
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch v {
	case "Active":
		*s = StatusActive
	case "Inactive":
		*s = StatusInactive
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	switch s {
	case StatusActive, StatusInactive:
		return string(s), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
}

func (s *Status) Scan(src any) error {
	v, err := scanText(src)
	if err != nil {
		return err
	}

	switch Status(v) {
	case StatusActive, StatusInactive:
		*s = Status(v)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("cannot scan %T into text enum", src)
}
