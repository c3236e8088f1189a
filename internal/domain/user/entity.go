package user

import (
	"errors"
	"strings"
)

var ErrEmptyName = errors.New("user name must not be blank")

type User struct {
	id    int64
	name  string
	email Email
}

// NewUser validates and builds an unpersisted user; the store assigns
// the id on insert.
func NewUser(name string, email Email) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &User{name: name, email: email}, nil
}

func Reconstruct(id int64, name string, email Email) *User {
	return &User{id: id, name: name, email: email}
}

func (u *User) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	u.name = name
	return nil
}

func (u *User) ChangeEmail(email Email) {
	u.email = email
}

func (u *User) ID() int64    { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() Email { return u.email }
