package model

import (
	"regexp"
	"strings"

	"newsroom/internal/errors"
)

// Role is the permission level attached to a user and to issued tokens.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleJournalist Role = "journalist"
	RoleReader     Role = "reader"
	RoleGuest      Role = "guest"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleJournalist, RoleReader, RoleGuest:
		return true
	}
	return false
}

// CanPublish reports whether the role may write articles and papers.
func (r Role) CanPublish() bool {
	return r == RoleAdmin || r == RoleJournalist
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID       uint
	Username string
	Role     Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// UserParams holds the sign-up fields; Password is plaintext.
type UserParams struct {
	ID        uint
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      Role
}

// NewUser validates the sign-up fields. The caller hashes the password.
func NewUser(p UserParams) (*User, error) {
	if strings.TrimSpace(p.Username) == "" {
		return nil, errors.Validation("username", "username is required")
	}
	if !emailPattern.MatchString(p.Email) {
		return nil, errors.Validation("email", "invalid email address")
	}
	if err := ValidatePassword(p.Password); err != nil {
		return nil, err
	}
	role := p.Role
	if role == "" {
		role = RoleGuest
	}
	if !role.Valid() {
		return nil, errors.Validation("role", "role must be one of admin, journalist, reader, guest")
	}
	return &User{
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Role:      role,
	}, nil
}

// ValidatePassword checks the plaintext password rule.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.Validation("password", "password must be at least 6 characters long")
	}
	return nil
}

// Validate re-checks the fields that can change through profile edits.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.Validation("username", "username is required")
	}
	if !emailPattern.MatchString(u.Email) {
		return errors.Validation("email", "invalid email address")
	}
	if !u.Role.Valid() {
		return errors.Validation("role", "role must be one of admin, journalist, reader, guest")
	}
	return nil
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Actor returns the user as an operation actor.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Equal compares identity, email and username only.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID && u.Email == other.Email && u.Username == other.Username
}
