package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User is an object representing the database table.
type User struct {
	ID           int         `boil:"id" json:"id" toml:"id" yaml:"id"`
	Name         string      `boil:"name" json:"name" toml:"name" yaml:"name"`
	Username     null.String `boil:"username" json:"username,omitempty" toml:"username" yaml:"username,omitempty"`
	Email        null.String `boil:"email" json:"email,omitempty" toml:"email" yaml:"email,omitempty"`
	Role         string      `boil:"role" json:"role" toml:"role" yaml:"role"`
	IsActive     bool        `boil:"is_active" json:"is_active" toml:"is_active" yaml:"is_active"`
	PasswordHash null.Bytes  `boil:"password_hash" json:"password_hash,omitempty" toml:"password_hash" yaml:"password_hash,omitempty"`
	TeacherID    null.Int    `boil:"teacher_id" json:"teacher_id,omitempty" toml:"teacher_id" yaml:"teacher_id,omitempty"`
	CreatedAt    time.Time   `boil:"created_at" json:"created_at" toml:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time   `boil:"updated_at" json:"updated_at" toml:"updated_at" yaml:"updated_at"`
	LastLogin    null.Time   `boil:"last_login" json:"last_login,omitempty" toml:"last_login" yaml:"last_login,omitempty"`
}

var UserColumns = struct {
	ID           string
	Name         string
	Username     string
	Email        string
	Role         string
	IsActive     string
	PasswordHash string
	TeacherID    string
	CreatedAt    string
	UpdatedAt    string
	LastLogin    string
}{
	ID:           "id",
	Name:         "name",
	Username:     "username",
	Email:        "email",
	Role:         "role",
	IsActive:     "is_active",
	PasswordHash: "password_hash",
	TeacherID:    "teacher_id",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
	LastLogin:    "last_login",
}

var UserInsertColumns = []string{
	"name", "username", "email", "role", "is_active", "password_hash", "teacher_id", "created_at", "updated_at", "last_login",
}

func (o *User) InsertValues() []interface{} {
	return []interface{}{
		o.Name, o.Username, o.Email, o.Role, o.IsActive, o.PasswordHash, o.TeacherID, o.CreatedAt, o.UpdatedAt, o.LastLogin,
	}
}

func (o *User) UpdateValues() M {
	return M{
		"name": o.Name, "username": o.Username, "email": o.Email, "role": o.Role, "is_active": o.IsActive,
		"password_hash": o.PasswordHash, "teacher_id": o.TeacherID, "updated_at": o.UpdatedAt, "last_login": o.LastLogin,
	}
}
