package models

import "github.com/yigit/jobly/internal/pkg/sqlbuild"

// User is an account. Password holds the bcrypt hash and is never serialized.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UserDetail is a user together with the ids of the jobs they applied to
type UserDetail struct {
	User
	Jobs []int64 `json:"jobs"`
}

// NewUser carries a plaintext password; it is hashed before storage
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// UserUpdate is a partial update; Password is plaintext until the service hashes it
type UserUpdate struct {
	Password  *string
	FirstName *string
	LastName  *string
	Email     *string
	IsAdmin   *bool
}

// Fields lists the supplied changes under their JSON names
func (u UserUpdate) Fields() []sqlbuild.Field {
	var c changeSet
	if u.Password != nil {
		c = c.add("password", *u.Password)
	}
	if u.FirstName != nil {
		c = c.add("firstName", *u.FirstName)
	}
	if u.LastName != nil {
		c = c.add("lastName", *u.LastName)
	}
	if u.Email != nil {
		c = c.add("email", *u.Email)
	}
	if u.IsAdmin != nil {
		c = c.add("isAdmin", *u.IsAdmin)
	}
	return c
}
