package dto

import "github.com/yigit/jobly/internal/app/models"

// CreateUserRequest is the admin-only body of POST /users
type CreateUserRequest struct {
	RegisterRequest
	IsAdmin bool `json:"isAdmin" example:"false"`
}

// ToModel converts the request into a new user, keeping the admin flag
func (r CreateUserRequest) ToModel() models.NewUser {
	u := r.RegisterRequest.ToModel()
	u.IsAdmin = r.IsAdmin
	return u
}

// UpdateUserRequest is the body of PATCH /users/:username
type UpdateUserRequest struct {
	Password  *string `json:"password" binding:"omitempty,min=5,max=20"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Email     *string `json:"email" binding:"omitempty,email,max=60"`
	IsAdmin   *bool   `json:"isAdmin"`
}

// ToModel converts the request into a partial update
func (r UpdateUserRequest) ToModel() models.UserUpdate {
	return models.UserUpdate{
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		IsAdmin:   r.IsAdmin,
	}
}

// UserResponse wraps a single user
type UserResponse struct {
	User *models.User `json:"user"`
}

// UserDetailResponse wraps a user with their applications
type UserDetailResponse struct {
	User *models.UserDetail `json:"user"`
}

// UsersResponse wraps the user listing
type UsersResponse struct {
	Users []*models.User `json:"users"`
}

// CreatedUserResponse is returned when an admin creates an account
type CreatedUserResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AppliedResponse reports the job a user applied to
type AppliedResponse struct {
	Applied int64 `json:"applied" example:"1"`
}
