package dto

import "github.com/yigit/jobly/internal/app/models"

// TokenRequest represents login credentials
type TokenRequest struct {
	Username string `json:"username" binding:"required,min=1,max=25" example:"u1"`
	Password string `json:"password" binding:"required,min=5,max=20" example:"password1"`
}

// RegisterRequest represents a self-service registration. Accounts created
// here are never admins.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25" example:"new"`
	Password  string `json:"password" binding:"required,min=5,max=20" example:"password"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30" example:"first"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30" example:"last"`
	Email     string `json:"email" binding:"required,email,max=60" example:"new@email.com"`
}

// ToModel converts the request into a new user
func (r RegisterRequest) ToModel() models.NewUser {
	return models.NewUser{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}
