// Package models holds the relay's in-memory records and their wire shapes.
package models

import "time"

const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Type         string    `json:"type"`
	IsActive     bool      `json:"isActive"`
	CompanyID    string    `json:"companyId"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserInput is accepted by POST /users, PUT /users/admin and PUT /users/.
type UserInput struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	CompanyID       string `json:"companyId"`
	TargetUserID    string `json:"targetUserId"`
}
