package models

import "time"

// User is a row of GET /users/all.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Type      UserType  `json:"type"`
	IsActive  bool      `json:"isActive"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserInput is the body of POST /users and PUT /users/admin. On edit the
// password pair is optional and TargetUserID names the edited account.
type UserInput struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	CompanyID       string `json:"companyId"`
	TargetUserID    string `json:"targetUserId,omitempty"`
}

// ProfileInput is the body of PUT /users/ (the signed-in user edits itself).
type ProfileInput struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	TargetUserID    string `json:"targetUserId,omitempty"`
}
