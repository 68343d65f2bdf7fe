// Package models holds the relay API payloads the console works with.
package models

// UserType is the role carried by an Identity.
type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"
)

// Identity is the profile returned by GET /users/me. It is never persisted;
// the gate re-fetches it on every activation.
type Identity struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Type      UserType `json:"type"`
	CompanyID string   `json:"companyId"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Type == UserTypeAdmin
}

// LoginResponse is the body of POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
