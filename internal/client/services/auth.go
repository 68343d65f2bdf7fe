package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/session"
)

// AuthService covers the operator's own account.
//
// Contract:
//   - Login: validate, authenticate, store the returned credential.
//   - Logout: forget the credential and cached identity.
//   - ResetPassword: ask the relay to reset a password by username.
//   - Me: fetch the signed-in identity.
//   - UpdateProfile: edit the signed-in account.
//   - Ping: relay liveness.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context)
	ResetPassword(ctx context.Context, username string) error
	Me(ctx context.Context) (*models.Identity, error)
	UpdateProfile(ctx context.Context, in models.ProfileInput) error
	Ping(ctx context.Context) error
}

type loginForm struct {
	Username string `form:"username" validate:"min=2"`
	Password string `form:"password" validate:"min=2"`
}

type profileForm struct {
	Email           string `form:"email" validate:"email"`
	Name            string `form:"name"`
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

type authService struct {
	client  client.Client
	session session.Context
}

func NewAuthService(c client.Client, sess session.Context) AuthService {
	return &authService{client: c, session: sess}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if err := check(loginForm{Username: username, Password: string(password)}); err != nil {
		return err
	}

	tkn, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	a.session.SetCredential(tkn)
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.ClearCredential()
}

func (a *authService) ResetPassword(ctx context.Context, username string) error {
	return a.client.ResetPassword(ctx, username)
}

func (a *authService) Me(ctx context.Context) (*models.Identity, error) {
	return a.client.Me(ctx)
}

// UpdateProfile leaves the password alone when it is empty.
func (a *authService) UpdateProfile(ctx context.Context, in models.ProfileInput) error {
	if err := check(profileForm{
		Email:           in.Email,
		Name:            in.Name,
		Username:        in.Username,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}); err != nil {
		return err
	}
	if in.Password == "" {
		in.ConfirmPassword = ""
	}
	return a.client.UpdateProfile(ctx, in)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
