package client

import (
	"context"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
)

// Client is the relay REST contract the console depends on.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*models.Identity, error)
	ResetPassword(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, in models.ProfileInput) error

	// Connection returns nil, nil when no messaging account is paired.
	Connection(ctx context.Context) (*models.Connection, error)
	GenerateQRCode(ctx context.Context) (*models.QRCode, error)
	LogoutSession(ctx context.Context) error

	MessageLog(ctx context.Context, page, limit int) ([]models.MessageLog, error)
	ResendFailed(ctx context.Context) error

	Companies(ctx context.Context) ([]models.Company, error)
	CreateCompany(ctx context.Context, in models.CompanyInput) error
	UpdateCompany(ctx context.Context, id string, in models.CompanyInput) error

	Users(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) error
	UpdateUser(ctx context.Context, in models.UserInput) error
	SetUserActive(ctx context.Context, id string, active bool) error
}
