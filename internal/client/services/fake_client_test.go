package services

import (
	"context"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	LoginToken string
	LoginErr   error
	LastUser   string
	LastPass   string

	MeRet *models.Identity
	MeErr error

	ResetUser string
	ResetErr  error

	Profile    *models.ProfileInput
	ProfileErr error

	ConnRet   *models.Connection
	ConnErr   error
	LogoutErr error
	Logouts   int

	Logs                []models.MessageLog
	LastPage, LastLimit int
	Resends             int

	CompaniesRet   []models.Company
	CreatedCompany *models.CompanyInput
	UpdatedCompany *models.CompanyInput
	UpdatedID      string

	UsersRet    []models.User
	CreatedUser *models.UserInput
	UpdatedUser *models.UserInput
	ActiveID    string
	ActiveVal   bool

	PingErr error
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	f.LastUser, f.LastPass = username, password
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.Identity, error) { return f.MeRet, f.MeErr }

func (f *fakeClient) ResetPassword(ctx context.Context, username string) error {
	f.ResetUser = username
	return f.ResetErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, in models.ProfileInput) error {
	f.Profile = &in
	return f.ProfileErr
}

func (f *fakeClient) Connection(ctx context.Context) (*models.Connection, error) {
	return f.ConnRet, f.ConnErr
}

func (f *fakeClient) GenerateQRCode(ctx context.Context) (*models.QRCode, error) {
	return &models.QRCode{QRCode: "qr"}, nil
}

func (f *fakeClient) LogoutSession(ctx context.Context) error {
	f.Logouts++
	return f.LogoutErr
}

func (f *fakeClient) MessageLog(ctx context.Context, page, limit int) ([]models.MessageLog, error) {
	f.LastPage, f.LastLimit = page, limit
	return f.Logs, nil
}

func (f *fakeClient) ResendFailed(ctx context.Context) error {
	f.Resends++
	return nil
}

func (f *fakeClient) Companies(ctx context.Context) ([]models.Company, error) {
	return f.CompaniesRet, nil
}

func (f *fakeClient) CreateCompany(ctx context.Context, in models.CompanyInput) error {
	f.CreatedCompany = &in
	return nil
}

func (f *fakeClient) UpdateCompany(ctx context.Context, id string, in models.CompanyInput) error {
	f.UpdatedID = id
	f.UpdatedCompany = &in
	return nil
}

func (f *fakeClient) Users(ctx context.Context) ([]models.User, error) { return f.UsersRet, nil }

func (f *fakeClient) CreateUser(ctx context.Context, in models.UserInput) error {
	f.CreatedUser = &in
	return nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, in models.UserInput) error {
	f.UpdatedUser = &in
	return nil
}

func (f *fakeClient) SetUserActive(ctx context.Context, id string, active bool) error {
	f.ActiveID, f.ActiveVal = id, active
	return nil
}
