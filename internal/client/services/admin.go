package services

import (
	"context"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/masks"
)

// AdminService manages companies and user accounts. Role checks happen in
// the gate, the relay enforces them again.
type AdminService interface {
	Companies(ctx context.Context) ([]models.Company, error)
	// SaveCompany creates when id is empty and edits otherwise.
	SaveCompany(ctx context.Context, id string, in models.CompanyInput) error

	Users(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) error
	EditUser(ctx context.Context, in models.UserInput) error
	SetUserActive(ctx context.Context, id string, active bool) error
}

type companyForm struct {
	Name string `form:"name" validate:"min=2"`
	CNPJ string `form:"cnpj" validate:"min=2"`
}

type createUserForm struct {
	Email           string `form:"email" validate:"email"`
	Name            string `form:"name"`
	Username        string `form:"username"`
	Password        string `form:"password" validate:"min=2"`
	ConfirmPassword string `form:"confirmPassword" validate:"min=2,eqfield=Password"`
	CompanyID       string `form:"companyId"`
}

type editUserForm struct {
	Email           string `form:"email" validate:"email"`
	Name            string `form:"name"`
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	CompanyID       string `form:"companyId"`
}

type adminService struct {
	client client.Client
}

func NewAdminService(c client.Client) AdminService {
	return &adminService{client: c}
}

func (s *adminService) Companies(ctx context.Context) ([]models.Company, error) {
	return s.client.Companies(ctx)
}

func (s *adminService) SaveCompany(ctx context.Context, id string, in models.CompanyInput) error {
	if err := check(companyForm{Name: in.Name, CNPJ: in.CNPJ}); err != nil {
		return err
	}
	in.CNPJ = masks.Unmask(in.CNPJ)

	if id == "" {
		return s.client.CreateCompany(ctx, in)
	}
	return s.client.UpdateCompany(ctx, id, in)
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	return s.client.Users(ctx)
}

func (s *adminService) CreateUser(ctx context.Context, in models.UserInput) error {
	if err := check(createUserForm{
		Email:           in.Email,
		Name:            in.Name,
		Username:        in.Username,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		CompanyID:       in.CompanyID,
	}); err != nil {
		return err
	}
	in.TargetUserID = ""
	return s.client.CreateUser(ctx, in)
}

// EditUser sends PUT /users/admin for in.TargetUserID. An empty password
// keeps the current one.
func (s *adminService) EditUser(ctx context.Context, in models.UserInput) error {
	if err := check(editUserForm{
		Email:           in.Email,
		Name:            in.Name,
		Username:        in.Username,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		CompanyID:       in.CompanyID,
	}); err != nil {
		return err
	}
	if in.Password == "" {
		in.ConfirmPassword = ""
	}
	return s.client.UpdateUser(ctx, in)
}

func (s *adminService) SetUserActive(ctx context.Context, id string, active bool) error {
	return s.client.SetUserActive(ctx, id, active)
}
