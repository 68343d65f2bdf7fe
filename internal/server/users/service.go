package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/server/auth"
	"github.com/dmitrijs2005/gzapadmin/internal/server/config"
	"github.com/dmitrijs2005/gzapadmin/internal/server/models"
)

// ResetPassword is what a reset sets the password to. The relay is a
// development fake; there is no mail delivery.
const ResetPassword = "gzap1234"

var ErrPasswordMismatch = errors.New("passwords do not match")

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Login checks the password and returns a signed access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}
	if !user.IsActive {
		return "", common.ErrorUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	return s.generateAccessToken(user)
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	token, err := auth.GenerateToken(user.ID, user.Type, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a bearer token to its (still active) account.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// Create adds an active account of type "user".
func (s *Service) Create(ctx context.Context, in models.UserInput) (*User, error) {
	if in.Password == "" || in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &User{
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		Type:         models.UserTypeUser,
		IsActive:     true,
		CompanyID:    in.CompanyID,
		PasswordHash: hash,
	})
}

// Update edits the account named by id. An empty password keeps the old one.
func (s *Service) Update(ctx context.Context, id string, in models.UserInput, allowCompany bool) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Username = in.Username
	if allowCompany {
		user.CompanyID = in.CompanyID
	}

	if in.Password != "" {
		if in.Password != in.ConfirmPassword {
			return ErrPasswordMismatch
		}
		hash, err := hashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	return s.repo.Update(ctx, user)
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = active
	return s.repo.Update(ctx, user)
}

// ResetPassword sets the account's password to ResetPassword. Unknown
// usernames are reported as not found.
func (s *Service) ResetPassword(ctx context.Context, username string) error {
	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		return err
	}
	hash, err := hashPassword(ResetPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	return s.repo.Update(ctx, user)
}

// Seed creates an account with an explicit role, skipping usernames that
// already exist.
func (s *Service) Seed(ctx context.Context, username, password, userType, companyID string) error {
	if _, err := s.repo.GetUserByLogin(ctx, username); err == nil {
		return nil
	}
	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.repo.Create(ctx, &User{
		Name:         username,
		Email:        username + "@gzap.local",
		Username:     username,
		Type:         userType,
		IsActive:     true,
		CompanyID:    companyID,
		PasswordHash: hash,
	})
	return err
}
