package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/server/auth"
	"github.com/dmitrijs2005/gzapadmin/internal/server/config"
	"github.com/dmitrijs2005/gzapadmin/internal/server/models"
)

func newService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	s := NewService(NewMemoryRepository(), cfg)
	require.NoError(t, s.Seed(context.Background(), "admin", "admin", models.UserTypeAdmin, ""))
	return s
}

func TestLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	tok, err := s.Login(ctx, "admin", "admin")
	require.NoError(t, err)

	claims, err := auth.ParseToken(tok, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAdmin, claims.Type)

	u, err := s.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	_, err = s.Login(ctx, "admin", "nope")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "ghost", "admin")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_InactiveRejected(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	tok, err := s.Login(ctx, "admin", "admin")
	require.NoError(t, err)

	u, err := s.repo.GetUserByLogin(ctx, "admin")
	require.NoError(t, err)
	require.NoError(t, s.SetActive(ctx, u.ID, false))

	_, err = s.Login(ctx, "admin", "admin")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestCreateAndUpdate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, models.UserInput{Username: "ana", Password: "1", ConfirmPassword: "2"})
	require.ErrorIs(t, err, ErrPasswordMismatch)

	u, err := s.Create(ctx, models.UserInput{Username: "ana", Name: "Ana", Password: "123456", ConfirmPassword: "123456", CompanyID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeUser, u.Type)
	assert.True(t, u.IsActive)

	_, err = s.Create(ctx, models.UserInput{Username: "ana", Password: "x", ConfirmPassword: "x"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	require.NoError(t, s.Update(ctx, u.ID, models.UserInput{Username: "ana", Name: "Ana Maria", CompanyID: "c2"}, true))
	_, err = s.Login(ctx, "ana", "123456")
	require.NoError(t, err, "empty password keeps the old one")

	got, err := s.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, "c2", got.CompanyID)

	require.NoError(t, s.Update(ctx, u.ID, models.UserInput{Username: "ana", Password: "novo", ConfirmPassword: "novo"}, false))
	_, err = s.Login(ctx, "ana", "novo")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestResetPassword(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	require.NoError(t, s.ResetPassword(ctx, "admin"))
	_, err := s.Login(ctx, "admin", ResetPassword)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ResetPassword(ctx, "ghost"), common.ErrorNotFound)
}

func TestSeed_Idempotent(t *testing.T) {
	s := newService(t)
	require.NoError(t, s.Seed(context.Background(), "admin", "other", models.UserTypeAdmin, ""))

	_, err := s.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
}
