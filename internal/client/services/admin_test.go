package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
)

func TestSaveCompany_CreateUnmasksCNPJ(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAdminService(fc)

	require.NoError(t, svc.SaveCompany(context.Background(), "", models.CompanyInput{Name: "Clínica Sol", CNPJ: "12.345.678/0001-90"}))

	want := &models.CompanyInput{Name: "Clínica Sol", CNPJ: "12345678000190"}
	if diff := cmp.Diff(want, fc.CreatedCompany); diff != "" {
		t.Fatalf("created company mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, fc.UpdatedCompany)
}

func TestSaveCompany_Edit(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAdminService(fc)

	require.NoError(t, svc.SaveCompany(context.Background(), "c-1", models.CompanyInput{Name: "Sol", CNPJ: "12345678000190"}))
	assert.Equal(t, "c-1", fc.UpdatedID)
	assert.Nil(t, fc.CreatedCompany)
}

func TestSaveCompany_Validation(t *testing.T) {
	fc := &fakeClient{}
	err := NewAdminService(fc).SaveCompany(context.Background(), "", models.CompanyInput{Name: "S", CNPJ: ""})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "cnpj")
	assert.Nil(t, fc.CreatedCompany)
}

func TestCreateUser(t *testing.T) {
	base := models.UserInput{Email: "ana@clinica.com", Name: "Ana", Username: "ana", CompanyID: "c-1"}

	tests := []struct {
		name    string
		mutate  func(in *models.UserInput)
		wantErr string
	}{
		{name: "ok", mutate: func(in *models.UserInput) { in.Password, in.ConfirmPassword = "123456", "123456" }},
		{name: "missing password", mutate: func(in *models.UserInput) {}, wantErr: "password"},
		{name: "mismatch", mutate: func(in *models.UserInput) { in.Password, in.ConfirmPassword = "123456", "12345" }, wantErr: "confirmPassword"},
		{name: "bad email", mutate: func(in *models.UserInput) {
			in.Email = "ana"
			in.Password, in.ConfirmPassword = "123456", "123456"
		}, wantErr: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			fc := &fakeClient{}
			err := NewAdminService(fc).CreateUser(context.Background(), in)
			if tt.wantErr != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.wantErr)
				assert.Nil(t, fc.CreatedUser)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, fc.CreatedUser)
			assert.Equal(t, "ana", fc.CreatedUser.Username)
		})
	}
}

func TestEditUser_PasswordOptional(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAdminService(fc)

	in := models.UserInput{Email: "ana@clinica.com", Name: "Ana", Username: "ana", TargetUserID: "u-1"}
	require.NoError(t, svc.EditUser(context.Background(), in))
	require.NotNil(t, fc.UpdatedUser)
	assert.Equal(t, "u-1", fc.UpdatedUser.TargetUserID)
	assert.Empty(t, fc.UpdatedUser.Password)

	in.Password, in.ConfirmPassword = "novo123", "outro"
	err := svc.EditUser(context.Background(), in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "As senhas não correspondem")
}

func TestSetUserActive(t *testing.T) {
	fc := &fakeClient{}
	require.NoError(t, NewAdminService(fc).SetUserActive(context.Background(), "u-9", false))
	assert.Equal(t, "u-9", fc.ActiveID)
	assert.False(t, fc.ActiveVal)
}
