package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/navigation"
	"github.com/dmitrijs2005/gzapadmin/internal/client/session"
	"github.com/dmitrijs2005/gzapadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for username and password, stores the credential on success
// and opens the home screen.
//
// The password byte slice is wiped before returning. Failures are shown as a
// notification and returned.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Usuário", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, password); err != nil {
		return a.fail("Não foi possível realizar o login:", err)
	}

	a.logger.Info(ctx, "signed in", "username", username)
	return a.Home(ctx)
}

// Forgot asks the relay to reset the password of a username.
func (a *App) Forgot(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Usuário", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.ResetPassword(ctx, username); err != nil {
		return a.fail("Erro ao redefinir senha", err)
	}
	a.success("Senha redefinida. Verifique com o administrador.")
	return nil
}

// SignOut forgets the credential and returns to the public route.
func (a *App) SignOut(ctx context.Context) error {
	a.unmountConnection()
	a.gate.Close()
	a.auth.Logout(ctx)
	a.router.Replace(navigation.RoutePublic)
	printlnFn("Signed out")
	return nil
}

// Whoami prints the cached identity and what the credential itself claims.
func (a *App) Whoami(ctx context.Context) error {
	tkn, ok := a.session.Credential()
	if !ok {
		printlnFn("Not signed in")
		return nil
	}

	if id, ok := a.session.Identity(); ok {
		printlnFn(fmt.Sprintf("%s <%s> (%s)", id.Name, id.Email, id.Type))
	}

	info, err := session.Inspect(tkn)
	if err != nil {
		printlnFn("Credential is opaque")
		return nil
	}
	if !info.ExpiresAt.IsZero() {
		printlnFn("Token expires:", formatDate(info.ExpiresAt))
	}
	return nil
}

// Profile edits the signed-in account. The password is optional.
func (a *App) Profile(ctx context.Context) error {
	route := a.router.Current()
	if navigation.Path(route) == navigation.RoutePublic {
		route = navigation.RouteHome
	}
	if !a.navigate(ctx, route) {
		return nil
	}

	id, err := a.auth.Me(ctx)
	if err != nil {
		return a.fail("Erro ao carregar usuário", err)
	}

	in := models.ProfileInput{TargetUserID: id.ID}
	if in.Name, err = GetDefaultText(a.reader, "Nome", id.Name, a.out); err != nil {
		return err
	}
	if in.Email, err = GetDefaultText(a.reader, "Email", id.Email, a.out); err != nil {
		return err
	}
	if in.Username, err = GetDefaultText(a.reader, "Usuário", id.Username, a.out); err != nil {
		return err
	}
	if in.Password, in.ConfirmPassword, err = a.readPasswordPair("Nova senha (vazio mantém a atual)"); err != nil {
		return err
	}

	if err := a.auth.UpdateProfile(ctx, in); err != nil {
		return a.fail("Erro ao atualizar usuário", err)
	}
	a.success("Usuário atualizado!")
	return nil
}

func (a *App) readPasswordPair(prompt string) (string, string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)
	if len(pw) == 0 {
		return "", "", nil
	}

	confirm, err := getPassword(a.out, "Confirmar senha")
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(confirm)

	return string(pw), string(confirm), nil
}
