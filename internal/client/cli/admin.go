package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/navigation"
	"github.com/dmitrijs2005/gzapadmin/internal/masks"
)

func (a *App) Companies(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteCompanies) {
		return nil
	}

	list, err := a.admin.Companies(ctx)
	if err != nil {
		return a.fail("Erro ao carregar empresas", err)
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNOME\tCNPJ\tATIVA")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, masks.CNPJ(c.CNPJ), yesNo(c.IsActive))
	}
	return tw.Flush()
}

func (a *App) findCompany(ctx context.Context, id string) (*models.Company, error) {
	list, err := a.admin.Companies(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (a *App) AddCompany(ctx context.Context) error {
	return a.saveCompany(ctx, "")
}

func (a *App) EditCompany(ctx context.Context, id string) error {
	return a.saveCompany(ctx, id)
}

// saveCompany prompts for name and CNPJ; the CNPJ may be typed masked.
func (a *App) saveCompany(ctx context.Context, id string) error {
	if !a.navigate(ctx, navigation.RouteCompanies) {
		return nil
	}

	var cur models.Company
	if id != "" {
		c, err := a.findCompany(ctx, id)
		if err != nil {
			return a.fail("Erro ao carregar empresa", err)
		}
		if c == nil {
			printlnFn("Empresa não encontrada:", id)
			return nil
		}
		cur = *c
	}

	var (
		in  models.CompanyInput
		err error
	)
	if in.Name, err = GetDefaultText(a.reader, "Nome", cur.Name, a.out); err != nil {
		return err
	}
	if in.CNPJ, err = GetDefaultText(a.reader, "CNPJ", masks.CNPJ(cur.CNPJ), a.out); err != nil {
		return err
	}

	if err := a.admin.SaveCompany(ctx, id, in); err != nil {
		return a.fail("Erro ao salvar empresa", err)
	}
	if id == "" {
		a.success("Empresa criada!")
	} else {
		a.success("Empresa atualizada!")
	}
	return nil
}

func (a *App) Users(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteUsers) {
		return nil
	}

	list, err := a.admin.Users(ctx)
	if err != nil {
		return a.fail("Erro ao carregar usuários", err)
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNOME\tUSUÁRIO\tEMAIL\tTIPO\tATIVO\tCRIADO EM")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Username, u.Email, u.Type, yesNo(u.IsActive), formatDate(u.CreatedAt))
	}
	return tw.Flush()
}

func (a *App) findUser(ctx context.Context, id string) (*models.User, error) {
	list, err := a.admin.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (a *App) readUser(cur models.User, passwordPrompt string) (models.UserInput, error) {
	in := models.UserInput{TargetUserID: cur.ID}
	var err error
	if in.Name, err = GetDefaultText(a.reader, "Nome", cur.Name, a.out); err != nil {
		return in, err
	}
	if in.Email, err = GetDefaultText(a.reader, "Email", cur.Email, a.out); err != nil {
		return in, err
	}
	if in.Username, err = GetDefaultText(a.reader, "Usuário", cur.Username, a.out); err != nil {
		return in, err
	}
	if in.CompanyID, err = GetDefaultText(a.reader, "Empresa (id)", cur.CompanyID, a.out); err != nil {
		return in, err
	}
	in.Password, in.ConfirmPassword, err = a.readPasswordPair(passwordPrompt)
	return in, err
}

// AddUser requires a password and its confirmation.
func (a *App) AddUser(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteUsers) {
		return nil
	}

	in, err := a.readUser(models.User{}, "Senha")
	if err != nil {
		return err
	}
	if err := a.admin.CreateUser(ctx, in); err != nil {
		return a.fail("Erro ao criar usuário", err)
	}
	a.success("Usuário criado!")
	return nil
}

// EditUser leaves the password unchanged when left empty.
func (a *App) EditUser(ctx context.Context, id string) error {
	if !a.navigate(ctx, navigation.RouteUsers) {
		return nil
	}

	cur, err := a.findUser(ctx, id)
	if err != nil {
		return a.fail("Erro ao carregar usuário", err)
	}
	if cur == nil {
		printlnFn("Usuário não encontrado:", id)
		return nil
	}

	in, err := a.readUser(*cur, "Nova senha (vazio mantém a atual)")
	if err != nil {
		return err
	}
	if err := a.admin.EditUser(ctx, in); err != nil {
		return a.fail("Erro ao atualizar usuário", err)
	}
	a.success("Usuário atualizado!")
	return nil
}

// ToggleUser flips the account's active flag.
func (a *App) ToggleUser(ctx context.Context, id string) error {
	if !a.navigate(ctx, navigation.RouteUsers) {
		return nil
	}

	cur, err := a.findUser(ctx, id)
	if err != nil {
		return a.fail("Erro ao carregar usuário", err)
	}
	if cur == nil {
		printlnFn("Usuário não encontrado:", id)
		return nil
	}

	if err := a.admin.SetUserActive(ctx, id, !cur.IsActive); err != nil {
		return a.fail("Erro ao atualizar usuário", err)
	}
	if cur.IsActive {
		a.success("Usuário desativado!")
	} else {
		a.success("Usuário ativado!")
	}
	return nil
}
