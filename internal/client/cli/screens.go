package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/navigation"
	"github.com/dmitrijs2005/gzapadmin/internal/client/notify"
	"github.com/dmitrijs2005/gzapadmin/internal/client/pagination"
	"github.com/dmitrijs2005/gzapadmin/internal/client/pairing"
	"github.com/dmitrijs2005/gzapadmin/internal/client/poller"
	"github.com/dmitrijs2005/gzapadmin/internal/filex"
	"github.com/dmitrijs2005/gzapadmin/internal/masks"
)

// qrFile is where the last pairing code is written as a PNG.
var qrFile = "gzap-qr.png"

// navigate moves to route and runs the gate over it. It reports whether the
// screen may render; when it may not, the gate has already redirected.
func (a *App) navigate(ctx context.Context, route string) bool {
	if navigation.Path(a.router.Current()) != navigation.Path(route) {
		a.unmountConnection()
	}
	a.router.Replace(route)

	act := a.gate.Activate(ctx, route)
	if act.Wait(ctx) {
		return true
	}
	if to, ok := act.Redirect(); ok {
		switch navigation.Path(to) {
		case navigation.RoutePublic:
			printlnFn("Please login first")
		default:
			printlnFn("Acesso negado, redirecionado para", to)
		}
	}
	return false
}

func (a *App) Home(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteHome) {
		return nil
	}

	name := ""
	id, ok := a.session.Identity()
	if ok {
		name = id.Name
	}
	printlnFn(fmt.Sprintf("Bem-vindo, %s", name))
	printlnFn("Screens: instance, messages")
	if id.IsAdmin() {
		printlnFn("Admin: companies, users")
	}
	return nil
}

// mountConnection starts a poller that re-fetches the connection every
// PollInterval until one is present.
func (a *App) mountConnection(ctx context.Context) *poller.Controller[*models.Connection] {
	a.connMu.Lock()
	defer a.connMu.Unlock()

	if a.connPoller != nil {
		return a.connPoller
	}

	var seenAbsent bool
	fetch := func(ctx context.Context) (*models.Connection, error) {
		conn, err := a.messaging.Connection(ctx)
		if err != nil {
			return nil, err
		}
		if conn == nil {
			seenAbsent = true
		} else if seenAbsent {
			seenAbsent = false
			a.notifier.Notify(notify.Notification{
				Title:       "Sessão conectada",
				Description: masks.Phone(conn.PhoneNumber),
			})
		}
		return conn, nil
	}

	a.connPoller = poller.New(ctx, fetch, poller.Config[*models.Connection]{
		Interval:   a.config.PollInterval,
		Terminal:   func(c *models.Connection) bool { return c != nil },
		ErrorTitle: "Erro ao carregar conexão",
	}, a.notifier, a.logger.With("module", "connection_poller"))
	return a.connPoller
}

func (a *App) unmountConnection() {
	a.connMu.Lock()
	p := a.connPoller
	a.connPoller = nil
	a.connMu.Unlock()

	if p != nil {
		p.Close()
	}
}

// loadConnection fetches the connection through the screen's poller.
func (a *App) loadConnection(ctx context.Context) (*models.Connection, error) {
	conn, err := a.mountConnection(ctx).Refresh(ctx)
	if err != nil && !errors.Is(err, poller.ErrClosed) {
		return nil, err
	}
	return conn, nil
}

func (a *App) renderConnection(conn *models.Connection) {
	if conn == nil {
		printlnFn("Nenhuma sessão conectada.")
		return
	}
	printlnFn("Usuário Conectado")
	printlnFn("  Numero do Telefone :", masks.Phone(conn.PhoneNumber))
	printlnFn("  Data do Login :", formatDate(conn.UpdatedAt))
}

func (a *App) Instance(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteInstance) {
		return nil
	}

	conn, err := a.loadConnection(ctx)
	if err != nil {
		return err
	}
	a.renderConnection(conn)
	if conn == nil {
		if left := a.pairing.Remaining(time.Now()); left > 0 {
			printlnFn("Novo QR-Code em", pairing.Display(left))
		} else {
			printlnFn("Use 'qr' para gerar um QR-Code.")
		}
	} else {
		printlnFn("Use 'disconnect' para desconectar da sessão.")
	}
	return nil
}

// GenerateQR requests a pairing code, saves it as a PNG and starts the
// cooldown shown in the prompt.
func (a *App) GenerateQR(ctx context.Context) error {
	if navigation.Path(a.router.Current()) != navigation.RouteInstance {
		if !a.navigate(ctx, navigation.RouteInstance) {
			return nil
		}
	}

	qr, err := a.pairing.Generate(ctx)
	switch {
	case errors.Is(err, pairing.ErrCoolingDown):
		printlnFn("Aguarde", pairing.Display(a.pairing.Remaining(time.Now())), "para gerar um novo QR-Code")
		return err
	case errors.Is(err, pairing.ErrInFlight):
		printlnFn("QR-Code em geração...")
		return err
	}
	a.watchPairing()
	if err != nil {
		return a.fail("Erro ao gerar QR-Code", err)
	}

	if err := saveDataURL(qr.QRCode, qrFile); err != nil {
		a.logger.Warn(ctx, "could not save qr code", "error", err)
		printlnFn("QR-Code:", qr.QRCode)
	} else {
		printlnFn("QR-Code salvo em", qrFile)
	}

	// the connection appears only after the code is scanned
	_, _ = a.loadConnection(ctx)
	return nil
}

// watchPairing mirrors the cooldown into the prompt until it elapses or the
// App is closed.
func (a *App) watchPairing() {
	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		a.pairing.Watch(a.bgCtx, func(left int) {
			a.pairLeft.Store(int64(left))
		})
	}()
}

func saveDataURL(dataURL, path string) error {
	_, payload, ok := strings.Cut(dataURL, ";base64,")
	if !ok {
		return errors.New("qr code is not a base64 data URL")
	}
	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decode qr code: %w", err)
	}
	return filex.WriteFile(path, img)
}

func (a *App) Disconnect(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteInstance) {
		return nil
	}

	if err := a.messaging.Disconnect(ctx); err != nil {
		return a.fail("Erro ao desconectar da sessão", err)
	}
	a.success("Sessão desconectada!")

	// start over: drop the old poller and look again
	a.unmountConnection()
	conn, err := a.loadConnection(ctx)
	if err != nil {
		return err
	}
	a.renderConnection(conn)
	if a.pairing.CanGenerate() {
		return a.GenerateQR(ctx)
	}
	return nil
}

func (a *App) Messages(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteMessages) {
		return nil
	}

	conn, err := a.loadConnection(ctx)
	if err != nil {
		return err
	}
	a.renderConnection(conn)
	return a.renderMessages(ctx)
}

func (a *App) renderMessages(ctx context.Context) error {
	logs, err := a.messaging.Messages(ctx, a.pager.Page(), a.pager.Limit())
	if err != nil {
		return a.fail("Erro ao carregar mensagens", err)
	}
	a.pager.Loaded(len(logs))

	tw := newTable(a.out)
	fmt.Fprintln(tw, "DATA\tPACIENTE\tTELEFONE\tENVIADA\tMENSAGEM")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatDate(l.CreatedAt), l.PatientName, masks.Phone(l.PhoneNumber), yesNo(l.IsSent), l.Message)
	}
	_ = tw.Flush()

	nav := fmt.Sprintf("Página %d (limite %d)", a.pager.Page(), a.pager.Limit())
	if a.pager.HasPrev() {
		nav += " | prev"
	}
	if a.pager.HasNext() {
		nav += " | next"
	}
	printlnFn(nav)
	return nil
}

func (a *App) onMessages() bool {
	if navigation.Path(a.router.Current()) != navigation.RouteMessages {
		printlnFn("Open the messages screen first")
		return false
	}
	return true
}

func (a *App) NextPage(ctx context.Context) error {
	if !a.onMessages() {
		return nil
	}
	if !a.pager.Next() {
		printlnFn("Não há próxima página")
		return nil
	}
	return a.Messages(ctx)
}

func (a *App) PrevPage(ctx context.Context) error {
	if !a.onMessages() {
		return nil
	}
	if !a.pager.Prev() {
		printlnFn("Já está na primeira página")
		return nil
	}
	return a.Messages(ctx)
}

// SetLimit changes the page size and goes back to page 1.
func (a *App) SetLimit(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err == nil {
		err = a.pager.SetLimit(n)
	}
	if err != nil {
		printlnFn("Usage: limit <n>, n in", fmt.Sprint(pagination.Limits))
		return err
	}
	if a.onMessages() {
		return a.Messages(ctx)
	}
	return nil
}

// ResendFailed is only offered while a connection exists.
func (a *App) ResendFailed(ctx context.Context) error {
	if !a.navigate(ctx, navigation.RouteMessages) {
		return nil
	}

	conn, err := a.loadConnection(ctx)
	if err != nil {
		return err
	}
	if err := a.messaging.ResendFailed(ctx, conn); err != nil {
		return a.fail("Erro ao reenviar mensagens", err)
	}
	a.success("Mensagens reenviadas!")
	return a.renderMessages(ctx)
}
