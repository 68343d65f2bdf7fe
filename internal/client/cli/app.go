package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/activity"
	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/config"
	"github.com/dmitrijs2005/gzapadmin/internal/client/gate"
	"github.com/dmitrijs2005/gzapadmin/internal/client/health"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/navigation"
	"github.com/dmitrijs2005/gzapadmin/internal/client/notify"
	"github.com/dmitrijs2005/gzapadmin/internal/client/pagination"
	"github.com/dmitrijs2005/gzapadmin/internal/client/pairing"
	"github.com/dmitrijs2005/gzapadmin/internal/client/poller"
	"github.com/dmitrijs2005/gzapadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gzapadmin/internal/client/services"
	"github.com/dmitrijs2005/gzapadmin/internal/client/session"
	"github.com/dmitrijs2005/gzapadmin/internal/client/timerstore"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

// healthService is the service name the relay registers with gRPC health.
const healthService = "gzap.relay"

type App struct {
	config *config.Config
	logger logging.Logger

	session   *session.Store
	api       client.Client
	auth      services.AuthService
	admin     services.AdminService
	messaging services.MessagingService

	db       *sql.DB
	timers   *timerstore.Store
	pairing  *pairing.Controller
	pager    *pagination.Pager
	activity *activity.Hub
	router   *navigation.Router
	gate     *gate.Gate
	notifier notify.Notifier
	watcher  *health.Watcher
	checker  *health.GRPCChecker

	// connPoller lives as long as the screen that mounted it.
	connMu     sync.Mutex
	connPoller *poller.Controller[*models.Connection]

	// pairLeft is the pairing cooldown shown in the prompt.
	pairLeft atomic.Int64

	// bgCtx scopes workers that outlive a single command; Close cancels it
	// and waits on bg.
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bg       sync.WaitGroup

	// redirects carries routes the gate replaced from its own goroutines.
	redirects chan string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the state database, builds the relay client and assembles the
// console around them.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing state database: %w", err)
	}

	sess := session.NewStore()
	api := client.NewHTTPClient(c.APIBaseURL, sess,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RateLimit),
		client.WithLogger(logger.With("module", "http_client")),
	)

	app, err := newApp(ctx, c, sess, api, db, os.Stdin, os.Stdout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, sess *session.Store, api client.Client, db *sql.DB, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	a := &App{
		config:    c,
		logger:    logger,
		session:   sess,
		api:       api,
		auth:      services.NewAuthService(api, sess),
		admin:     services.NewAdminService(api),
		messaging: services.NewMessagingService(api),
		db:        db,
		timers:    timerstore.New(metadata.NewSQLiteRepository(db)),
		pager:     pagination.New(),
		activity:  activity.NewHub(),
		router:    navigation.NewRouter(navigation.RoutePublic, logger.With("module", "router")),
		notifier:  notify.NewTerminal(out, logger),
		redirects: make(chan string, 8),
		reader:    bufio.NewReader(in),
		out:       out,
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	p, err := pairing.New(ctx, a.timers, api,
		pairing.WithCooldown(c.PairingCooldown),
		pairing.WithLogger(logger.With("module", "pairing")),
	)
	if err != nil {
		a.bgCancel()
		return nil, err
	}
	a.pairing = p

	opts := gate.DefaultOptions()
	opts.IdleTimeout = c.IdleSeconds()
	opts.FailOpenOnIdentityError = c.FailOpenOnIdentityError
	a.gate = gate.New(sess, a.auth, a.router, a.activity, logger.With("module", "gate"), opts)

	// runs on the gate's goroutines; must not block or re-enter the gate
	a.router.OnChange(func(from, to string) {
		if navigation.IsRedirected(to) {
			a.notifier.Notify(notify.Notification{
				Title:       "Sessão expirada",
				Description: "Faça login novamente.",
			})
		}
		select {
		case a.redirects <- to:
		default:
		}
	})

	var checker health.Checker = health.CheckFunc(a.auth.Ping)
	if c.HealthAddr != "" {
		gp, err := health.NewGRPCChecker(c.HealthAddr, healthService)
		if err != nil {
			a.bgCancel()
			return nil, err
		}
		a.checker = gp
		checker = gp
	}
	a.watcher = health.NewWatcher(checker, c.OnlineCheckInterval, logger.With("module", "health"))
	a.watcher.OnChange(func(m health.Mode) {
		a.logger.Info(context.Background(), "relay connectivity changed", "mode", string(m))
	})

	if left := p.Remaining(time.Now()); left > 0 {
		a.pairLeft.Store(int64(left))
		a.watchPairing()
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	go a.watcher.Run(ctx)

	printlnFn("GZAP admin console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(lineReader{a.reader}))
}

// lineReader hands out at most one line per Read, so a Scanner on top of it
// never buffers input that a prompt reads next from the same reader.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}

// Close stops every background worker and releases the state database.
func (a *App) Close() {
	a.bgCancel()
	a.bg.Wait()
	a.unmountConnection()
	a.gate.Close()
	if a.checker != nil {
		_ = a.checker.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	tkn, ok := a.session.Credential()
	return ok && tkn != ""
}

// touch feeds the idle countdown; every line the operator types counts.
func (a *App) touch() {
	a.activity.Notify()
}

func (a *App) getStatus() string {
	s := navigation.Path(a.router.Current())
	if id, ok := a.session.Identity(); ok && a.isLoggedIn() {
		s = id.Username + " " + s
	}
	if m := a.watcher.Mode(); m != health.ModeUnknown {
		s += " " + string(m)
	}
	if left := a.pairLeft.Load(); left > 0 {
		s += " qr " + pairing.Display(int(left))
	}
	return "(" + s + ")"
}

// drainRedirects handles routes the gate replaced while the REPL was waiting
// for input.
func (a *App) drainRedirects() {
	for {
		select {
		case to := <-a.redirects:
			if navigation.Path(to) == navigation.RoutePublic {
				a.unmountConnection()
				a.gate.Close()
			}
		default:
			return
		}
	}
}
