// Package gate decides whether a protected screen may render.
//
// Every protected route goes through Gate.Activate first. An activation
// checks the session credential, starts the idle countdown, optionally
// resolves the operator's identity for role checks, and answers CanRender.
// Redirects are issued through a navigation.Navigator; they are control flow,
// never errors.
package gate

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/activity"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/navigation"
	"github.com/dmitrijs2005/gzapadmin/internal/client/session"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
)

// IdentityFetcher resolves the signed-in operator (GET /users/me).
type IdentityFetcher interface {
	Me(ctx context.Context) (*models.Identity, error)
}

type Options struct {
	// IdleTimeout is the idle budget in ticks (seconds with the default Tick).
	IdleTimeout int
	Tick        time.Duration

	// RoleGating fetches the identity and keeps "user" accounts out of
	// AdminRoutes.
	RoleGating  bool
	AdminRoutes []string

	// FailOpenOnIdentityError renders the screen ungated when the identity
	// fetch fails. When false the activation redirects to PublicRoute.
	FailOpenOnIdentityError bool

	PublicRoute  string
	ExpiredRoute string
	DefaultRoute string
}

func DefaultOptions() Options {
	return Options{
		IdleTimeout:             DefaultIdleSeconds,
		Tick:                    time.Second,
		RoleGating:              true,
		AdminRoutes:             navigation.AdminRoutes,
		FailOpenOnIdentityError: true,
		PublicRoute:             navigation.RoutePublic,
		ExpiredRoute:            navigation.RouteRedirected,
		DefaultRoute:            navigation.RouteHome,
	}
}

func (o *Options) applyDefaults() {
	d := DefaultOptions()
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = d.IdleTimeout
	}
	if o.Tick <= 0 {
		o.Tick = d.Tick
	}
	if o.PublicRoute == "" {
		o.PublicRoute = d.PublicRoute
	}
	if o.ExpiredRoute == "" {
		o.ExpiredRoute = d.ExpiredRoute
	}
	if o.DefaultRoute == "" {
		o.DefaultRoute = d.DefaultRoute
	}
}

// Gate owns at most one live activation. Activating again, or closing the
// gate, tears the previous one down first.
//
// Navigator implementations must not call back into the gate synchronously
// from Replace; redirects are issued from the activation's own goroutines.
type Gate struct {
	session  session.Context
	fetcher  IdentityFetcher
	nav      navigation.Navigator
	activity activity.Source
	logger   logging.Logger
	opts     Options

	mu      sync.Mutex
	current *Activation
}

func New(sess session.Context, fetcher IdentityFetcher, nav navigation.Navigator, act activity.Source, logger logging.Logger, opts Options) *Gate {
	opts.applyDefaults()
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{
		session:  sess,
		fetcher:  fetcher,
		nav:      nav,
		activity: act,
		logger:   logger,
		opts:     opts,
	}
}

// Activate runs the gate for route. The credential check is synchronous;
// identity resolution continues in the background (see Activation.Wait).
func (g *Gate) Activate(ctx context.Context, route string) *Activation {
	g.mu.Lock()
	prev := g.current
	g.current = nil
	g.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	a := &Activation{
		gate:     g,
		route:    route,
		idle:     NewIdleCountdown(g.opts.IdleTimeout),
		resolved: make(chan struct{}),
	}
	a.start(ctx)

	g.mu.Lock()
	g.current = a
	g.mu.Unlock()
	return a
}

// Current returns the live activation, if any.
func (g *Gate) Current() *Activation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Close tears down the live activation.
func (g *Gate) Close() {
	g.mu.Lock()
	a := g.current
	g.current = nil
	g.mu.Unlock()
	if a != nil {
		a.Close()
	}
}

// Activation is one pass of the gate over one route.
type Activation struct {
	gate  *Gate
	route string
	idle  *IdleCountdown

	mu         sync.Mutex
	state      State
	identity   *models.Identity
	failedOpen bool
	redirect   string
	closed     bool

	cancel       context.CancelFunc
	unsubscribe  func()
	wg           sync.WaitGroup
	resolved     chan struct{}
	resolvedOnce sync.Once
	closeOnce    sync.Once
}

func (a *Activation) start(parent context.Context) {
	g := a.gate

	if tkn, ok := g.session.Credential(); !ok || tkn == "" {
		a.setState(StateNoCredential)
		a.markResolved()
		g.logger.Info(parent, "no credential, leaving protected route", "route", a.route)
		a.issueRedirect(g.opts.PublicRoute)
		return
	}

	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel
	a.setState(StateAuthenticated)

	if g.activity != nil {
		a.unsubscribe = g.activity.Subscribe(a.idle.Reset)
	}

	a.wg.Add(1)
	go a.runIdle(ctx)

	if !g.opts.RoleGating || g.fetcher == nil {
		a.markResolved()
		return
	}

	a.setState(StateIdentityPending)
	a.wg.Add(1)
	go a.resolveIdentity(ctx)
}

func (a *Activation) runIdle(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.gate.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.idle.Tick() < 1 {
				a.gate.logger.Info(ctx, "idle budget exhausted", "route", a.route)
				a.issueRedirect(a.gate.opts.ExpiredRoute)
				return
			}
		}
	}
}

func (a *Activation) resolveIdentity(ctx context.Context) {
	defer a.wg.Done()
	defer a.markResolved()

	g := a.gate
	id, err := g.fetcher.Me(ctx)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		g.logger.Warn(ctx, "identity fetch failed", "route", a.route, "error", err, "fail_open", g.opts.FailOpenOnIdentityError)
		a.mu.Lock()
		a.state = StateIdentityFailed
		a.failedOpen = g.opts.FailOpenOnIdentityError
		a.mu.Unlock()
		if !g.opts.FailOpenOnIdentityError {
			a.issueRedirect(g.opts.PublicRoute)
		}
		return
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.state = StateIdentityResolved
	a.identity = id
	a.mu.Unlock()
	g.session.SetIdentity(id)

	if id.Type == models.UserTypeUser && navigation.Contains(g.opts.AdminRoutes, a.route) {
		g.logger.Info(ctx, "admin-only route denied", "route", a.route, "user", id.Username)
		a.issueRedirect(g.opts.DefaultRoute)
	}
}

// issueRedirect navigates at most once per activation and never after Close.
func (a *Activation) issueRedirect(route string) {
	a.mu.Lock()
	if a.closed || a.redirect != "" {
		a.mu.Unlock()
		return
	}
	a.redirect = route
	a.mu.Unlock()

	a.gate.nav.Replace(route)
}

func (a *Activation) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Activation) markResolved() {
	a.resolvedOnce.Do(func() { close(a.resolved) })
}

func (a *Activation) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Activation) Route() string {
	return a.route
}

// Identity returns the identity resolved by this activation.
func (a *Activation) Identity() (*models.Identity, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity, a.identity != nil
}

// Redirect returns the route this activation navigated to, if any.
func (a *Activation) Redirect() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redirect, a.redirect != ""
}

// IdleRemaining reports the seconds left in the idle budget.
func (a *Activation) IdleRemaining() int {
	return a.idle.Remaining()
}

// CanRender reports whether the wrapped screen may be shown now.
func (a *Activation) CanRender() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.redirect != "" {
		return false
	}
	switch a.state {
	case StateAuthenticated:
		return !a.gate.opts.RoleGating || a.gate.fetcher == nil
	case StateIdentityResolved:
		return true
	case StateIdentityFailed:
		return a.failedOpen
	default:
		return false
	}
}

// Wait blocks until the activation has settled (identity resolved, failed,
// or not needed) or ctx is done, then reports CanRender.
func (a *Activation) Wait(ctx context.Context) bool {
	select {
	case <-a.resolved:
	case <-ctx.Done():
	}
	return a.CanRender()
}

// Close releases the idle ticker, the activity subscription and the
// identity fetch. When Close returns no callback of this activation runs.
func (a *Activation) Close() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()

		if a.cancel != nil {
			a.cancel()
		}
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		a.wg.Wait()
		a.markResolved()
	})
}
