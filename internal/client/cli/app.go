package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/k4jlpg/inventory/internal/client/client"
	"github.com/k4jlpg/inventory/internal/client/config"
	"github.com/k4jlpg/inventory/internal/client/dashboard"
	"github.com/k4jlpg/inventory/internal/client/dispatch"
	"github.com/k4jlpg/inventory/internal/client/localstore"
	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/netcheck"
	"github.com/k4jlpg/inventory/internal/client/services"
	"github.com/k4jlpg/inventory/internal/client/session"
	"github.com/k4jlpg/inventory/internal/filex"
	"github.com/k4jlpg/inventory/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

var errLoopStopped = errors.New("dispatch loop stopped")

// coordinator is the part of services.Coordinator the console drives.
type coordinator interface {
	Initialize(ctx context.Context) services.Result[struct{}]
	SignIn(ctx context.Context, username, password string) services.Result[*models.User]
	SignUp(ctx context.Context, username, password string, role models.Role) services.Result[*models.User]
	SignOut(ctx context.Context) services.Result[struct{}]
	CheckSession(ctx context.Context) services.Result[*models.User]
	CurrentUser() *models.User
	GetProducts(ctx context.Context) services.Result[[]models.Product]
	AddProduct(ctx context.Context, in models.ProductInput) services.Result[*models.Product]
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) services.Result[*models.Product]
	DeleteProduct(ctx context.Context, id string) services.Result[struct{}]
	GetUsers(ctx context.Context) services.Result[[]models.User]
	AddUser(ctx context.Context, username, password string, role models.Role) services.Result[*models.User]
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) services.Result[*models.User]
	DeleteUser(ctx context.Context, id string) services.Result[struct{}]
	InitializeRemote(ctx context.Context) services.Result[string]
	LastProductSync(ctx context.Context) services.Result[time.Time]
}

// watcher reports connectivity changes; netcheck.Prober implements it.
type watcher interface {
	Watch(ctx context.Context, interval time.Duration, fn func(online bool))
}

type App struct {
	config  *config.Config
	coord   coordinator
	watcher watcher
	loop    *dispatch.Loop
	dash    *dashboard.Dashboard
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
	mode    atomic.Value
	closers []io.Closer
}

// NewApp opens the local stores named in c and wires the coordinator.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	for _, p := range []string{c.CacheDBPath, c.SettingsDBPath} {
		if err := filex.EnsureParentDir(p); err != nil {
			return nil, err
		}
	}

	store, err := localstore.Open(ctx, c.CacheDBPath,
		localstore.WithLogger(logger), localstore.WithHashedCredentials(c.HashCredentials))
	if err != nil {
		logger.Error(ctx, "error opening local database", "path", c.CacheDBPath, "error", err)
		return nil, err
	}

	sessions, err := session.Open(ctx, c.SettingsDBPath, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	prober := netcheck.NewProber(c.APIBaseURL, c.ProbeTimeout, logger)
	remote := client.NewHTTPClient(c.APIBaseURL, c.ServiceKey, sessions, c.RequestTimeout, logger)
	coord := services.New(store, remote, prober, sessions, logger)

	app := newApp(coord, bufio.NewReader(os.Stdin), os.Stdout)
	app.config = c
	app.watcher = prober
	app.log = logger
	app.closers = []io.Closer{sessions, store}
	return app, nil
}

func newApp(coord coordinator, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		coord:  coord,
		loop:   dispatch.NewLoop(16),
		dash:   dashboard.New(),
		reader: reader,
		out:    out,
		log:    logging.Nop(),
	}
	a.mode.Store(ModeUnknown)
	return a
}

// Close releases the local stores.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Run initializes the local store and serves the REPL until the user exits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.loop.Run(ctx)
	defer a.loop.Stop()

	var initErr error
	if err := call(a, func() services.Result[struct{}] { return a.coord.Initialize(ctx) },
		func(r services.Result[struct{}]) {
			if !r.Success {
				initErr = errors.New(r.Message)
			}
		}); err != nil {
		return err
	}
	if initErr != nil {
		return initErr
	}

	if a.watcher != nil && a.config != nil {
		go a.watcher.Watch(ctx, a.config.OnlineCheckInterval, func(online bool) {
			a.loop.Post(func() { a.setMode(online) })
		})
	}

	a.printf("Welcome to K4J LPG Center inventory (type 'help' for commands)\n")
	if u := a.coord.CurrentUser(); u != nil {
		a.printf("Restored session for %s (%s)\n", u.Username, u.Role)
	} else {
		_ = a.Login(ctx, nil)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) setMode(online bool) {
	mode := ModeOffline
	if online {
		mode = ModeOnline
	}
	if a.mode.Swap(mode) != mode {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	return a.mode.Load().(Mode)
}

func (a *App) getStatus() string {
	s := ""
	if u := a.coord.CurrentUser(); u != nil {
		s = u.Username + " "
	}
	if m := a.currentMode(); m != ModeUnknown {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.coord.CurrentUser() != nil
}

func (a *App) isAdmin() bool {
	u := a.coord.CurrentUser()
	return u != nil && u.IsAdmin()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// call runs work off the REPL goroutine and blocks until render has run on
// the dispatch loop.
func call[T any](a *App, work func() T, render func(T)) error {
	if !dispatch.Call(a.loop, work, render) {
		return errLoopStopped
	}
	return nil
}

// submit runs work off the REPL goroutine and renders on the loop without
// waiting.
func submit[T any](a *App, work func() T, render func(T)) {
	dispatch.Submit(a.loop, work, render)
}

// report prints the outcome of a coordinator call that returns no data.
func report[T any](a *App, r services.Result[T], success string) error {
	if !r.Success {
		a.printf("Error: %s\n", r.Message)
		return errors.New(r.Message)
	}
	if r.Message != "" {
		a.printf("Warning: %s\n", r.Message)
	}
	if success != "" {
		a.printf("%s\n", success)
	}
	return nil
}
