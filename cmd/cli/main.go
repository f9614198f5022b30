package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/dmitrijs2005/mapme/internal/buildinfo"
	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/cli"
	"github.com/dmitrijs2005/mapme/internal/client/config"
	"github.com/dmitrijs2005/mapme/internal/client/gate"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/client/sessionstore"
	"github.com/dmitrijs2005/mapme/internal/client/storage"
	"github.com/dmitrijs2005/mapme/internal/filex"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}

}

// run wires the client and serves the REPL. Deferred cleanups run on every
// return path.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if missing := cfg.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing settings: %s", strings.Join(missing, ", "))
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	store, closeStore, err := openSessionStore(ctx, cfg.SessionDBPath)
	if err != nil {
		return err
	}
	defer closeStore()

	cognito, err := identity.NewCognitoFromConfig(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	uploader, err := storage.NewUploaderFromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}

	backend := api.NewClient(cfg.APIBase, cfg.RequestTimeout, cognito, logger)

	failures := &failureTally{}
	defer failures.report(ctx, logger, cfg.FailOpenProfileCheck)
	g := gate.New(cognito, backend, gate.Policy{
		FailOpen: cfg.FailOpenProfileCheck,
		Observer: failures.observe,
	}, logger)

	app := cli.NewApp(cli.Deps{
		Provider: cognito,
		Backend:  backend,
		Uploader: uploader,
		Gate:     g,
		Logger:   logger,
		In:       os.Stdin,
		Out:      os.Stdout,
	})

	return app.Run(ctx, nav.Landing)
}

// openSessionStore opens the SQLite session store at path. An empty path
// keeps the session in memory for this run only.
func openSessionStore(ctx context.Context, path string) (sessionstore.Store, func(), error) {
	if path == "" {
		return sessionstore.NewMemory(), func() {}, nil
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}
	db, err := sessionstore.OpenDatabase(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return sessionstore.NewSQLiteStore(db), func() { _ = db.Close() }, nil
}

// failureTally counts the profile checks the gate swallowed.
type failureTally struct {
	n atomic.Int64
}

func (t *failureTally) observe(context.Context, error) { t.n.Add(1) }

// report logs one summary line when any check failed.
func (t *failureTally) report(ctx context.Context, logger logging.Logger, failOpen bool) {
	if n := t.n.Load(); n > 0 {
		logger.Warn(ctx, "profile checks failed this session", "count", n, "fail_open", failOpen)
	}
}
