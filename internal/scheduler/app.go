// Package scheduler wires the vaccine scheduler together: it opens and
// migrates the store, builds the services and runs the command REPL next to
// the optional ops server until the user quits or a signal arrives.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/cli"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/config"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/metrics"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/notify"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/opsserver"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/services"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sqlx.DB
	registry  *prometheus.Registry
	publisher notify.Publisher
	cli       *cli.App
}

// NewApp opens the store and builds every component. Command output goes to
// stdout, logs to stderr. Failing to reach or migrate the store is fatal; an
// unreachable Redis only disables booking events.
func NewApp(ctx context.Context, c *config.Config, stdout, stderr io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager()

	db, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mx := metrics.New(registry)

	var publisher notify.Publisher = notify.NopPublisher{}
	if c.RedisURL != "" {
		p, err := notify.NewRedisPublisher(ctx, c.RedisURL, c.EventsChannel, c.StoreTimeout)
		if err != nil {
			logger.Warn(ctx, "booking events disabled", "error", err)
		} else {
			publisher = p
		}
	}

	svc := cli.Services{
		Accounts:     services.NewAccountService(db, rm, logger),
		Inventory:    services.NewInventoryService(db, rm, logger),
		Availability: services.NewAvailabilityService(db, rm, logger),
		Appointments: services.NewAppointmentService(db, rm, logger),
		Reservations: services.NewReservationService(db, rm, logger, mx, publisher),
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		registry:  registry,
		publisher: publisher,
		cli:       cli.NewApp(svc, logger, mx, c.StoreTimeout, stdout),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// startOpsServer serves /healthz and /metrics until ctx is done. A failure
// disables the ops endpoints only; the command session keeps running.
func (app *App) startOpsServer(ctx context.Context) {
	s := opsserver.New(app.config.MetricsAddr, app.db, app.registry, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Warn(ctx, "ops server disabled", "error", err)
	}
}

// Run serves commands from stdin until quit, end of input or a signal, then
// stops the ops server and releases the store.
func (app *App) Run(ctx context.Context, stdin io.Reader) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startOpsServer(ctx)
		}()
	}

	// a pending read on stdin would otherwise outlive a signal
	if c, ok := stdin.(io.Closer); ok {
		go func() {
			<-ctx.Done()
			_ = c.Close()
		}()
	}

	app.cli.Run(ctx, stdin)

	cancelFunc()
	wg.Wait()
	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if err := app.publisher.Close(); err != nil {
		app.logger.Warn(ctx, "closing publisher", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}
