package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/metrics"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/services"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

var errUsage = fmt.Errorf("%w: wrong number of arguments", common.ErrInvalidArgument)

// Services groups what the command handlers call into.
type Services struct {
	Accounts     *services.AccountService
	Inventory    *services.InventoryService
	Availability *services.AvailabilityService
	Appointments *services.AppointmentService
	Reservations *services.ReservationService
}

type App struct {
	svc     Services
	logger  logging.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	out     io.Writer
	session *services.Session
}

// NewApp builds the front end. timeout bounds every single command; zero
// disables it. mx may be nil.
func NewApp(svc Services, logger logging.Logger, mx *metrics.Metrics, timeout time.Duration, out io.Writer) *App {
	return &App{svc: svc, logger: logger, metrics: mx, timeout: timeout, out: out}
}

// Run prints the greeting and serves commands from in until the user quits.
// The prompt is shown only when in is a terminal.
func (a *App) Run(ctx context.Context, in io.Reader) {
	prompt := false
	if f, ok := in.(*os.File); ok {
		prompt = isTerminal(int(f.Fd()))
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, msgBanner)
	printCommands(a.out)
	fmt.Fprintln(a.out)

	runREPL(ctx, a, bufio.NewReader(in), a.out, prompt)
}

// Session returns the logged-in identity or nil.
func (a *App) Session() *services.Session {
	return a.session
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// do runs one command under the per-command timeout and records its outcome.
func (a *App) do(ctx context.Context, command string, fn func(ctx context.Context) error) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	err := fn(ctx)
	a.metrics.CommandHandled(command, err)
	if err != nil {
		a.logger.Debug(ctx, "command failed", append(a.session.LogArgs(), "command", command, "error", err)...)
	}
	return err
}
