package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	CreateAccount(ctx context.Context, role models.Role, args []string) error
	Login(ctx context.Context, role models.Role, args []string) error
	SearchSchedule(ctx context.Context, args []string) error
	Reserve(ctx context.Context, args []string) error
	UploadAvailability(ctx context.Context, args []string) error
	Cancel(ctx context.Context, args []string) error
	AddDoses(ctx context.Context, args []string) error
	ShowAppointments(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
}

func printCommands(out io.Writer) {
	fmt.Fprintln(out, msgCommandsHeader)
	for _, c := range commandList {
		fmt.Fprintln(out, c)
	}
}

// runREPL reads commands from in until "quit", end of input or ctx is
// done. The first token of a line is the command, the rest are its
// arguments. Empty lines are skipped; unknown commands are reported and the
// loop goes on. When prompt is set a "> " prompt is written before each read.
//
// Errors returned by handlers are ignored here; handlers print their own
// one-line message.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer, prompt bool) {
	for ctx.Err() == nil {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		// lines are not length-limited; a last line without '\n' still runs
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "create_patient":
			_ = a.CreateAccount(ctx, models.RolePatient, args)
		case "create_caregiver":
			_ = a.CreateAccount(ctx, models.RoleCaregiver, args)
		case "login_patient":
			_ = a.Login(ctx, models.RolePatient, args)
		case "login_caregiver":
			_ = a.Login(ctx, models.RoleCaregiver, args)
		case "search_caregiver_schedule":
			_ = a.SearchSchedule(ctx, args)
		case "reserve":
			_ = a.Reserve(ctx, args)
		case "upload_availability":
			_ = a.UploadAvailability(ctx, args)
		case "cancel":
			_ = a.Cancel(ctx, args)
		case "add_doses":
			_ = a.AddDoses(ctx, args)
		case "show_appointments":
			_ = a.ShowAppointments(ctx, args)
		case "logout":
			_ = a.Logout(ctx, args)
		case "help":
			printCommands(out)
		case "quit":
			fmt.Fprintln(out, msgBye)
			return
		default:
			fmt.Fprintln(out, msgInvalidCommand)
		}
	}
}
