package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) CreateAccount(_ context.Context, role models.Role, args []string) error {
	return f.record("create_"+string(role), args)
}
func (f *fakeExec) Login(_ context.Context, role models.Role, args []string) error {
	return f.record("login_"+string(role), args)
}
func (f *fakeExec) SearchSchedule(_ context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Reserve(_ context.Context, args []string) error {
	return f.record("reserve", args)
}
func (f *fakeExec) UploadAvailability(_ context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Cancel(_ context.Context, args []string) error {
	return f.record("cancel", args)
}
func (f *fakeExec) AddDoses(_ context.Context, args []string) error {
	return f.record("add_doses", args)
}
func (f *fakeExec) ShowAppointments(_ context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Logout(_ context.Context, args []string) error {
	return f.record("logout", args)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.NewReader(strings.Join([]string{
		"create_patient p Passw0rd!",
		"create_caregiver c Passw0rd!",
		"",
		"login_patient   p Passw0rd!",
		"login_caregiver c Passw0rd!",
		"search_caregiver_schedule 2024-05-01",
		"reserve 2024-05-01 flu",
		"upload_availability 2024-05-01",
		"cancel 1",
		"add_doses flu 5",
		"show_appointments",
		"logout",
		"quit",
		"logout",
	}, "\n"))

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, bufio.NewReader(input), &out, false)

	assert.Equal(t, []string{
		"create_patient p Passw0rd!",
		"create_caregiver c Passw0rd!",
		"login_patient p Passw0rd!",
		"login_caregiver c Passw0rd!",
		"search 2024-05-01",
		"reserve 2024-05-01 flu",
		"upload 2024-05-01",
		"cancel 1",
		"add_doses flu 5",
		"show",
		"logout",
	}, exec.calls, "nothing after quit is dispatched")
	assert.Equal(t, msgBye+"\n", out.String())
}

func TestRunREPL_UnknownCommandAndHelp(t *testing.T) {
	input := strings.NewReader("foobar\nhelp\n")
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, bufio.NewReader(input), &out, false)

	assert.Empty(t, exec.calls)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, msgInvalidCommand, lines[0])
	assert.Equal(t, msgCommandsHeader, lines[1])
	assert.Contains(t, out.String(), "> reserve <date> <vaccine>")
}

func TestRunREPL_PromptAndCancelledContext(t *testing.T) {
	var out bytes.Buffer
	runREPL(context.Background(), &fakeExec{}, bufio.NewReader(strings.NewReader("quit\n")), &out, true)
	assert.Equal(t, "> "+msgBye+"\n", out.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	out.Reset()
	runREPL(ctx, exec, bufio.NewReader(strings.NewReader("logout\n")), &out, true)
	assert.Empty(t, exec.calls)
	assert.Empty(t, out.String())
}

func TestRunREPL_LongLineDoesNotEndSession(t *testing.T) {
	long := strings.Repeat("x", 70000)
	input := strings.NewReader("reserve " + long + "\n" + long + "\nlogout\nquit\n")
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, bufio.NewReader(input), &out, false)

	assert.Equal(t, []string{"reserve " + long, "logout"}, exec.calls)
	assert.Equal(t, msgInvalidCommand+"\n"+msgBye+"\n", out.String())
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader("logout\nshow_appointments")), &out, false)

	assert.Equal(t, []string{"logout", "show"}, exec.calls)
	assert.Empty(t, out.String())
}
