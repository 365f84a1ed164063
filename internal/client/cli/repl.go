package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error

	ListDocuments(ctx context.Context, args []string) error
	ShowDocument(ctx context.Context, args []string) error
	AddDocument(ctx context.Context, args []string) error
	EditDocument(ctx context.Context, args []string) error
	DeleteDocument(ctx context.Context, args []string) error
	Pages(ctx context.Context, args []string) error
	Preview(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Fetch(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error

	ListUsers(ctx context.Context, args []string) error
	ShowUser(ctx context.Context, args []string) error
	AddUser(ctx context.Context, args []string) error
	EditUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
}

var _ execIface = (*App)(nil)

type command struct {
	name  string
	usage string
	run   func(execIface, context.Context, []string) error
	auth  bool
	admin bool
}

var commands = []command{
	{name: "register", usage: "register", run: execIface.Register},
	{name: "login", usage: "login", run: execIface.Login},
	{name: "logout", usage: "logout", run: execIface.Logout, auth: true},
	{name: "whoami", usage: "whoami", run: execIface.WhoAmI, auth: true},

	{name: "docs", usage: "docs [page]", run: execIface.ListDocuments},
	{name: "doc", usage: "doc <id>", run: execIface.ShowDocument},
	{name: "pages", usage: "pages <id>", run: execIface.Pages},
	{name: "preview", usage: "preview <id> <page>", run: execIface.Preview},
	{name: "download", usage: "download <id>", run: execIface.Download},
	{name: "fetch", usage: "fetch <id> [file]", run: execIface.Fetch},
	{name: "copy", usage: "copy [id]", run: execIface.Copy},
	{name: "adddoc", usage: "adddoc", run: execIface.AddDocument, auth: true, admin: true},
	{name: "editdoc", usage: "editdoc <id>", run: execIface.EditDocument, auth: true, admin: true},
	{name: "deldoc", usage: "deldoc <id>", run: execIface.DeleteDocument, auth: true, admin: true},

	{name: "users", usage: "users [page]", run: execIface.ListUsers, auth: true, admin: true},
	{name: "user", usage: "user <id>", run: execIface.ShowUser, auth: true, admin: true},
	{name: "adduser", usage: "adduser", run: execIface.AddUser, auth: true, admin: true},
	{name: "edituser", usage: "edituser <id>", run: execIface.EditUser, auth: true, admin: true},
	{name: "deluser", usage: "deluser <id>", run: execIface.DeleteUser, auth: true, admin: true},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// available lists the commands usable in the current session state.
func available(a execIface) []string {
	var out []string
	for _, c := range commands {
		if c.auth && !a.isLoggedIn() {
			continue
		}
		if c.admin && !a.isAdmin() {
			continue
		}
		out = append(out, c.usage)
	}
	return append(out, "help", "exit")
}

// runREPL starts a read-eval-print loop over reader.
//
// The first token of each line names the command; the rest are passed to
// the handler as arguments. Handler errors are printed and the loop goes on.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands marked auth are refused without a session, and commands marked
// admin are refused for non-admin sessions.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sh %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Error:", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn("Available commands: " + strings.Join(available(a), ", "))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := lookupCommand(name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if cmd.auth && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if cmd.admin && !a.isAdmin() {
			printlnFn("Admin access required")
			continue
		}

		if err := cmd.run(a, ctx, args); err != nil {
			printlnFn("Error:", message(err))
		}
	}
}

var errUsage = errors.New("wrong arguments")

func usageError(usage string) error {
	return fmt.Errorf("%w, usage: %s", errUsage, usage)
}
