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
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Check(ctx context.Context, args []string) error
	SignUp(ctx context.Context, args []string) error
	InitRemote(ctx context.Context, args []string) error
	Products(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	AddUser(ctx context.Context, args []string) error
	Passwd(ctx context.Context, args []string) error
	Role(ctx context.Context, args []string) error
	DelUser(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

type access int

const (
	anyone access = iota
	guest
	member
	admin
)

type command struct {
	run    func(execIface, context.Context, []string) error
	access access
}

var commands = map[string]command{
	"login":    {execIface.Login, guest},
	"signup":   {execIface.SignUp, guest},
	"init":     {execIface.InitRemote, anyone},
	"logout":   {execIface.Logout, member},
	"whoami":   {execIface.Whoami, member},
	"check":    {execIface.Check, member},
	"products": {execIface.Products, member},
	"ls":       {execIface.Products, member},
	"update":   {execIface.Update, member},
	"stats":    {execIface.Stats, member},
	"add":      {execIface.Add, admin},
	"delete":   {execIface.Delete, admin},
	"users":    {execIface.Users, admin},
	"adduser":  {execIface.AddUser, admin},
	"passwd":   {execIface.Passwd, admin},
	"role":     {execIface.Role, admin},
	"deluser":  {execIface.DelUser, admin},
}

const (
	helpGuest  = "Available commands: login, signup, init, exit"
	helpMember = "Available commands: products [filter], update <id>, stats, whoami, check, logout, exit"
	helpAdmin  = "Admin commands: add, delete <id>, users, adduser, passwd <id>, role <id> [role], deluser <id>, init"
)

// runREPL reads commands line by line and dispatches them to a.
//
// The first token is the command, the rest are its arguments. Commands are
// gated by login state and role. The loop exits on EOF, when the user types
// "exit" or "quit", or when ctx is done.
//
// Errors returned by command handlers are not printed here; handlers report
// their own outcome.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("lpg %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Input error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		switch name {
		case "help":
			printHelp(a)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := commands[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		switch {
		case cmd.access == guest && a.isLoggedIn():
			printlnFn("Already logged in, use logout first")
		case cmd.access >= member && !a.isLoggedIn():
			printlnFn("Please log in first")
		case cmd.access == admin && !a.isAdmin():
			printlnFn("Admin access required")
		default:
			_ = cmd.run(a, ctx, args)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn(helpGuest)
		return
	}
	printlnFn(helpMember)
	if a.isAdmin() {
		printlnFn(helpAdmin)
	}
}
