package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type commandFn func(ctx context.Context, args []string) error

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Ping(ctx context.Context) error

	Boards(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Use(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Goal(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpBoards    = "Boards: boards, new <3|4|5> <name>, use <n>, show [n], goal <row> <col> [text], toggle <row> <col>, rename <name>, delete [n]"
	helpAnonymous = "Account: register, login, ping, exit"
	helpSignedIn  = "Account: sync, logout, ping, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF, on "exit"/"quit", or when ctx is cancelled. Command
// errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	board := map[string]commandFn{
		"boards": a.Boards,
		"l":      a.Boards,
		"list":   a.Boards,
		"new":    a.New,
		"use":    a.Use,
		"show":   a.Show,
		"goal":   a.Goal,
		"toggle": a.Toggle,
		"t":      a.Toggle,
		"rename": a.Rename,
		"delete": a.Delete,
	}
	account := map[string]func(context.Context) error{
		"register": a.Register,
		"login":    a.Login,
		"logout":   a.Logout,
		"sync":     a.Sync,
		"ping":     a.Ping,
	}

	for ctx.Err() == nil {
		fmt.Fprintf(out, "bingo %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch {
		case cmd == "help":
			fmt.Fprintln(out, helpBoards)
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpSignedIn)
			} else {
				fmt.Fprintln(out, helpAnonymous)
			}
		case cmd == "exit" || cmd == "quit":
			fmt.Fprintln(out, "Bye!")
			return
		case board[cmd] != nil:
			cmdErr = board[cmd](ctx, args)
		case account[cmd] != nil:
			cmdErr = account[cmd](ctx)
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}
