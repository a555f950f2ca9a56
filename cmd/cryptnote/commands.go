package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"cryptnote-backend/internal/client"
)

const usage = `usage: cryptnote [-api URL] [-token-file PATH] <command> [args]

commands:
  signup              create an account
  login               sign in and remember the session
  logout              forget the session
  whoami              show the signed-in user
  notes               list notes, newest first
  add                 add a note
  edit <id>           change a note (empty input keeps a field)
  delete <id>         delete a note
  forgot              email a password reset link
  reset <token>       set a new password with a reset token
  sendotp             email a signup code
  verifyotp           check a signup code
`

type app struct {
	in           io.Reader
	out          io.Writer
	readPassword func(w io.Writer, prompt string) (string, error)

	reader  *bufio.Reader
	session *client.Session
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cryptnote", flag.ContinueOnError)
	fs.SetOutput(a.out)
	apiURL := fs.String("api", defaultAPIURL(), "base URL of the CryptNote API")
	tokenFile := fs.String("token-file", defaultTokenFile(), "file that keeps the session token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	if a.session == nil {
		s, err := newSession(*apiURL, *tokenFile)
		if err != nil {
			return err
		}
		a.session = s
	}
	a.reader = bufio.NewReader(a.in)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	cmd, cmdArgs := rest[0], rest[1:]
	err := a.dispatch(ctx, cmd, cmdArgs)
	if errors.Is(err, client.ErrNotLoggedIn) || client.IsUnauthorized(err) {
		return errors.New("please log in first: cryptnote login")
	}
	return err
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		if err := a.session.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Logged out")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "notes":
		return a.listNotes(ctx)
	case "add":
		return a.addNote(ctx)
	case "edit":
		if len(args) != 1 {
			return errors.New("usage: cryptnote edit <id>")
		}
		return a.editNote(ctx, args[0])
	case "delete":
		if len(args) != 1 {
			return errors.New("usage: cryptnote delete <id>")
		}
		if err := a.session.Notes.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Note has been Deleted")
		return nil
	case "forgot":
		return a.forgot(ctx)
	case "reset":
		if len(args) != 1 {
			return errors.New("usage: cryptnote reset <token>")
		}
		return a.reset(ctx, args[0])
	case "sendotp":
		return a.sendOtp(ctx)
	case "verifyotp":
		return a.verifyOtp(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) signup(ctx context.Context) error {
	name, err := prompt(a.reader, a.out, "Name: ")
	if err != nil {
		return err
	}
	email, err := prompt(a.reader, a.out, "Email: ")
	if err != nil {
		return err
	}
	exists, err := a.session.API.CheckEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("an account with this email already exists")
	}
	password, err := a.readPassword(a.out, "Password: ")
	if err != nil {
		return err
	}
	if err := a.session.API.Signup(ctx, name, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created")
	return nil
}

func (a *app) login(ctx context.Context) error {
	email, err := prompt(a.reader, a.out, "Email: ")
	if err != nil {
		return err
	}
	password, err := a.readPassword(a.out, "Password: ")
	if err != nil {
		return err
	}
	if err := a.session.API.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.session.API.GetUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) listNotes(ctx context.Context) error {
	if err := a.session.Notes.Refresh(ctx); err != nil {
		return err
	}
	notes := a.session.Notes.Sorted()
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes to display")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTAG\tTITLE\tDESCRIPTION")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Date.Local().Format("2006-01-02 15:04"), n.Tag, n.Title, oneLine(n.Description))
	}
	return tw.Flush()
}

func (a *app) addNote(ctx context.Context) error {
	title, err := prompt(a.reader, a.out, "Title: ")
	if err != nil {
		return err
	}
	description, err := prompt(a.reader, a.out, "Description: ")
	if err != nil {
		return err
	}
	tag, err := prompt(a.reader, a.out, "Tag (optional): ")
	if err != nil {
		return err
	}
	note, err := a.session.Notes.Add(ctx, title, description, tag)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note added: %s\n", note.ID)
	return nil
}

func (a *app) editNote(ctx context.Context, id string) error {
	var changes client.NoteChanges
	var err error
	if changes.Title, err = prompt(a.reader, a.out, "New title: "); err != nil {
		return err
	}
	if changes.Description, err = prompt(a.reader, a.out, "New description: "); err != nil {
		return err
	}
	if changes.Tag, err = prompt(a.reader, a.out, "New tag: "); err != nil {
		return err
	}
	if changes == (client.NoteChanges{}) {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}
	if _, err := a.session.Notes.Edit(ctx, id, changes); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note updated")
	return nil
}

func (a *app) forgot(ctx context.Context) error {
	email, err := prompt(a.reader, a.out, "Email: ")
	if err != nil {
		return err
	}
	msg, err := a.session.API.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) reset(ctx context.Context, token string) error {
	password, err := a.readPassword(a.out, "New password: ")
	if err != nil {
		return err
	}
	msg, err := a.session.API.ResetPassword(ctx, token, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) sendOtp(ctx context.Context) error {
	email, err := prompt(a.reader, a.out, "Email: ")
	if err != nil {
		return err
	}
	msg, err := a.session.API.SendOtp(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) verifyOtp(ctx context.Context) error {
	email, err := prompt(a.reader, a.out, "Email: ")
	if err != nil {
		return err
	}
	code, err := prompt(a.reader, a.out, "OTP: ")
	if err != nil {
		return err
	}
	msg, err := a.session.API.VerifyOtp(ctx, email, code)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
