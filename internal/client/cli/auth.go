package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readPasswordString reads a password and wipes the raw bytes.
func (a *App) readPasswordString() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for name, email and password and creates an account.
// The new account is logged in right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		return errors.New("email must not be empty")
	}
	password, err := a.readPasswordString()
	if err != nil {
		return err
	}

	sess, err := a.backend.Register(ctx, email, password, name)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			return fmt.Errorf("%s is already registered", email)
		}
		return err
	}

	a.user = &sess.User
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", sess.User.Name)
	return a.dashboard(ctx)
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPasswordString()
	if err != nil {
		return err
	}

	sess, err := a.backend.Login(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}

	a.user = &sess.User
	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.User.Name)
	return a.dashboard(ctx)
}

// dashboard seeds the sample tasks for a user without any and prints the
// summary shown after login.
func (a *App) dashboard(ctx context.Context) error {
	seeded, err := a.backend.SeedSampleData(ctx)
	if err != nil {
		return err
	}
	if len(seeded) > 0 {
		fmt.Fprintf(a.out, "Added %d sample tasks to get you started.\n", len(seeded))
	}
	return a.Stats(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.backend.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.backend.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.user = u
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\nid:     %s\navatar: %s\n", u.Name, u.Email, u.ID, u.Avatar)
	return nil
}

// Avatar sets the avatar URL of the current user.
func (a *App) Avatar(ctx context.Context, args []string) error {
	url := strings.Join(args, " ")
	if url == "" {
		return errors.New("usage: avatar <url>")
	}
	u, err := a.backend.UpdateAvatar(ctx, url)
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintln(a.out, "Avatar updated.")
	return nil
}
