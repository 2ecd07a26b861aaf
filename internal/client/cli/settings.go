package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/credor-app/credor/internal/common"
)

// ShowProfile prints the cached profile, fetching it on first use.
func (a *App) ShowProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	p := a.ensureSettings(ctx).Profile()
	printlnFn("Name:  " + p.Name)
	printlnFn("Email: " + p.Email)
	printlnFn(fmt.Sprintf("Age:   %d", p.Age))
	return nil
}

// UpdateSettings prompts for the fields to change; empty answers leave a
// field untouched. Changing email or password signs the user out, since the
// current token is tied to the old credentials.
func (a *App) UpdateSettings(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	acc := a.ensureSettings(ctx)

	name, err := GetOptionalText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetOptionalText(a.reader, "New email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetOptionalText(a.reader, "New password", os.Stdout)
	if err != nil {
		return err
	}
	ageStr, err := GetOptionalText(a.reader, "New age", os.Stdout)
	if err != nil {
		return err
	}

	var age *int
	if ageStr != nil {
		n, err := strconv.Atoi(*ageStr)
		if err != nil {
			printlnFn("Age must be a number")
			return common.ErrInvalidAge
		}
		age = &n
	}

	if name == nil && email == nil && password == nil && age == nil {
		printlnFn("Nothing to update")
		return nil
	}

	if email != nil && !acc.CheckValid(ctx, *email) {
		printlnFn("That email address is unavailable")
		return common.ErrInvalidEmail
	}

	if err := acc.Update(ctx, name, email, password, age); err != nil {
		printlnFn("Update failed: " + err.Error())
		return err
	}

	if email != nil || password != nil {
		a.settings = nil
		printlnFn("Settings saved; please sign in again with your new credentials")
	} else {
		printlnFn("Settings saved")
	}
	return nil
}

// CheckEmail probes availability of an email address.
func (a *App) CheckEmail(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email to check", os.Stdout)
	if err != nil {
		return err
	}

	if a.ensureSettings(ctx).CheckValid(ctx, email) {
		printlnFn("Available")
	} else {
		printlnFn("Unavailable")
	}
	return nil
}
