package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/credor-app/credor/internal/client/api"
	"github.com/credor-app/credor/internal/common"
)

// Login prompts for credentials and authenticates. Server rejections are
// reported to the user with a specific message where the backend provides
// one; network failures are reported as such.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Network error, please try again")
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}

	switch {
	case res.Token != "":
		printlnFn("Signed in as " + res.Name)
		a.settings = nil
	case strings.Contains(res.ErrorMsg, api.CodeInvalidCredentials):
		printlnFn("Invalid credentials")
	default:
		printlnFn(fmt.Sprintf("Login failed (status %d)", res.Status))
	}
	return nil
}

// Register walks through the registration form. The date of birth is
// reduced to an age the same way the backend expects it: current year minus
// birth year.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	if !common.ValidEmail(email) {
		printlnFn("Email address is invalid")
		return common.ErrInvalidEmail
	}

	gender, err := GetSimpleText(a.reader, "Gender (male/female)", os.Stdout)
	if err != nil {
		return err
	}

	yearStr, err := GetSimpleText(a.reader, "Year of birth", os.Stdout)
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		printlnFn("Year of birth must be a number")
		return common.ErrInvalidAge
	}
	age := time.Now().Year() - year
	if !common.ValidAge(age) {
		printlnFn("Year of birth is implausible")
		return common.ErrInvalidAge
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.session.Register(ctx, name, age, gender, email, string(password))
	if err != nil {
		printlnFn("Network error, please try again")
		a.log.Error(ctx, "registration failed", "error", err)
		return err
	}

	switch {
	case res.Token != "":
		printlnFn("Welcome, " + res.Name)
		a.settings = nil
	case strings.Contains(res.ErrorMsg, api.CodeUserAlreadyExists):
		printlnFn("Email address already taken")
	default:
		printlnFn(fmt.Sprintf("Registration failed (status %d)", res.Status))
	}
	return nil
}

// Logout clears the session. Safe to call when already signed out.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.settings = nil
	printlnFn("Signed out")
	return nil
}

// WhoAmI prints the cached display name and, when the token carries an exp
// claim, the session expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	s, ok := a.session.Current()
	if !ok {
		printlnFn("Not signed in")
		return nil
	}

	printlnFn("Signed in as " + s.Name)
	if exp, ok := a.session.Expiry(); ok {
		printlnFn("Session expires " + exp.Local().Format(time.RFC1123))
	}
	return nil
}
