// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// =============================================================================
// INTERACTIVE LOGIN FLOW
// =============================================================================

// Flow drives the pre-chat account prompts on the plain terminal, before
// the full-screen UI takes over. Passwords are read without echo when
// stdin is a terminal.
type Flow struct {
	client *Client
	dir    string

	in  *bufio.Reader
	out io.Writer

	// readPassword is swapped in tests; the default hides input.
	readPassword func(prompt string) (string, error)
}

// NewFlow creates a login flow that records its marker under dir.
func NewFlow(client *Client, dir string) *Flow {
	f := &Flow{
		client: client,
		dir:    dir,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	f.readPassword = f.readPasswordTerm
	return f
}

// Run asks the user to log in, sign up or reset their password, looping
// until a login succeeds and the marker is written. Returns the error only
// when input is exhausted or the marker cannot be saved.
func (f *Flow) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(f.out, "\n[1] Log in  [2] Sign up  [3] Forgot password  [q] Quit")
		choice, err := f.readLine("> ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			ok, err := f.login(ctx)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		case "2":
			if err := f.signup(ctx); err != nil {
				return err
			}
		case "3":
			if err := f.resetFlow(ctx); err != nil {
				return err
			}
		case "q", "Q":
			return fmt.Errorf("login cancelled")
		}
	}
}

// login runs one login attempt. A failed attempt prints the backend's
// message and returns ok=false so the menu shows again.
func (f *Flow) login(ctx context.Context) (bool, error) {
	email, err := f.readLine("Email: ")
	if err != nil {
		return false, err
	}
	password, err := f.readPassword("Password: ")
	if err != nil {
		return false, err
	}

	msg, err := f.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		fmt.Fprintln(f.out, err.Error())
		return false, nil
	}

	fmt.Fprintln(f.out, msg)
	if err := SaveMarker(f.dir); err != nil {
		return false, fmt.Errorf("save login marker: %w", err)
	}
	return true, nil
}

// signup registers an account and immediately asks for the emailed
// verification code, mirroring the signup-then-verify page flow.
func (f *Flow) signup(ctx context.Context) error {
	username, err := f.readLine("Username: ")
	if err != nil {
		return err
	}
	email, err := f.readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := f.readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := f.readPassword("Confirm password: ")
	if err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	msg, err := f.client.Signup(ctx, strings.TrimSpace(username), email, password, confirm)
	if err != nil {
		fmt.Fprintln(f.out, err.Error())
		return nil
	}
	fmt.Fprintln(f.out, msg)

	code, err := f.readLine("Verification code: ")
	if err != nil {
		return err
	}
	msg, err = f.client.VerifyEmail(ctx, email, strings.TrimSpace(code))
	if err != nil {
		fmt.Fprintln(f.out, err.Error())
		return nil
	}
	fmt.Fprintln(f.out, msg)
	return nil
}

// resetFlow walks forgot-password, code verification and the new password.
func (f *Flow) resetFlow(ctx context.Context) error {
	email, err := f.readLine("Email: ")
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	msg, err := f.client.ForgotPassword(ctx, email)
	if err != nil {
		fmt.Fprintln(f.out, err.Error())
		return nil
	}
	fmt.Fprintln(f.out, msg)

	code, err := f.readLine("Reset code: ")
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)

	msg, err = f.client.VerifyResetCode(ctx, email, code)
	if err != nil {
		fmt.Fprintln(f.out, err.Error())
		return nil
	}
	fmt.Fprintln(f.out, msg)

	newPassword, err := f.readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := f.readPassword("Confirm new password: ")
	if err != nil {
		return err
	}

	msg, err = f.client.ResetPassword(ctx, email, code, newPassword, confirm)
	if err != nil {
		fmt.Fprintln(f.out, err.Error())
		return nil
	}
	fmt.Fprintln(f.out, msg)
	return nil
}

// readLine prints a prompt and reads one line.
func (f *Flow) readLine(prompt string) (string, error) {
	fmt.Fprint(f.out, prompt)
	line, err := f.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPasswordTerm reads a password without echo when stdin is a terminal,
// falling back to a plain line otherwise (pipes, tests).
func (f *Flow) readPasswordTerm(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return f.readLine(prompt)
	}
	fmt.Fprint(f.out, prompt)
	data, err := term.ReadPassword(fd)
	fmt.Fprintln(f.out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
