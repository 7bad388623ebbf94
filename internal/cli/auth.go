// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/config"
)

// =============================================================================
// LOGIN / LOGOUT / WHOAMI
// =============================================================================

// HandleLogin signs in with email and password and persists the issued
// bearer credential so later invocations (and the TUI) start authenticated.
func HandleLogin(args *Args) {
	if err := RequiresTTY("read credentials"); err != nil && args.Email == "" {
		fail(err)
	}

	cfg := config.Global()
	state, err := OpenState(cfg)
	if err != nil {
		fail(err)
	}
	defer state.Close()

	email := strings.TrimSpace(args.Email)
	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fail(err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		fail(fmt.Errorf("email is required"))
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fail(err)
	}
	password := string(raw)
	if password == "" {
		fail(fmt.Errorf("password is required"))
	}

	client := NewClient(cfg, nil)

	ctx, cancel := reqContext(cfg)
	defer cancel()

	user, err := client.Login(ctx, email, password)
	if err != nil {
		fail(err)
	}

	// The login response sets the session cookie; a follow-up session check
	// on the same client yields the bearer credential to persist.
	check, err := client.CheckAuth(ctx)
	if err == nil && check.AccessToken != "" {
		if err := SaveAccessToken(state, check.AccessToken); err != nil {
			fmt.Fprintln(os.Stderr, WarningStyle.Render(
				"Warning: signed in, but could not store the session credential"))
		}
	}

	label := user.Email
	if label == "" {
		label = user.ID
	}
	fmt.Println(SuccessStyle.Render("Signed in as ") + ValueStyle.Render(label))
	if user.IsAdmin {
		fmt.Println(DimStyle.Render("Admin features are available in the TUI."))
	}
}

// HandleLogout signs out on the backend and forgets the stored credential.
func HandleLogout(args *Args) {
	cfg := config.Global()
	state, err := OpenState(cfg)
	if err != nil {
		fail(err)
	}
	defer state.Close()

	client := NewClient(cfg, state)

	ctx, cancel := reqContext(cfg)
	defer cancel()

	// Best effort on the backend; the local credential is dropped regardless.
	if err := client.Logout(ctx); err != nil && args.Verbose {
		fmt.Fprintf(os.Stderr, "backend logout failed: %v\n", err)
	}
	if err := ForgetAccessToken(state); err != nil {
		fail(err)
	}
	fmt.Println(SuccessStyle.Render("Signed out."))
}

// HandleWhoami shows the identity the stored credential resolves to.
func HandleWhoami(args *Args) {
	cfg := config.Global()
	state, err := OpenState(cfg)
	if err != nil {
		fail(err)
	}
	defer state.Close()

	client := NewClient(cfg, state)

	ctx, cancel := reqContext(cfg)
	defer cancel()

	check, err := client.CheckAuth(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			fmt.Println(DimStyle.Render("Not signed in. Run: shopfront login"))
			os.Exit(1)
		}
		fail(err)
	}

	id, email, isAdmin := check.UserID, "", check.IsAdmin
	if check.User != nil {
		id, email, isAdmin = check.User.ID, check.User.Email, check.User.IsAdmin
	}
	if id == "" {
		fail(fmt.Errorf("backend returned a session with no user identifier"))
	}

	if args.JSON {
		PrintJSON(map[string]any{"id": id, "email": email, "isAdmin": isAdmin})
		return
	}

	fmt.Println(LabelStyle.Render("User ID") + ValueStyle.Render(id))
	if email != "" {
		fmt.Println(LabelStyle.Render("Email") + ValueStyle.Render(email))
	}
	role := "customer"
	if isAdmin {
		role = "admin"
	}
	fmt.Println(LabelStyle.Render("Role") + ValueStyle.Render(role))
}
