// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdProducts
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Email      string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args remaining after the command word
	Raw []string
}

const usageText = `shopfront - terminal storefront client

Shopfront is a TUI client for a remote e-commerce backend: browse the
catalog, manage a cart, check out, and administer the store, all from
the terminal.

Usage:
  shopfront                  Start the TUI (default)
  shopfront login            Sign in and store the session credential
    --email <addr>             Skip the email prompt
  shopfront logout           Sign out and forget the stored credential
  shopfront whoami           Show the signed-in identity
  shopfront products         List the catalog
    --json                     Machine-readable output
  shopfront status           Backend connectivity and session state
  shopfront config [show|set|path]   Configuration
  shopfront version          Show version information
  shopfront help             Show this help

Configuration lives at ~/.shopfront/config.toml; SHOPFRONT_* environment
variables override it (SHOPFRONT_API_URL, SHOPFRONT_CURRENCY, ...).

Examples:
  shopfront login --email dev@example.com
  shopfront products --json | jq '.[].title'
  shopfront config set ui.theme light
`

// Parse parses os.Args and returns the command and its arguments.
func Parse() (Command, *Args) {
	args := &Args{}
	raw := os.Args[1:]

	// Peel off global flags before the command word.
	var rest []string
	for _, a := range raw {
		switch a {
		case "--quiet", "-q":
			args.Quiet = true
		case "--verbose", "-v":
			args.Verbose = true
		case "--json":
			args.JSON = true
		default:
			rest = append(rest, a)
		}
	}

	if len(rest) == 0 {
		return CmdTUI, args
	}

	cmd := rest[0]
	args.Raw = rest[1:]
	parser := NewArgParser(args.Raw)
	args.Subcommand = parser.Subcommand()
	if parser.BoolFlag("json") {
		args.JSON = true
	}

	switch cmd {
	case "login":
		args.Email = parser.Flag("email")
		return CmdLogin, args
	case "logout":
		return CmdLogout, args
	case "whoami":
		return CmdWhoami, args
	case "products", "catalog":
		return CmdProducts, args
	case "status", "s":
		return CmdStatus, args
	case "config":
		args.ConfigKey = parser.Positional(1)
		args.ConfigVal = parser.Positional(2)
		return CmdConfig, args
	case "version", "--version", "-V":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// HandleVersion prints version information.
func HandleVersion(args *Args) {
	if args.JSON {
		PrintJSON(map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
			"platform":   runtime.GOOS + "/" + runtime.GOARCH,
		})
		return
	}
	fmt.Printf("shopfront %s\n", Version)
	if !args.Quiet {
		fmt.Printf("  commit:   %s\n", GitCommit)
		fmt.Printf("  built:    %s\n", BuildDate)
		fmt.Printf("  go:       %s\n", runtime.Version())
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
}

// HandleHelp prints usage information.
func HandleHelp(args *Args) {
	fmt.Print(usageText)
}
