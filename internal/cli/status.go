// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/config"
)

// HandleStatus reports backend connectivity and session state.
func HandleStatus(args *Args) {
	cfg := config.Global()
	state, err := OpenState(cfg)
	if err != nil {
		fail(err)
	}
	defer state.Close()

	client := NewClient(cfg, state)

	ctx, cancel := reqContext(cfg)
	defer cancel()

	start := time.Now()
	check, err := client.CheckAuth(ctx)
	latency := time.Since(start)

	backend := "ok"
	session := "anonymous"
	identity := ""
	switch {
	case err == nil:
		session = "authenticated"
		if check.User != nil {
			identity = check.User.Email
			if identity == "" {
				identity = check.User.ID
			}
		} else {
			identity = check.UserID
		}
	case api.IsUnauthorized(err):
		// Backend reachable, nobody signed in.
	case api.IsRateLimited(err):
		backend = "rate limited"
	default:
		backend = "unreachable"
		session = "unknown"
	}

	if args.JSON {
		PrintJSON(map[string]any{
			"backend":    cfg.API.BaseURL,
			"reachable":  backend == "ok" || backend == "rate limited",
			"latency_ms": latency.Milliseconds(),
			"session":    session,
			"identity":   identity,
		})
		return
	}

	fmt.Println(TitleStyle.Render("shopfront status"))
	fmt.Println(LabelStyle.Render("Backend") + ValueStyle.Render(cfg.API.BaseURL))
	switch backend {
	case "ok":
		fmt.Println(LabelStyle.Render("Connection") + RenderStatus("ok") +
			DimStyle.Render(fmt.Sprintf("  %v", latency.Round(time.Millisecond))))
	case "rate limited":
		fmt.Println(LabelStyle.Render("Connection") + RenderStatus("warning") +
			DimStyle.Render("  backend is throttling this client"))
	default:
		fmt.Println(LabelStyle.Render("Connection") + RenderStatus("fail"))
	}

	fmt.Println(LabelStyle.Render("Session") + RenderStatus(session))
	if identity != "" {
		fmt.Println(LabelStyle.Render("Identity") + ValueStyle.Render(identity))
	}

	if path, err := StatePath(cfg); err == nil {
		fmt.Println(LabelStyle.Render("State file") + DimStyle.Render(path))
	}
}
