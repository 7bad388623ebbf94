// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/config"
)

func parseArgs(t *testing.T, argv ...string) (Command, *Args) {
	t.Helper()
	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = append([]string{"shopfront"}, argv...)
	return Parse()
}

func TestParse_DefaultIsTUI(t *testing.T) {
	cmd, args := parseArgs(t)
	assert.Equal(t, CmdTUI, cmd)
	assert.False(t, args.JSON)
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"whoami"}, CmdWhoami},
		{[]string{"products"}, CmdProducts},
		{[]string{"catalog"}, CmdProducts},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := parseArgs(t, tt.argv...)
		assert.Equal(t, tt.want, cmd, "argv %v", tt.argv)
	}
}

func TestParse_GlobalFlagsBeforeCommand(t *testing.T) {
	cmd, args := parseArgs(t, "--json", "products")
	assert.Equal(t, CmdProducts, cmd)
	assert.True(t, args.JSON)

	cmd, args = parseArgs(t, "-q", "status")
	assert.Equal(t, CmdStatus, cmd)
	assert.True(t, args.Quiet)
}

func TestParse_JSONAfterCommand(t *testing.T) {
	_, args := parseArgs(t, "products", "--json")
	assert.True(t, args.JSON)
}

func TestParse_LoginEmailFlag(t *testing.T) {
	cmd, args := parseArgs(t, "login", "--email", "dev@example.com")
	assert.Equal(t, CmdLogin, cmd)
	assert.Equal(t, "dev@example.com", args.Email)
}

func TestParse_ConfigSetPositionals(t *testing.T) {
	cmd, args := parseArgs(t, "config", "set", "ui.theme", "light")
	assert.Equal(t, CmdConfig, cmd)
	assert.Equal(t, "set", args.Subcommand)
	assert.Equal(t, "ui.theme", args.ConfigKey)
	assert.Equal(t, "light", args.ConfigVal)
}

func TestArgParser_FlagFormats(t *testing.T) {
	p := NewArgParser([]string{"show", "--lines", "50", "--since=2024-01-01", "--json", "--dry=false"})

	assert.Equal(t, "show", p.Subcommand())
	assert.Equal(t, "50", p.Flag("lines"))
	assert.Equal(t, "2024-01-01", p.Flag("since"))
	assert.True(t, p.BoolFlag("json"))
	assert.False(t, p.BoolFlag("dry"))
	assert.True(t, p.HasFlag("dry"))
	assert.False(t, p.HasFlag("missing"))
	assert.Equal(t, "fallback", p.FlagOrDefault("missing", "fallback"))
}

func TestArgParser_Positionals(t *testing.T) {
	p := NewArgParser([]string{"set", "ui.theme", "light"})

	assert.Equal(t, 3, p.PositionalCount())
	assert.Equal(t, "set", p.Positional(0))
	assert.Equal(t, "ui.theme", p.Positional(1))
	assert.Equal(t, "light", p.Positional(2))
	assert.Equal(t, "", p.Positional(3))
}

func TestApplyConfigValue(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, applyConfigValue(cfg, "ui.theme", "light"))
	assert.Equal(t, "light", cfg.UI.Theme)

	require.NoError(t, applyConfigValue(cfg, "api.timeout_secs", "30"))
	assert.Equal(t, 30, cfg.API.TimeoutSecs)

	require.NoError(t, applyConfigValue(cfg, "log.enabled", "false"))
	assert.False(t, cfg.Log.Enabled)

	assert.Error(t, applyConfigValue(cfg, "api.timeout_secs", "zero"))
	assert.Error(t, applyConfigValue(cfg, "no.such.key", "x"))
}

func TestApplyConfigValue_ValidateRejectsBadURL(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, applyConfigValue(cfg, "api.base_url", "not a url"))
	assert.Error(t, cfg.Validate())
}
