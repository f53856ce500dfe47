package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOnly builds a parser whose commands are matched but never executed.
func parseOnly() (*goflags.Parser, *GlobalFlags, *commands) {
	p, g, c := buildParser("test")
	p.CommandHandler = func(goflags.Commander, []string) error { return nil }
	return p, g, c
}

func TestVersionFlag(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := RunWithArgs("0.1.0-test", []string{"--version"})

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	assert.NoError(t, err)
	assert.Contains(t, output, "arcade 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})
	assert.Equal(t, "arcade 1.2.3", strings.TrimSpace(output))
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{
		"serve", "search", "list", "show", "play", "fav", "rate",
		"top", "recent", "theme", "collections", "status", "purge",
	}
	parser, _, _ := parseOnly()

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := parseOnly()
	_, err := parser.ParseArgs([]string{"nonexistent"})
	require.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	err := RunWithArgs("test", []string{"--help"})
	assert.NoError(t, err)
}

func TestGlobalFlags(t *testing.T) {
	parser, globals, _ := parseOnly()
	_, err := parser.ParseArgs([]string{"--json", "--verbose", "--config", "/tmp/test.yaml", "--profile", "kiosk", "status"})
	require.NoError(t, err)

	assert.True(t, globals.JSON)
	assert.True(t, globals.Verbose)
	assert.Equal(t, "/tmp/test.yaml", globals.Config)
	assert.Equal(t, "kiosk", globals.Profile)
}

func TestFlagDefaults(t *testing.T) {
	p, _, c := parseOnly()
	_, err := p.ParseArgs([]string{"top"})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Top.Min)
	assert.Equal(t, 6, c.Top.Limit)

	p, _, c = parseOnly()
	_, err = p.ParseArgs([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, "all", c.List.Category)
}

func TestServeFlags(t *testing.T) {
	p, _, c := parseOnly()
	_, err := p.ParseArgs([]string{"serve", "--host", "0.0.0.0", "--port", "9999"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", c.Serve.Host)
	assert.Equal(t, 9999, c.Serve.Port)
}

func TestRateFlags(t *testing.T) {
	p, _, c := parseOnly()
	_, err := p.ParseArgs([]string{"rate", "--id", "slope", "--stars", "4"})
	require.NoError(t, err)
	assert.Equal(t, "slope", c.Rate.ID)
	assert.Equal(t, 4, c.Rate.Stars)
}

func TestPurgeForceFlag(t *testing.T) {
	p, _, c := parseOnly()
	_, err := p.ParseArgs([]string{"purge", "--all", "--force"})
	require.NoError(t, err)
	assert.True(t, c.Purge.All)
	assert.True(t, c.Purge.Force)
}
