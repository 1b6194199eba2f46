package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name string
	err  error
	got  []string
}

func (c *stubCommand) Name() string        { return c.name }
func (c *stubCommand) Description() string { return "does " + c.name }

func (c *stubCommand) Run(args []string) error {
	c.got = args
	return c.err
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestRegistry_Dispatch(t *testing.T) {
	captureOutput(t)
	migrate := &stubCommand{name: "migrate"}
	r := NewRegistry(migrate, &stubCommand{name: "check-db"})

	require.NoError(t, r.Dispatch([]string{"migrate", "up"}))
	assert.Equal(t, []string{"up"}, migrate.got)
}

func TestRegistry_DispatchWrapsCommandError(t *testing.T) {
	captureOutput(t)
	boom := errors.New("boom")
	r := NewRegistry(&stubCommand{name: "recalibrate", err: boom})

	err := r.Dispatch([]string{"recalibrate"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "recalibrate")
}

func TestRegistry_DispatchUsage(t *testing.T) {
	buf := captureOutput(t)
	r := NewRegistry(&stubCommand{name: "migrate"})

	assert.ErrorIs(t, r.Dispatch(nil), errUsage)
	assert.ErrorIs(t, r.Dispatch([]string{"nope"}), errUsage)
	assert.Contains(t, buf.String(), "Unknown command: nope")
}

func TestRegistry_PrintHelpSortedAndAligned(t *testing.T) {
	r := NewRegistry(&stubCommand{name: "recalibrate"}, &stubCommand{name: "add-user"})

	var buf bytes.Buffer
	r.PrintHelp(&buf)

	help := buf.String()
	assert.Less(t, strings.Index(help, "add-user"), strings.Index(help, "recalibrate"))
	assert.Contains(t, help, "  add-user     does add-user\n")
}

func TestConfirm(t *testing.T) {
	captureOutput(t)

	assert.True(t, confirm(strings.NewReader("yes\n"), "continue?"))
	assert.True(t, confirm(strings.NewReader("yes"), "continue?"))
	assert.False(t, confirm(strings.NewReader("y\n"), "continue?"))
	assert.False(t, confirm(strings.NewReader(""), "continue?"))
}
