package cli

import (
	"io"
	"testing"
)

func TestRootCommand_Structure(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "reqcheck" {
		t.Errorf("Use = %q", root.Use)
	}
	if !root.SilenceUsage {
		t.Error("SilenceUsage should be set")
	}
	if root.RunE == nil {
		t.Error("bare root invocation should run a check")
	}

	want := []string{"check", "show", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("level = %v, want debug", got)
	}
}

func TestCheckCommand_RejectsArgs(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.checkCommand()
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Error("check should reject positional arguments")
	}
}
