package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExecute(t *testing.T) {
	var got []string
	r := NewCommandRegistry(VersionInfo{Version: "test"})
	r.Register(&Command{Name: "plan", Description: "Plan a trip", Run: func(args []string) error {
		got = args
		return nil
	}})

	require.NoError(t, r.Execute([]string{"plan", "--days", "3"}))
	assert.Equal(t, []string{"--days", "3"}, got)

	assert.Error(t, r.Execute([]string{"fly"}))
	assert.Error(t, r.Execute(nil))
	assert.NoError(t, r.Execute([]string{"help"}))
}

func TestPrintHelpKeepsRegistrationOrder(t *testing.T) {
	r := NewCommandRegistry(VersionInfo{})
	for _, name := range []string{"plan", "show", "export"} {
		r.Register(&Command{Name: name, Description: name + " command"})
	}

	var buf bytes.Buffer
	r.PrintHelp(&buf)
	out := buf.String()

	plan := strings.Index(out, "plan command")
	show := strings.Index(out, "show command")
	exp := strings.Index(out, "export command")
	assert.True(t, plan < show && show < exp, out)
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTableWriter(&buf, []string{"Category", "Amount"})
	tw.AddRow("accommodation", "$750")
	tw.Print()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "│ accommodation │ $750   │", lines[3])
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"food", "art"}, splitList(" food, ,art "))
	assert.Empty(t, splitList(""))
}
