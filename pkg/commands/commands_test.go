package commands

import (
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"search"},
		{"calendar"},
		{"cal"},
		{"entry", "add"},
		{"entry", "show"},
		{"goal", "add"},
		{"goal", "list"},
		{"goal", "progress"},
		{"goal", "complete"},
		{"goal", "reopen"},
		{"goal", "delete"},
		{"stats"},
		{"report"},
		{"key"},
		{"info"},
		{"mcp"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("%v: %v", path, err)
		}
		if cmd == root {
			t.Fatalf("%v: resolved to the root command", path)
		}
	}
}

func TestSearchFlags(t *testing.T) {
	cmd, _, err := New().Find([]string{"search"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, name := range []string{"entries", "goals", "range", "sort", "watch"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing --%s", name)
		}
	}
	if cmd.InheritedFlags().Lookup("json") == nil {
		t.Fatalf("missing inherited --json")
	}
}

func TestMCPFlags(t *testing.T) {
	cmd, _, err := New().Find([]string{"mcp"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, name := range []string{"transport", "addr", "path"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing --%s", name)
		}
	}
	if cmd.Flags().Lookup("http-tls-cert") != nil {
		t.Fatal("unexpected --http-tls-cert")
	}
}
