package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/termsim/internal/infrastructure/cli/commands"
)

func newTestRoot(t *testing.T) (*bytes.Buffer, *bytes.Buffer, func(args ...string) error) {
	t.Helper()
	root, container, err := NewRootCmd(context.Background(), Options{ConfigPath: filepath.Join(t.TempDir(), "config.yaml")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = container.Close() })

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	return &out, &errOut, func(args ...string) error {
		root.SetArgs(args)
		return root.ExecuteContext(context.Background())
	}
}

func TestRootRegistersSubcommands(t *testing.T) {
	root, container, err := NewRootCmd(context.Background(), Options{ConfigPath: filepath.Join(t.TempDir(), "config.yaml")})
	if err != nil {
		t.Fatal(err)
	}
	defer container.Close()

	for _, name := range []string{"shell", "serve", "exec", "config", "doctor", "audit", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
	if root.Flags().Lookup("web") == nil {
		t.Error("--web flag missing")
	}
}

func TestRootExecSuccessAndFailure(t *testing.T) {
	out, errOut, run := newTestRoot(t)

	if err := run("exec", "echo", "hi"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hi\n" {
		t.Errorf("stdout = %q", out.String())
	}

	err := run("exec", "frobnicate")
	var exitErr *commands.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("err = %v, want exit status 1", err)
	}
	if errOut.String() != "Unknown command: frobnicate\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRootDefaultRunsShell(t *testing.T) {
	root, container, err := NewRootCmd(context.Background(), Options{ConfigPath: filepath.Join(t.TempDir(), "config.yaml")})
	if err != nil {
		t.Fatal(err)
	}
	defer container.Close()

	var out bytes.Buffer
	root.SetIn(strings.NewReader("echo from shell\nexit\n"))
	root.SetOut(&out)
	root.SetArgs([]string{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"termsim terminal simulator", "from shell", "Goodbye!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("shell output missing %q:\n%s", want, out.String())
		}
	}
}
