package interpreter

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/termsim/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func skipUnlessPermissionsEnforced(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
}

func TestMissingOperand(t *testing.T) {
	in, _ := newTestInterpreter(t)
	for _, line := range []string{"mkdir", "rmdir", "rm", "touch", "cat", "mv", "mv onlyone", "cp", "cp onlyone"} {
		verb := strings.Fields(line)[0]
		got := in.Parse(line)
		if got.Success || got.Output != verb+": missing operand" {
			t.Errorf("Parse(%q) = %+v", line, got)
		}
		if got.Kind != domain.KindUsage {
			t.Errorf("Parse(%q) kind = %s", line, got.Kind)
		}
	}
}

func TestLSSortsEntries(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	for _, name := range []string{"beta", "alpha", "Gamma"} {
		writeFile(t, filepath.Join(tmp, name), "")
	}
	if err := os.Mkdir(filepath.Join(tmp, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(tmp, "dir", "inner"), "")

	tests := []struct {
		line string
		want string
	}{
		{line: "ls", want: "Gamma\nalpha\nbeta\ndir"},
		{line: "ls .", want: "Gamma\nalpha\nbeta\ndir"},
		{line: "ls dir", want: "inner"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := in.Parse(tt.line)
			if !got.Success || got.Output != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestLSEmptyAndMissing(t *testing.T) {
	in, _ := newTestInterpreter(t)
	if got := in.Parse("ls"); !got.Success || got.Output != "" {
		t.Errorf("ls in empty dir = %+v", got)
	}
	if got := in.Parse("ls nope"); got.Success || got.Output != "Directory not found: nope" {
		t.Errorf("ls nope = %+v", got)
	}
}

func TestLSPermissionDenied(t *testing.T) {
	skipUnlessPermissionsEnforced(t)
	in, tmp := newTestInterpreter(t)
	locked := filepath.Join(tmp, "locked")
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got := in.Parse("ls locked")
	if got.Output != "Permission denied: locked" || got.Kind != domain.KindOSFailure {
		t.Fatalf("ls locked = %+v", got)
	}
}

func TestCDAndPWD(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	target := filepath.Join(tmp, "a", "b")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := in.Parse("cd a/b"); !got.Success || got.Output != "" {
		t.Fatalf("cd = %+v", got)
	}
	pwd := in.Parse("pwd")
	if !pwd.Success {
		t.Fatalf("pwd = %+v", pwd)
	}
	if resolved(t, pwd.Output) != resolved(t, target) {
		t.Errorf("pwd = %q, want %q", pwd.Output, target)
	}
	if !filepath.IsAbs(pwd.Output) {
		t.Errorf("pwd %q is not absolute", pwd.Output)
	}

	in.Parse("cd ..")
	if got := in.Parse("pwd").Output; resolved(t, got) != resolved(t, filepath.Join(tmp, "a")) {
		t.Errorf("pwd after cd .. = %q", got)
	}
}

func TestCDFailureKeepsState(t *testing.T) {
	in, _ := newTestInterpreter(t)
	before := in.Parse("pwd").Output

	got := in.Parse("cd missing")
	if got.Success || got.Output != "Directory not found: missing" {
		t.Fatalf("cd missing = %+v", got)
	}
	if after := in.Parse("pwd").Output; after != before {
		t.Errorf("pwd changed from %q to %q", before, after)
	}
}

func TestCDDefaultsToHome(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	home := filepath.Join(tmp, "home")
	if err := os.Mkdir(home, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if got := in.Parse("cd"); !got.Success {
		t.Fatalf("cd = %+v", got)
	}
	if got := in.WorkingDirectory(); resolved(t, got) != resolved(t, home) {
		t.Errorf("working directory = %q, want %q", got, home)
	}
}

func TestMkdirRmdirRoundTrip(t *testing.T) {
	in, tmp := newTestInterpreter(t)

	if got := in.Parse("mkdir foo"); !got.Success || got.Output != "" {
		t.Fatalf("mkdir foo = %+v", got)
	}
	if got := in.Parse("mkdir foo"); !got.Success {
		t.Errorf("mkdir on existing dir = %+v", got)
	}
	if got := in.Parse("rmdir foo"); !got.Success || got.Output != "" {
		t.Fatalf("rmdir foo = %+v", got)
	}
	if got := in.Parse("rmdir foo"); got.Success || got.Output != "Directory not found: foo" {
		t.Errorf("second rmdir foo = %+v", got)
	}

	if got := in.Parse("mkdir x/y/z other"); !got.Success {
		t.Fatalf("nested mkdir = %+v", got)
	}
	for _, dir := range []string{"x/y/z", "other"} {
		if info, err := os.Stat(filepath.Join(tmp, dir)); err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", dir, err)
		}
	}
}

func TestMkdirStopsAtPermissionFailure(t *testing.T) {
	skipUnlessPermissionsEnforced(t)
	in, tmp := newTestInterpreter(t)
	ro := filepath.Join(tmp, "ro")
	if err := os.Mkdir(ro, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(ro, 0o755) })

	got := in.Parse("mkdir first ro/child last")
	if got.Output != "Permission denied: ro/child" {
		t.Fatalf("mkdir = %+v", got)
	}
	if _, err := os.Stat(filepath.Join(tmp, "first")); err != nil {
		t.Errorf("paths before the failure must be created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "last")); !os.IsNotExist(err) {
		t.Errorf("paths after the failure must not be attempted: %v", err)
	}
}

func TestRmdirRefusesNonEmptyAndFiles(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	writeFile(t, filepath.Join(tmp, "full", "file"), "x")
	writeFile(t, filepath.Join(tmp, "plain"), "x")

	for _, line := range []string{"rmdir full", "rmdir plain"} {
		got := in.Parse(line)
		if got.Success || !strings.HasPrefix(got.Output, "Cannot remove directory: ") {
			t.Errorf("Parse(%q) = %+v", line, got)
		}
	}
	if _, err := os.Stat(filepath.Join(tmp, "full", "file")); err != nil {
		t.Errorf("non-empty dir contents touched: %v", err)
	}
}

func TestRm(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	writeFile(t, filepath.Join(tmp, "a.txt"), "a")
	writeFile(t, filepath.Join(tmp, "tree", "deep", "leaf"), "leaf")
	writeFile(t, filepath.Join(tmp, "b.txt"), "b")

	if got := in.Parse("rm a.txt tree"); !got.Success {
		t.Fatalf("rm = %+v", got)
	}
	for _, name := range []string{"a.txt", "tree"} {
		if _, err := os.Lstat(filepath.Join(tmp, name)); !os.IsNotExist(err) {
			t.Errorf("%s still exists", name)
		}
	}

	got := in.Parse("rm missing b.txt")
	if got.Success || got.Output != "File not found: missing" {
		t.Fatalf("rm missing = %+v", got)
	}
	if _, err := os.Stat(filepath.Join(tmp, "b.txt")); err != nil {
		t.Errorf("rm must stop at first error: %v", err)
	}
}

func TestTouchAndCat(t *testing.T) {
	in, tmp := newTestInterpreter(t)

	if got := in.Parse("touch f"); !got.Success || got.Output != "" {
		t.Fatalf("touch = %+v", got)
	}
	if got := in.Parse("cat f"); !got.Success || got.Output != "" {
		t.Fatalf("cat empty = %+v", got)
	}

	content := "line one\nline two\n\ttabbed\n"
	writeFile(t, filepath.Join(tmp, "f"), content)
	if got := in.Parse("cat f"); got.Output != content {
		t.Fatalf("cat = %q, want %q", got.Output, content)
	}

	writeFile(t, filepath.Join(tmp, "g"), "second")
	if got := in.Parse("cat f g"); got.Output != content+"\nsecond" {
		t.Errorf("cat f g = %q", got.Output)
	}

	got := in.Parse("cat f missing g")
	if got.Success || got.Output != "File not found: missing" {
		t.Errorf("cat with missing file = %+v", got)
	}
}

func TestTouchUpdatesModificationTime(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	path := filepath.Join(tmp, "old")
	writeFile(t, path, "keep")
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	if got := in.Parse("touch old"); !got.Success {
		t.Fatalf("touch = %+v", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().After(past.Add(time.Hour)) {
		t.Errorf("mtime %s not refreshed", info.ModTime())
	}
	if data, _ := os.ReadFile(path); string(data) != "keep" {
		t.Errorf("touch changed content to %q", data)
	}
}

func TestEcho(t *testing.T) {
	in, _ := newTestInterpreter(t)
	tests := []struct {
		line string
		want string
	}{
		{line: "echo a b c", want: "a b c"},
		{line: "echo", want: ""},
		{line: "echo   MiXeD   Case", want: "MiXeD Case"},
	}
	for _, tt := range tests {
		if got := in.Parse(tt.line); !got.Success || got.Output != tt.want {
			t.Errorf("Parse(%q) = %+v, want %q", tt.line, got, tt.want)
		}
	}
}

func TestMvRoundTrip(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	writeFile(t, filepath.Join(tmp, "a"), "payload")

	if got := in.Parse("mv a b"); !got.Success {
		t.Fatalf("mv = %+v", got)
	}
	if _, err := os.Stat(filepath.Join(tmp, "a")); !os.IsNotExist(err) {
		t.Errorf("source still exists: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(tmp, "b"))
	if err != nil || string(data) != "payload" {
		t.Fatalf("destination content = %q, %v", data, err)
	}
}

func TestMvIntoDirectory(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	writeFile(t, filepath.Join(tmp, "note"), "n")
	if err := os.Mkdir(filepath.Join(tmp, "box"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := in.Parse("mv note box"); !got.Success {
		t.Fatalf("mv = %+v", got)
	}
	if _, err := os.Stat(filepath.Join(tmp, "box", "note")); err != nil {
		t.Errorf("note not moved into box: %v", err)
	}
}

func TestMvMissingSource(t *testing.T) {
	in, _ := newTestInterpreter(t)
	if got := in.Parse("mv ghost dst"); got.Output != "File not found: ghost" {
		t.Fatalf("mv ghost = %+v", got)
	}
}

func TestCpFilePreservesTimes(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	src := filepath.Join(tmp, "src.txt")
	writeFile(t, src, "copy me")
	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if got := in.Parse("cp src.txt dst.txt"); !got.Success {
		t.Fatalf("cp = %+v", got)
	}
	info, err := os.Stat(filepath.Join(tmp, "dst.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Errorf("mtime = %s, want %s", info.ModTime(), stamp)
	}
	if data, _ := os.ReadFile(src); string(data) != "copy me" {
		t.Errorf("source changed: %q", data)
	}
}

func TestCpDirectoryMatchesListing(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	writeFile(t, filepath.Join(tmp, "src", "one"), "1")
	writeFile(t, filepath.Join(tmp, "src", "two"), "2")
	writeFile(t, filepath.Join(tmp, "src", "nested", "three"), "3")

	if got := in.Parse("cp src dst"); !got.Success {
		t.Fatalf("cp dir = %+v", got)
	}
	srcList := in.Parse("ls src").Output
	dstList := in.Parse("ls dst").Output
	if diff := cmp.Diff(srcList, dstList); diff != "" {
		t.Errorf("listing mismatch (-src +dst):\n%s", diff)
	}
	if data, _ := os.ReadFile(filepath.Join(tmp, "dst", "nested", "three")); string(data) != "3" {
		t.Errorf("nested file content = %q", data)
	}

	got := in.Parse("cp src dst")
	if got.Success || !strings.HasPrefix(got.Output, "Error: ") {
		t.Errorf("cp onto existing tree = %+v", got)
	}
}

func TestCpFileIntoDirectory(t *testing.T) {
	in, tmp := newTestInterpreter(t)
	writeFile(t, filepath.Join(tmp, "f"), "x")
	if err := os.Mkdir(filepath.Join(tmp, "d"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := in.Parse("cp f d"); !got.Success {
		t.Fatalf("cp = %+v", got)
	}
	if _, err := os.Stat(filepath.Join(tmp, "d", "f")); err != nil {
		t.Errorf("file not copied into directory: %v", err)
	}
}

func TestCpMissingSource(t *testing.T) {
	in, _ := newTestInterpreter(t)
	if got := in.Parse("cp ghost dst"); got.Output != "File not found: ghost" {
		t.Fatalf("cp ghost = %+v", got)
	}
}
