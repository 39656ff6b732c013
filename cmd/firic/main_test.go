package main

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Firice1269/Firic/pkg/driver"
)

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	if code != 0 || stdout != cliToolVersion+"\n" {
		t.Fatalf("version: code=%d stdout=%q", code, stdout)
	}
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	code, _, stderr := captureCLI(t, nil)
	if code != 1 || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("expected usage, code=%d stderr=%q", code, stderr)
	}
	code, _, stderr = captureCLI(t, []string{"--help"})
	if code != 0 || !strings.Contains(stderr, "firic [options] run <file.fi>") {
		t.Fatalf("expected help, code=%d stderr=%q", code, stderr)
	}
}

func TestParseOptions(t *testing.T) {
	cases := []struct {
		args      []string
		want      cliOptions
		remaining []string
		wantErr   bool
	}{
		{args: []string{"run", "main.fi"}, remaining: []string{"run", "main.fi"}},
		{args: []string{"--trace", "main.fi"}, want: cliOptions{trace: driver.TraceOn}, remaining: []string{"main.fi"}},
		{args: []string{"run", "--no-trace", "main.fi"}, want: cliOptions{trace: driver.TraceOff}, remaining: []string{"run", "main.fi"}},
		{args: []string{"--color=Always", "main.fi"}, want: cliOptions{color: driver.ColorAlways}, remaining: []string{"main.fi"}},
		{args: []string{"--color", "never", "--cache-dir", "/tmp/c", "x.fi"}, want: cliOptions{color: driver.ColorNever, cacheDir: "/tmp/c"}, remaining: []string{"x.fi"}},
		{args: []string{"--", "--trace"}, remaining: []string{"--trace"}},
		{args: []string{"--color=rainbow"}, wantErr: true},
		{args: []string{"--cache-dir"}, wantErr: true},
		{args: []string{"--color="}, wantErr: true},
	}
	for _, tc := range cases {
		opts, remaining, err := parseOptions(tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseOptions(%v) expected error", tc.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseOptions(%v) error: %v", tc.args, err)
		}
		if opts != tc.want || !reflect.DeepEqual(remaining, tc.remaining) {
			t.Fatalf("parseOptions(%v) = %#v %v, want %#v %v", tc.args, opts, remaining, tc.want, tc.remaining)
		}
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "main.fi"), `
var greeting "hello world"
print greeting
`)

	for _, args := range [][]string{
		{"--no-trace", "run", "main.fi"},
		{"--no-trace", "main.fi"},
	} {
		code, stdout, stderr := captureCLI(t, args)
		if code != 0 {
			t.Fatalf("%v: exit %d (stderr=%q)", args, code, stderr)
		}
		if stdout != "hello world\n" {
			t.Fatalf("%v: stdout = %q", args, stdout)
		}
		if stderr != "" {
			t.Fatalf("%v: stderr = %q", args, stderr)
		}
	}
}

func TestOtherExtensionsAreIgnored(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "main.txt"), "print 1")

	code, stdout, stderr := captureCLI(t, []string{"run", "main.txt"})
	if code != 0 || stdout != "" || stderr != "" {
		t.Fatalf("expected silent no-op, got code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}

func TestScriptErrorsExitZero(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "main.fi"), `
print 1
print end
print 2
`)

	code, stdout, stderr := captureCLI(t, []string{"--no-trace", "--color=never", "main.fi"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if stdout != "1\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	want := "ERROR: File: main.fi, Line: 2, Error Message: Cannot call keywords in a print statement.\n"
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
}

func TestMissingScriptFails(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	code, _, stderr := captureCLI(t, []string{"--no-trace", "missing.fi"})
	if code != 1 || !strings.Contains(stderr, "failed to load script") {
		t.Fatalf("expected load failure, code=%d stderr=%q", code, stderr)
	}
}

func TestTracePrompt(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "main.fi"), "print 1")

	code, stdout, stderr := captureCLIWithInput(t, []string{"main.fi"}, "y\n")
	if code != 0 {
		t.Fatalf("exit %d (stderr=%q)", code, stderr)
	}
	if stdout != tracePrompt+"1\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, `(keyword, "print")`) || !strings.Contains(stderr, "print(1);") {
		t.Fatalf("expected trace output, got %q", stderr)
	}

	code, stdout, stderr = captureCLIWithInput(t, []string{"main.fi"}, "N\n")
	if code != 0 || stdout != tracePrompt+"1\n" || stderr != "" {
		t.Fatalf("declined trace: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}

func TestManifestDefaultTarget(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, driver.ManifestFileName), `
name: demo
trace: off
targets:
  app: src/main.fi
  other: src/other.fi
`)
	writeFile(t, filepath.Join(dir, "src", "main.fi"), "print 'app'")
	writeFile(t, filepath.Join(dir, "src", "other.fi"), "print 'other'")

	code, stdout, stderr := captureCLI(t, []string{"run"})
	if code != 0 || stdout != "app\n" {
		t.Fatalf("default target: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
	code, stdout, stderr = captureCLI(t, []string{"run", "other"})
	if code != 0 || stdout != "other\n" {
		t.Fatalf("named target: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}

func TestRunWithoutManifestOrScript(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	code, _, stderr := captureCLI(t, []string{"run"})
	if code != 1 || !strings.Contains(stderr, "requires a manifest target or script") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestManifestExtension(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, driver.ManifestFileName), `
name: demo
extension: firic
trace: off
`)
	writeFile(t, filepath.Join(dir, "main.firic"), "print 1")
	writeFile(t, filepath.Join(dir, "main.fi"), "print 2")

	code, stdout, _ := captureCLI(t, []string{"main.firic"})
	if code != 0 || stdout != "1\n" {
		t.Fatalf("custom extension: code=%d stdout=%q", code, stdout)
	}
	code, stdout, _ = captureCLI(t, []string{"main.fi"})
	if code != 0 || stdout != "" {
		t.Fatalf("default extension should be ignored: code=%d stdout=%q", code, stdout)
	}
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "main.fi"), "print 1")

	code, stdout, stderr := captureCLI(t, []string{"tokens", "main.fi"})
	if code != 0 {
		t.Fatalf("exit %d (stderr=%q)", code, stderr)
	}
	want := "1: [(keyword, \"print\"), (number, \"1\")]\n2: []\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestRunScriptFromGit(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)
	repo := filepath.Join(root, "scripts")
	writeFile(t, filepath.Join(repo, "main.fi"), `
func hello
print 'from git'
end
hello
`)
	initGitRepo(t, repo, "main.fi")

	cache := filepath.Join(root, "cache")
	code, stdout, stderr := captureCLI(t, []string{"--no-trace", "--cache-dir=" + cache, "run", "git+" + repo + "#main.fi"})
	if code != 0 {
		t.Fatalf("exit %d (stderr=%q)", code, stderr)
	}
	if stdout != "from git\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}
