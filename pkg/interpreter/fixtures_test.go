package interpreter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type scriptFixtureFile struct {
	Cases []scriptFixture `yaml:"cases"`
}

type scriptFixture struct {
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	Stdout      string   `yaml:"stdout"`
	Status      string   `yaml:"status"`
	HaltLine    int      `yaml:"halt_line"`
	Diagnostics []string `yaml:"diagnostics"`
}

func TestScriptFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		file := loadFixtureFile(t, path)
		group := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, fixture := range file.Cases {
			t.Run(group+"/"+fixture.Name, func(t *testing.T) {
				runScriptFixture(t, fixture)
			})
		}
	}
}

func loadFixtureFile(t *testing.T, path string) scriptFixtureFile {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file scriptFixtureFile
	if err := dec.Decode(&file); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return file
}

func runScriptFixture(t *testing.T, fixture scriptFixture) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	interp := New(Config{File: "main.fi", Stdout: &stdout, Stderr: &stderr})
	result := interp.RunSource(context.Background(), fixture.Source)

	if got := stdout.String(); got != fixture.Stdout {
		t.Fatalf("stdout = %q, want %q", got, fixture.Stdout)
	}
	if got := result.Status.String(); got != fixture.Status {
		t.Fatalf("status = %s, want %s (diagnostics: %s)", got, fixture.Status, stderr.String())
	}
	if result.HaltLine != fixture.HaltLine {
		t.Fatalf("halt line = %d, want %d", result.HaltLine, fixture.HaltLine)
	}
	kinds := make([]string, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	want := fixture.Diagnostics
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("diagnostics = %v, want %v\n%s", kinds, want, stderr.String())
	}
	if got := strings.Count(stderr.String(), "\n"); got != len(kinds) {
		t.Fatalf("expected %d stderr lines, got %d: %q", len(kinds), got, stderr.String())
	}
}
