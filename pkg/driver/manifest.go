package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file looked up next to scripts.
const ManifestFileName = "firic.yml"

// DefaultExtension is the script extension accepted when no manifest
// overrides it.
const DefaultExtension = "fi"

var (
	ErrManifestNotFound = errors.New("firic.yml not found")
	ErrNoTargets        = errors.New("manifest: no targets defined")
)

// TraceMode decides whether verbose tracing is enabled for a run.
type TraceMode string

const (
	TracePrompt TraceMode = "prompt"
	TraceOn     TraceMode = "on"
	TraceOff    TraceMode = "off"
)

// IsValid reports whether the mode is recognised. The empty mode means
// "not configured".
func (m TraceMode) IsValid() bool {
	switch m {
	case "", TracePrompt, TraceOn, TraceOff:
		return true
	default:
		return false
	}
}

// ColorMode decides whether diagnostics are highlighted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Manifest represents the parsed contents of firic.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Extension   string
	Trace       TraceMode
	Color       ColorMode
	Targets     map[string]*TargetSpec
	TargetOrder []string
}

// TargetSpec names a runnable script.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
	Trace        TraceMode
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses firic.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start up to the filesystem root looking for
// firic.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if strings.ContainsAny(m.Extension, `./\ `) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("extension %q must be a bare suffix such as %q", m.Extension, DefaultExtension))
	}
	if !m.Trace.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("trace must be one of prompt, on, off (got %q)", m.Trace))
	}
	if !m.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", m.Color))
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main script", target.OriginalName))
		}
		if !target.Trace.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q has unsupported trace mode %q", target.OriginalName, target.Trace))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ScriptExtension returns the configured extension, defaulting to "fi".
func (m *Manifest) ScriptExtension() string {
	if m == nil || m.Extension == "" {
		return DefaultExtension
	}
	return m.Extension
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[sanitizeSegment(name)]; ok {
		return target, true
	}
	for _, key := range m.TargetOrder {
		if strings.EqualFold(m.Targets[key].OriginalName, name) {
			return m.Targets[key], true
		}
	}
	return nil, false
}

// ResolveMain returns the target's script path relative to the manifest.
func (m *Manifest) ResolveMain(target *TargetSpec) string {
	if target == nil {
		return ""
	}
	if filepath.IsAbs(target.Main) || m == nil || m.Path == "" {
		return target.Main
	}
	return filepath.Join(filepath.Dir(m.Path), target.Main)
}

type manifestFile struct {
	Name      string    `yaml:"name"`
	Version   string    `yaml:"version"`
	Extension string    `yaml:"extension"`
	Trace     string    `yaml:"trace"`
	Color     string    `yaml:"color"`
	Targets   targetMap `yaml:"targets"`
}

type targetYAML struct {
	Main  string `yaml:"main"`
	Trace string `yaml:"trace"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if err := entry.unmarshalYAML(valueNode); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

// unmarshalYAML accepts either a bare script path or a mapping.
func (t *targetYAML) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = targetYAML{Main: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Main  string `yaml:"main"`
			Trace string `yaml:"trace"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*t = targetYAML{Main: strings.TrimSpace(raw.Main), Trace: strings.TrimSpace(raw.Trace)}
		return nil
	case yaml.AliasNode:
		return t.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:     strings.TrimSpace(mf.Version),
		Extension:   strings.TrimPrefix(strings.TrimSpace(mf.Extension), "."),
		Trace:       TraceMode(strings.ToLower(strings.TrimSpace(mf.Trace))),
		Color:       ColorMode(strings.ToLower(strings.TrimSpace(mf.Color))),
		Targets:     make(map[string]*TargetSpec, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
	}
	for _, item := range mf.Targets.items {
		sanitized := sanitizeSegment(item.name)
		if _, exists := result.Targets[sanitized]; exists {
			continue
		}
		result.Targets[sanitized] = &TargetSpec{
			Name:         sanitized,
			OriginalName: item.name,
			Main:         item.spec.Main,
			Trace:        TraceMode(strings.ToLower(item.spec.Trace)),
		}
		result.TargetOrder = append(result.TargetOrder, sanitized)
	}
	return result
}

func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}
