package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitSourcePrefix = "git+"

// Source is a script loaded into memory, ready to tokenize.
type Source struct {
	// Name is what diagnostics print as the file.
	Name string
	// Path is the script's location on disk.
	Path     string
	Contents string
	// Origin describes where the script came from, e.g. "git+<url>@<commit>".
	Origin string
}

// SourceRef is a parsed script argument: either a local path or a file inside
// a git repository.
type SourceRef struct {
	Path string
	Git  *GitRef
}

// GitRef addresses a script at Path inside the repository at URL.
type GitRef struct {
	URL  string
	Rev  string
	Path string
}

func (r GitRef) String() string {
	out := gitSourcePrefix + r.URL
	if r.Rev != "" {
		out += "@" + r.Rev
	}
	return out + "#" + r.Path
}

// ParseSourceRef parses a script argument. Git references have the form
// git+<url>[@<rev>]#<path>; a revision must not contain '/' or ':' so that
// scp-style URLs such as git@host:org/repo.git are left intact.
func ParseSourceRef(arg string) (SourceRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return SourceRef{}, fmt.Errorf("source: empty script reference")
	}
	if !strings.HasPrefix(arg, gitSourcePrefix) {
		return SourceRef{Path: arg}, nil
	}
	rest := strings.TrimPrefix(arg, gitSourcePrefix)
	hash := strings.LastIndex(rest, "#")
	if hash < 0 {
		return SourceRef{}, fmt.Errorf("source: %s is missing a #<path> suffix", arg)
	}
	location, path := rest[:hash], strings.TrimSpace(rest[hash+1:])
	if path == "" {
		return SourceRef{}, fmt.Errorf("source: %s names no script path", arg)
	}
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return SourceRef{}, fmt.Errorf("source: script path %q must stay inside the repository", path)
	}
	ref := &GitRef{URL: location, Path: path}
	if at := strings.LastIndex(location, "@"); at >= 0 {
		if rev := location[at+1:]; rev != "" && !strings.ContainsAny(rev, "/:") {
			ref.URL, ref.Rev = location[:at], rev
		}
	}
	if strings.TrimSpace(ref.URL) == "" {
		return SourceRef{}, fmt.Errorf("source: %s names no repository", arg)
	}
	return SourceRef{Git: ref}, nil
}

// ScriptPath returns the path whose extension decides whether the script runs.
func (r SourceRef) ScriptPath() string {
	if r.Git != nil {
		return r.Git.Path
	}
	return r.Path
}

// HasExtension reports whether path ends in ".<ext>".
func HasExtension(path, ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return ext != "" && filepath.Ext(path) == "."+ext
}

// LoadFile reads a local script.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &Source{
		Name:     filepath.Base(path),
		Path:     path,
		Contents: string(data),
		Origin:   path,
	}, nil
}

// Load resolves ref to a script, fetching git references through fetcher.
func Load(ref SourceRef, fetcher *GitFetcher) (*Source, error) {
	if ref.Git == nil {
		return LoadFile(ref.Path)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("source: git fetcher unavailable for %s", ref.Git)
	}
	checkout, commit, err := fetcher.Fetch(*ref.Git)
	if err != nil {
		return nil, err
	}
	src, err := LoadFile(filepath.Join(checkout, filepath.FromSlash(ref.Git.Path)))
	if err != nil {
		return nil, err
	}
	src.Origin = fmt.Sprintf("%s%s@%s#%s", gitSourcePrefix, ref.Git.URL, commit, ref.Git.Path)
	return src, nil
}
