package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/Firice1269/Firic/pkg/driver"
	"github.com/Firice1269/Firic/pkg/interpreter"
)

const tracePrompt = "Enable Debug Mode? (Y/N) "

// entryPoint is a resolved script together with the configuration that
// applies to it.
type entryPoint struct {
	ref      driver.SourceRef
	manifest *driver.Manifest
	target   *driver.TargetSpec
}

func runEntry(args []string, opts cliOptions) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, err := loadManifestFrom(".")
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrManifestNotFound):
			manifest = nil
		case len(args) == 1:
			fmt.Fprintf(os.Stderr, "warning: unable to load manifest (%v); falling back to direct file execution\n", err)
			manifest = nil
		default:
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
	}

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintf(os.Stderr, "firic run requires a manifest target or script (%s not found)\n", driver.ManifestFileName)
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		return executeEntry(targetEntry(manifest, target), opts)
	}

	candidate := args[0]
	if target, ok := manifest.FindTarget(candidate); ok {
		return executeEntry(targetEntry(manifest, target), opts)
	}

	ref, err := driver.ParseSourceRef(candidate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	entry := entryPoint{ref: ref, manifest: manifest}
	if ref.Git == nil {
		// A manifest next to the script takes precedence over the one in the
		// working directory.
		if abs, err := filepath.Abs(ref.Path); err == nil {
			manifestPath, findErr := driver.FindManifest(filepath.Dir(abs))
			switch {
			case findErr == nil:
				if manifest == nil || filepath.Clean(manifest.Path) != filepath.Clean(manifestPath) {
					m, loadErr := driver.LoadManifest(manifestPath)
					if loadErr != nil {
						fmt.Fprintf(os.Stderr, "failed to read manifest for %s: %v\n", candidate, loadErr)
						return 1
					}
					entry.manifest = m
				}
			case !errors.Is(findErr, driver.ErrManifestNotFound):
				fmt.Fprintf(os.Stderr, "failed to locate manifest for %s: %v\n", candidate, findErr)
				return 1
			}
		}
	}
	return executeEntry(entry, opts)
}

func targetEntry(manifest *driver.Manifest, target *driver.TargetSpec) entryPoint {
	return entryPoint{
		ref:      driver.SourceRef{Path: manifest.ResolveMain(target)},
		manifest: manifest,
		target:   target,
	}
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func executeEntry(entry entryPoint, opts cliOptions) int {
	// Scripts with any other extension are ignored without a word.
	if !driver.HasExtension(entry.ref.ScriptPath(), entry.manifest.ScriptExtension()) {
		return 0
	}

	src, err := driver.Load(entry.ref, driver.NewGitFetcher(resolveCacheDir(opts)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load script: %v\n", err)
		return 1
	}

	traceOn, err := resolveTrace(opts, entry, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read debug mode answer: %v\n", err)
		return 1
	}
	cfg := interpreter.Config{
		File:   src.Name,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Color:  driver.UseColor(resolveColor(opts, entry.manifest), os.Stderr),
	}
	if traceOn {
		cfg.Trace = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := interpreter.New(cfg).RunSource(ctx, src.Contents)
	if err := result.Err(); err != nil && errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "interrupted: %v\n", err)
		return 1
	}
	// Script errors have already been reported and do not change the exit
	// status.
	return 0
}

// resolveTrace decides debug mode. Flags win over FIRIC_TRACE, which wins
// over the target and then the manifest; otherwise the user is asked.
func resolveTrace(opts cliOptions, entry entryPoint, in io.Reader, out io.Writer) (bool, error) {
	mode := opts.trace
	if mode == "" && env.Has("FIRIC_TRACE") {
		if env.Bool("FIRIC_TRACE") {
			mode = driver.TraceOn
		} else {
			mode = driver.TraceOff
		}
	}
	if mode == "" && entry.target != nil {
		mode = entry.target.Trace
	}
	if mode == "" && entry.manifest != nil {
		mode = entry.manifest.Trace
	}
	switch mode {
	case driver.TraceOn:
		return true, nil
	case driver.TraceOff:
		return false, nil
	default:
		return promptYesNo(in, out, tracePrompt)
	}
}

func promptYesNo(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y"), nil
}

func resolveColor(opts cliOptions, manifest *driver.Manifest) driver.ColorMode {
	switch {
	case opts.color != "":
		return opts.color
	case env.Has("NO_COLOR"):
		return driver.ColorNever
	case manifest != nil && manifest.Color != "":
		return manifest.Color
	default:
		return driver.ColorAuto
	}
}

func resolveCacheDir(opts cliOptions) string {
	if opts.cacheDir != "" {
		return opts.cacheDir
	}
	if dir := env.Str("FIRIC_CACHE"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "firic")
}
