package main

import (
	"fmt"
	"strings"

	"github.com/Firice1269/Firic/pkg/driver"
)

type cliOptions struct {
	// trace is empty unless --trace or --no-trace was given.
	trace    driver.TraceMode
	color    driver.ColorMode
	cacheDir string
}

func parseOptions(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--trace":
			opts.trace = driver.TraceOn
		case arg == "--no-trace":
			opts.trace = driver.TraceOff
		case arg == "--color" || arg == "--cache-dir":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("%s expects a value", arg)
			}
			if err := opts.set(arg, args[i+1]); err != nil {
				return opts, nil, err
			}
			i++
		case strings.HasPrefix(arg, "--color="), strings.HasPrefix(arg, "--cache-dir="):
			name, value, _ := strings.Cut(arg, "=")
			if err := opts.set(name, value); err != nil {
				return opts, nil, err
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining, nil
}

func (o *cliOptions) set(name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s expects a value", name)
	}
	switch name {
	case "--color":
		mode := driver.ColorMode(strings.ToLower(value))
		if !mode.IsValid() {
			return fmt.Errorf("unknown --color value '%s' (expected auto, always or never)", value)
		}
		o.color = mode
	case "--cache-dir":
		o.cacheDir = value
	}
	return nil
}
