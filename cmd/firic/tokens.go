package main

import (
	"fmt"
	"os"

	"github.com/Firice1269/Firic/pkg/driver"
	"github.com/Firice1269/Firic/pkg/lexer"
)

func runTokens(args []string, opts cliOptions) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "firic tokens expects exactly one script")
		return 1
	}
	ref, err := driver.ParseSourceRef(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	src, err := driver.Load(ref, driver.NewGitFetcher(resolveCacheDir(opts)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load script: %v\n", err)
		return 1
	}

	scanner := lexer.NewScanner(src.Contents)
	for {
		line, ok := scanner.Next()
		if !ok {
			break
		}
		fmt.Fprintf(os.Stdout, "%d: %s\n", line.Number, line)
	}
	return 0
}
