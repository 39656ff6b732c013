package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  firic [options] run [target]")
	fmt.Fprintln(os.Stderr, "  firic [options] run <file.fi>")
	fmt.Fprintln(os.Stderr, "  firic [options] run git+<url>[@rev]#<file.fi>")
	fmt.Fprintln(os.Stderr, "  firic [options] <file.fi>")
	fmt.Fprintln(os.Stderr, "  firic tokens <file.fi>")
	fmt.Fprintln(os.Stderr, "  firic version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --trace, --no-trace       enable or disable debug mode without prompting")
	fmt.Fprintln(os.Stderr, "  --color=auto|always|never colour diagnostics")
	fmt.Fprintln(os.Stderr, "  --cache-dir=<dir>         where git scripts are checked out")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment: FIRIC_TRACE, FIRIC_CACHE, NO_COLOR")
}
