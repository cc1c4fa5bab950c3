// Command fastclick-vet checks that debounce marker identities are unique
// within each declaring type.
//
// Usage:
//
//	fastclick-vet [-v] [-dir path] [packages]
//
// Packages default to ./... . The exit status is 1 when a duplicate identity
// or a malformed directive is found.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/billie-coop/fastclick/internal/inspect"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fastclick-vet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "list every marker found")
	dir := fs.String("dir", ".", "directory to resolve package patterns from")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	patterns := fs.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	report, err := inspect.Load(*dir, patterns...)
	if err != nil {
		fmt.Fprintf(stderr, "fastclick-vet: %v\n", err)
		return 2
	}

	if *verbose {
		for _, f := range report.Findings {
			fmt.Fprintf(stdout, "%s: %s %s\n", f.Pos, f.Scope(), f.Marker)
		}
	}

	errs := report.Validate()
	for _, e := range errs {
		fmt.Fprintln(stderr, e)
	}
	if len(errs) > 0 {
		return 1
	}
	return 0
}
