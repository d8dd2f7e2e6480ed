package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(report(err))
	}
}

// report prints err to stderr and returns the process exit code.
func report(err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		if ece.msg != "" {
			fmt.Fprintln(os.Stderr, "Error: "+ece.msg)
		}
		return ece.code
	}
	fmt.Fprintln(os.Stderr, "Error: "+err.Error())
	return ExitInvalidArgs
}
