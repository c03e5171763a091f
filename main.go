package main

import (
	"context"
	"fmt"
	"os"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
