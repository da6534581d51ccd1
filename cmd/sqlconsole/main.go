// Package main is the entry point for the sqlconsole operator console.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlconsole/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
