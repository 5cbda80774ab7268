// ABOUTME: Entry point for the phishguard CLI
// ABOUTME: Command-line client for the PhishGuard security-awareness platform

package main

import (
	"fmt"
	"os"

	"github.com/nickigann03/phishguard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
