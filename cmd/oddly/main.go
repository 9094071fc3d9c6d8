// ABOUTME: Command line companion to the API for running one-off operations
// ABOUTME: Shares the server's configuration and wiring through internal/app

package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
