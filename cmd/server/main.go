// Package main is the entry point for the vocabulary coach backend. It serves
// the HTTP API and carries the operational commands: schema migrations,
// catalog imports and token minting for local testing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
