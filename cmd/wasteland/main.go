// Package main provides the wasteland command-line rules engine. Each
// invocation runs one command against the persisted session and prints one
// JSON object to stdout.
package main

import (
	"os"
)

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).execute(os.Args[1:]))
}
