// Package main implements the entry point for the casetriage command line
// tool, which sends a batch of court opinions to an LLM analysis service
// under a concurrency cap and persists the structured results.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
