// Package main is the entry point for the shotmetrics CLI tool, which
// transforms tennis shot-tracking archives into flat per-shot CSV files.
package main

import "github.com/pable/go-shot-metrics/cmd"

func main() {
	cmd.Execute()
}
