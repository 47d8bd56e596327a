// Package main is the entry point for the IronPulse application.
package main

import (
	"flag"
	"fmt"
	"os"

	"ironpulse/local-app/internal/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", config.DefaultPath, "Path to the JSON config file")
	flag.StringVar(&configPath, "c", config.DefaultPath, "Path to the JSON config file (shorthand)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: ironpulse [-config path] [script ...]")
		fmt.Fprintln(os.Stderr, "Scripts run before the interactive prompt starts, one command per line.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := bootstrap(configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
