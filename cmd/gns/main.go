package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli"
	"github.com/GainsNetwork/GNS-ethereum/internal/config"
)

// Set by -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		os.Exit(1)
	}
}
