package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitInvalidArgs = 2
)

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "download":
		return runDownload(cmdArgs)
	case "verify":
		return runVerify(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: bpd <command> [options]

Commands:
  download  Bulk-download kline archives from the exchange's public data repository
  verify    Verify downloaded archives against their .CHECKSUM sidecar files

Run 'bpd <command> -h' for command-specific help.`)
}
