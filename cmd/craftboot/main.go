package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("craftboot %s\n", Version)
			fmt.Println("Content-verified game client bootstrapper")
			return
		case "prepare":
			if err := runPrepare(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "launch":
			if err := runLaunch(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "runtimes":
			if err := runRuntimes(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	printUsage()
}

func printUsage() {
	fmt.Println("craftboot - content-verified game client bootstrapper")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  craftboot --version             Show version information")
	fmt.Println("  craftboot prepare [options]     Acquire and verify a version without launching")
	fmt.Println("  craftboot launch [options]      Acquire, verify and start a version")
	fmt.Println("  craftboot runtimes [options]    List or install managed Java runtimes")
	fmt.Println()
	fmt.Println("Common options:")
	fmt.Println("  --profile <path>   Lua launch profile")
	fmt.Println("  --game-dir <dir>   Game directory (default ~/.craftboot)")
	fmt.Println("  --game-version <id>  Version to acquire (default latest-release)")
	fmt.Println("  --debug            Verbose, human-readable logging")
}
