package main

import (
	"context"
	"fmt"
)

// runPrepare handles the `craftboot prepare` subcommand: acquire and
// verify a version without starting the client.
func runPrepare(args []string) error {
	opts, showHelp, err := parseCommonOptions(args, "prepare")
	if err != nil {
		return err
	}
	if showHelp {
		printPrepareHelp()
		return nil
	}

	ctx := context.Background()
	b, err := newBootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	prep, err := prepareVersion(ctx, b)
	if err != nil {
		return err
	}

	reportResult(prep.result)
	fmt.Printf("Version %s prepared in %s\n", prep.version.ID, b.lay.Root)
	return nil
}

// parseCommonOptions parses the flags prepare and launch share.
func parseCommonOptions(args []string, command string) (commonOptions, bool, error) {
	var opts commonOptions
	showHelp := false

	valueFlags := map[string]*string{
		"--profile":      &opts.profilePath,
		"--game-dir":     &opts.gameDir,
		"--game-version": &opts.gameVersion,
		"--username":     &opts.username,
		"--java":         &opts.java,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			showHelp = true
		case "--debug":
			opts.debug = true
		default:
			dst, ok := valueFlags[arg]
			if !ok {
				return opts, false, fmt.Errorf("unknown option: %s\nRun 'craftboot %s --help' for usage", arg, command)
			}
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("%s requires a value\nRun 'craftboot %s --help' for usage", arg, command)
			}
			i++
			*dst = args[i]
		}
	}

	return opts, showHelp, nil
}

func printPrepareHelp() {
	fmt.Println("Usage: craftboot prepare [options]")
	fmt.Println()
	fmt.Println("Acquire and verify a game version without launching it. Already")
	fmt.Println("verified files are skipped, corrupted ones are replaced.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --profile <path>      Lua launch profile")
	fmt.Println("  --game-dir <dir>      Game directory (default ~/.craftboot)")
	fmt.Println("  --game-version <id>   Version to acquire (default latest-release)")
	fmt.Println("  --debug               Verbose, human-readable logging")
	fmt.Println("  --help, -h            Show this help")
}
