package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/jre"
)

// runRuntimes handles the `craftboot runtimes` subcommand: list the
// managed Java runtimes published for this host, optionally install
// one.
func runRuntimes(args []string) error {
	var opts commonOptions
	install := false
	showHelp := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp = true
		case "--debug":
			opts.debug = true
		case "--install":
			install = true
		case "--profile":
			if i+1 >= len(args) {
				return fmt.Errorf("--profile requires a value")
			}
			i++
			opts.profilePath = args[i]
		case "--game-dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--game-dir requires a value")
			}
			i++
			opts.gameDir = args[i]
		default:
			return fmt.Errorf("unknown option: %s\nRun 'craftboot runtimes --help' for usage", args[i])
		}
	}

	if showHelp {
		printRuntimesHelp()
		return nil
	}

	ctx := context.Background()
	b, err := newBootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	runtimes, err := jre.NewClient("").Available(ctx)
	if err != nil {
		return err
	}

	published := runtimes.ForArch(b.info.Arch)
	if len(published) == 0 {
		fmt.Printf("No managed runtimes published for %s\n", b.info.Arch)
		return nil
	}

	fmt.Printf("Managed runtimes for %s:\n", b.info.Arch)
	for _, rt := range published {
		fmt.Printf("  %-10s released %s  (%d bytes)\n",
			rt.Version.Name, rt.Version.Released.Format("2006-01-02"), rt.Manifest.Size)
	}

	if !install {
		return nil
	}

	// Install the newest published runtime.
	newest := published[0]
	for _, rt := range published[1:] {
		if rt.Version.Released.After(newest.Version.Released) {
			newest = rt
		}
	}

	artifact := jre.RuntimeArtifact(newest, b.info.Arch, b.lay)
	fmt.Printf("Installing %s...\n", artifact.Name)
	if err := b.fetcher.Fetch(ctx, artifact); err != nil {
		return err
	}

	payload := artifact.LocalPath
	if strings.HasSuffix(payload, ".lzma") {
		payload, err = jre.Decompress(payload, true)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Runtime payload ready at %s\n", payload)
	return nil
}

func printRuntimesHelp() {
	fmt.Println("Usage: craftboot runtimes [options]")
	fmt.Println()
	fmt.Println("List the managed Java runtimes published for this host's")
	fmt.Println("architecture. With --install, download and unpack the newest one")
	fmt.Println("into the game directory's runtimes store.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --install          Install the newest published runtime")
	fmt.Println("  --profile <path>   Lua launch profile")
	fmt.Println("  --game-dir <dir>   Game directory (default ~/.craftboot)")
	fmt.Println("  --debug            Verbose, human-readable logging")
	fmt.Println("  --help, -h         Show this help")
}
