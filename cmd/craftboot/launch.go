package main

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/acquire"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/launch"
)

// runLaunch handles the `craftboot launch` subcommand: acquire, verify
// and start the client.
func runLaunch(args []string) error {
	opts, showHelp, err := parseCommonOptions(args, "launch")
	if err != nil {
		return err
	}
	if showHelp {
		printLaunchHelp()
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

	if prep.result.Readiness == acquire.NotReady {
		return fmt.Errorf("version %s is not launchable: a critical artifact could not be acquired", prep.version.ID)
	}
	if prep.result.Readiness == acquire.Degraded {
		b.log.Warn("launching a degraded install",
			"fetch_failures", len(prep.result.FetchFailures),
			"unpack_failures", len(prep.result.UnpackFailures))
	}

	session := launch.NewOfflineSession(b.prof.Username)
	composer := launch.NewComposer(b.info, b.log)
	cmd, err := composer.Compose(launch.Inputs{
		Version:       prep.version,
		Session:       session,
		Java:          b.prof.Java,
		GameDir:       b.lay.Root,
		AssetsDir:     b.lay.AssetsDir(),
		NativesDir:    b.lay.NativesDir(prep.version.ID),
		LibrariesDir:  b.lay.LibrariesDir(),
		ClassPaths:    prep.classPaths,
		ExtraJVMArgs:  b.prof.ExtraJVMArgs,
		ExtraGameArgs: b.prof.ExtraGameArgs,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Launching %s as %s\n", prep.version.ID, session.Username)
	return launch.NewRunner(b.log).Run(ctx, cmd)
}

func printLaunchHelp() {
	fmt.Println("Usage: craftboot launch [options]")
	fmt.Println()
	fmt.Println("Acquire a game version and start the client. The run aborts if a")
	fmt.Println("critical artifact cannot be verified.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --profile <path>      Lua launch profile")
	fmt.Println("  --game-dir <dir>      Game directory (default ~/.craftboot)")
	fmt.Println("  --game-version <id>   Version to launch (default latest-release)")
	fmt.Println("  --username <name>     Offline player name (default Player)")
	fmt.Println("  --java <path>         Java executable (default java)")
	fmt.Println("  --debug               Verbose, human-readable logging")
	fmt.Println("  --help, -h            Show this help")
}
