package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/acquire"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/fetch"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/layout"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/manifest"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/natives"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/platform"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/profile"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/progress"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/runlock"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/verify"
)

// commonOptions are the flags prepare and launch share.
type commonOptions struct {
	profilePath string
	gameDir     string
	gameVersion string
	username    string
	java        string
	debug       bool
}

// bootstrap wires the pipeline for one run: profile, platform, layout,
// run lock, logging, progress, fetcher and orchestrator.
type bootstrap struct {
	prof     *profile.Profile
	info     *platform.Info
	lay      *layout.Layout
	log      logging.Logger
	sink     *progress.Async
	fetcher  *fetch.Fetcher
	orch     *acquire.Orchestrator
	client   *manifest.Client
	resolver *manifest.Resolver
	lock     *runlock.Lock
}

// newBootstrap loads the profile, applies flag overrides, takes the run
// lock and assembles the pipeline. Callers must Close it.
func newBootstrap(ctx context.Context, opts commonOptions) (*bootstrap, error) {
	log, err := logging.NewZap(opts.debug)
	if err != nil {
		return nil, err
	}

	detector := platform.NewDetector()
	info, err := detector.Detect(ctx)
	if err != nil {
		return nil, err
	}

	prof := profile.Default()
	if opts.profilePath != "" {
		prof, err = profile.NewParser(detector).ParseFile(ctx, opts.profilePath)
		if err != nil {
			return nil, fmt.Errorf("load profile: %s", profile.FormatError(err, opts.debug))
		}
	}
	if opts.gameDir != "" {
		prof.GameDir = opts.gameDir
	}
	if opts.gameVersion != "" {
		prof.Version = opts.gameVersion
	}
	if opts.username != "" {
		prof.Username = opts.username
	}
	if opts.java != "" {
		prof.Java = opts.java
	}

	if prof.GameDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		prof.GameDir = filepath.Join(home, ".craftboot")
	}

	lay := layout.New(prof.GameDir)
	if err := lay.Ensure(); err != nil {
		return nil, err
	}

	lock, err := runlock.Acquire(lay.Root)
	if err != nil {
		return nil, err
	}

	console := progress.NewConsole(os.Stdout)
	sink := progress.NewAsync(console.Publish, 512)

	policy := fetch.RetryPolicy{MaxAttempts: prof.Downloads.MaxAttempts}
	fetcher := fetch.New(policy, sink, log)
	orch := acquire.NewOrchestrator(fetcher, natives.New(log), sink, log, acquire.Options{
		FetchWorkers:  prof.Downloads.FetchWorkers,
		UnpackWorkers: prof.Downloads.UnpackWorkers,
	})

	return &bootstrap{
		prof:     prof,
		info:     info,
		lay:      lay,
		log:      log,
		sink:     sink,
		fetcher:  fetcher,
		orch:     orch,
		client:   manifest.NewClient(prof.ManifestURL, log),
		resolver: manifest.NewResolver(lay, info, prof.AssetBaseURL, log),
		lock:     lock,
	}, nil
}

// Close drains the progress sink and releases the run lock.
func (b *bootstrap) Close() {
	b.sink.Close()
	if err := b.lock.Release(); err != nil {
		b.log.Warn("release run lock", "error", err)
	}
}

// prepared is the outcome of acquiring one version.
type prepared struct {
	version *manifest.Version
	result  *acquire.Result
	// classPaths holds the acquired library jars in manifest order,
	// followed by the client jar.
	classPaths []string
}

// prepareVersion resolves the requested version and drives acquisition:
// version document, client archive, libraries, asset index and assets.
// When the profile configures a signature, the client archive is
// checked against the trusted keyring before the result is returned.
func prepareVersion(ctx context.Context, b *bootstrap) (*prepared, error) {
	index, err := b.client.VersionIndex(ctx)
	if err != nil {
		return nil, err
	}
	meta, err := index.Find(b.prof.Version)
	if err != nil {
		return nil, err
	}

	// The version document gates everything else, so it is fetched
	// before the plan is built.
	if err := b.fetcher.Fetch(ctx, b.resolver.VersionArtifact(meta)); err != nil {
		return nil, err
	}
	v, err := manifest.ReadVersion(b.lay.VersionJSON(meta.ID))
	if err != nil {
		return nil, err
	}

	artifacts := make([]fetch.Artifact, 0, 64)

	client, err := b.resolver.ClientArtifact(v)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, client)

	libraries := b.resolver.LibraryArtifacts(v)
	artifacts = append(artifacts, libraries...)

	if idxArtifact, ok := b.resolver.AssetIndexArtifact(v); ok {
		// The asset index must be readable before assets can be
		// planned, so it too is fetched up front.
		if err := b.fetcher.Fetch(ctx, idxArtifact); err != nil {
			return nil, err
		}
		assetIndex, err := manifest.ReadAssetIndex(idxArtifact.LocalPath)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, b.resolver.AssetArtifacts(assetIndex)...)
	}

	res, err := b.orch.Acquire(ctx, artifacts, b.lay.NativesDir(v.ID))
	if err != nil {
		return nil, err
	}

	if res.Readiness != acquire.NotReady && b.prof.Signature.URL != "" {
		if err := verifyClient(ctx, b, client.LocalPath); err != nil {
			return nil, err
		}
	}

	var classPaths []string
	for _, lib := range libraries {
		if lib.Kind == fetch.KindOrdinary && res.Contains(lib.LocalPath) {
			classPaths = append(classPaths, lib.LocalPath)
		}
	}
	if res.Contains(client.LocalPath) {
		classPaths = append(classPaths, client.LocalPath)
	}

	return &prepared{version: v, result: res, classPaths: classPaths}, nil
}

// verifyClient fetches the detached signature and checks the client
// archive against the profile's trusted keyring.
func verifyClient(ctx context.Context, b *bootstrap, clientPath string) error {
	sigPath := clientPath + ".asc"
	err := b.fetcher.Fetch(ctx, fetch.Artifact{
		Name:       filepath.Base(sigPath),
		LocalPath:  sigPath,
		URL:        b.prof.Signature.URL,
		Applicable: true,
	})
	if err != nil {
		return fmt.Errorf("fetch client signature: %w", err)
	}

	if err := verify.NewVerifier(b.prof.Signature.Keyring).VerifyDetached(clientPath, sigPath); err != nil {
		return err
	}
	b.log.Info("client signature verified", "client", clientPath)
	return nil
}

// reportResult prints a one-line acquisition summary.
func reportResult(res *acquire.Result) {
	fmt.Println()
	switch res.Readiness {
	case acquire.Ready:
		fmt.Printf("Ready: %d files in place, %d native archives unpacked\n",
			len(res.Paths), res.Unpacked)
	case acquire.Degraded:
		fmt.Printf("Degraded: %d files in place, %d fetch failures, %d unpack failures\n",
			len(res.Paths), len(res.FetchFailures), len(res.UnpackFailures))
	case acquire.NotReady:
		fmt.Printf("Not ready: a critical artifact failed (%d fetch failures)\n",
			len(res.FetchFailures))
	}
}
