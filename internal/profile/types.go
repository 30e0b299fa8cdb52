// Package profile loads launch profiles written in Lua. Profiles are
// declarative: the VM is sandboxed, and a read-only platform table is
// injected so profiles can branch on the host without touching it.
package profile

import (
	"fmt"
	"runtime"
)

// Downloads tunes the acquisition pipeline.
type Downloads struct {
	MaxAttempts   int
	FetchWorkers  int
	UnpackWorkers int
}

// Signature points at a detached signature for the client archive and
// the keyring to verify it against. Both must be set for verification
// to run.
type Signature struct {
	URL     string
	Keyring string
}

// Profile is one parsed launch profile.
type Profile struct {
	GameDir  string
	Version  string
	Username string
	Java     string

	ManifestURL  string
	AssetBaseURL string

	Downloads Downloads
	Signature Signature

	ExtraJVMArgs  []string
	ExtraGameArgs []string
}

// Default returns a profile with the stock settings applied.
func Default() *Profile {
	return &Profile{
		Version:  "latest-release",
		Username: "Player",
		Java:     "java",
		Downloads: Downloads{
			MaxAttempts:   3,
			FetchWorkers:  16,
			UnpackWorkers: runtime.NumCPU(),
		},
	}
}

// Validate checks the profile for values the pipeline cannot run with.
func (p *Profile) Validate() error {
	if p.Version == "" {
		return fmt.Errorf("version must not be empty")
	}
	if p.Username == "" {
		return fmt.Errorf("username must not be empty")
	}
	if p.Downloads.MaxAttempts < 1 {
		return fmt.Errorf("downloads.max_attempts must be at least 1, got %d", p.Downloads.MaxAttempts)
	}
	if p.Downloads.FetchWorkers < 1 {
		return fmt.Errorf("downloads.fetch_workers must be at least 1, got %d", p.Downloads.FetchWorkers)
	}
	if p.Downloads.UnpackWorkers < 1 {
		return fmt.Errorf("downloads.unpack_workers must be at least 1, got %d", p.Downloads.UnpackWorkers)
	}
	if (p.Signature.URL == "") != (p.Signature.Keyring == "") {
		return fmt.Errorf("signature.url and signature.keyring must be set together")
	}
	return nil
}
