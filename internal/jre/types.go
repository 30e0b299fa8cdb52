// Package jre discovers and installs the managed Java runtimes the
// distribution publishes alongside game versions. Runtime payloads are
// LZMA-compressed archives.
package jre

import (
	"time"
)

// Availability describes a runtime's rollout state.
type Availability struct {
	Group    int `json:"group"`
	Progress int `json:"progress"`
}

// Manifest points at a runtime payload.
type Manifest struct {
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// Version names a runtime release.
type Version struct {
	Name     string    `json:"name"`
	Released time.Time `json:"released"`
}

// Runtime is one published runtime build.
type Runtime struct {
	Availability Availability `json:"availability"`
	Manifest     Manifest     `json:"manifest"`
	Version      Version      `json:"version"`
}

// Runtimes groups published runtimes by architecture.
type Runtimes struct {
	X64 []Runtime `json:"jre-x64"`
	X86 []Runtime `json:"jre-x86"`
}

// ForArch returns the runtimes published for the given normalized
// architecture. x86 is the only 32-bit channel; everything else gets
// the 64-bit one.
func (r *Runtimes) ForArch(arch string) []Runtime {
	if arch == "x86" {
		return r.X86
	}
	return r.X64
}
