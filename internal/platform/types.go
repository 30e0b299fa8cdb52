// Package platform provides host detection normalized to the vocabulary
// the distribution manifest uses in platform rules and native
// classifiers: operating systems are named windows/linux/osx and
// architectures x64/x86/arm64.
//
// Detection uses runtime.GOOS/GOARCH for the coarse identity and
// gopsutil for the OS version string that version-bearing rules match
// against, with graceful fallback when version detection fails.
package platform

import "context"

// Operating system names as they appear in manifest rules.
const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSMacOS   = "osx"
)

// Architecture names as they appear in manifest rules.
const (
	ArchX64   = "x64"
	ArchX86   = "x86"
	ArchARM64 = "arm64"
)

// Info contains detected host information in manifest vocabulary.
type Info struct {
	OS        string // "windows", "linux", "osx"
	OSVersion string // host OS version, empty when detection failed
	Arch      string // "x64", "x86", "arm64" (normalized)
	ArchRaw   string // original GOARCH (e.g. "amd64", "386")
}

// IsWindows reports whether the host runs Windows.
func (i *Info) IsWindows() bool { return i.OS == OSWindows }

// IsLinux reports whether the host runs Linux.
func (i *Info) IsLinux() bool { return i.OS == OSLinux }

// IsMacOS reports whether the host runs macOS.
func (i *Info) IsMacOS() bool { return i.OS == OSMacOS }

// Bits returns the value substituted for ${arch} in native classifiers:
// "32" on x86, "64" everywhere else.
func (i *Info) Bits() string {
	if i.Arch == ArchX86 {
		return "32"
	}
	return "64"
}

// Detector detects host platform information.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
