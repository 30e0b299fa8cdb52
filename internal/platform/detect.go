package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns host information in
// the manifest's vocabulary. OS and architecture come from
// runtime.GOOS/GOARCH; the OS version string comes from gopsutil.
//
// If version detection fails the OSVersion field is left empty and
// detection succeeds anyway; only rules carrying a version matcher
// need it, and those simply won't match.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{ArchRaw: runtime.GOARCH}

	os, err := normalizeOS(runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info.OS = os

	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info.Arch = arch

	_, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		// Context cancellation is a hard failure; anything else is a
		// graceful fallback to version-less info.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}
	info.OSVersion = version

	return info, nil
}
