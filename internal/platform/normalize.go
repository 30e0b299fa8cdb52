package platform

import "fmt"

// normalizeOS converts GOOS values to the manifest's OS names.
func normalizeOS(goos string) (string, error) {
	switch goos {
	case "windows":
		return OSWindows, nil
	case "linux":
		return OSLinux, nil
	case "darwin":
		return OSMacOS, nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// normalizeArch converts GOARCH values to the manifest's architecture
// names. Only the architectures the distribution publishes natives for
// are supported.
func normalizeArch(goarch string) (string, error) {
	switch goarch {
	case "amd64":
		return ArchX64, nil
	case "386":
		return ArchX86, nil
	case "arm64":
		return ArchARM64, nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
}
