package platform

import "testing"

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "windows", want: OSWindows},
		{goos: "linux", want: OSLinux},
		{goos: "darwin", want: OSMacOS},
		{goos: "plan9", wantErr: true},
		{goos: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := normalizeOS(tt.goos)
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeOS(%q) expected error, got %q", tt.goos, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeOS(%q) unexpected error: %v", tt.goos, err)
			}
			if got != tt.want {
				t.Errorf("normalizeOS(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		goarch  string
		want    string
		wantErr bool
	}{
		{goarch: "amd64", want: ArchX64},
		{goarch: "386", want: ArchX86},
		{goarch: "arm64", want: ArchARM64},
		{goarch: "mips", wantErr: true},
		{goarch: "riscv64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goarch, func(t *testing.T) {
			got, err := normalizeArch(tt.goarch)
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeArch(%q) expected error, got %q", tt.goarch, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeArch(%q) unexpected error: %v", tt.goarch, err)
			}
			if got != tt.want {
				t.Errorf("normalizeArch(%q) = %q, want %q", tt.goarch, got, tt.want)
			}
		})
	}
}

func TestInfoBits(t *testing.T) {
	tests := []struct {
		arch string
		want string
	}{
		{arch: ArchX64, want: "64"},
		{arch: ArchARM64, want: "64"},
		{arch: ArchX86, want: "32"},
	}

	for _, tt := range tests {
		info := &Info{Arch: tt.arch}
		if got := info.Bits(); got != tt.want {
			t.Errorf("Bits() for %s = %q, want %q", tt.arch, got, tt.want)
		}
	}
}

func TestInfoOSHelpers(t *testing.T) {
	info := &Info{OS: OSMacOS}
	if !info.IsMacOS() || info.IsLinux() || info.IsWindows() {
		t.Errorf("OS helpers inconsistent for %q", info.OS)
	}
}
