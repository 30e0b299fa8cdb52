package profile

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/platform"
)

// stubDetector returns fixed platform info without touching the host.
type stubDetector struct {
	info *platform.Info
}

func (d *stubDetector) Detect(ctx context.Context) (*platform.Info, error) {
	return d.info, nil
}

func linuxParser() *Parser {
	return NewParser(&stubDetector{info: &platform.Info{
		OS: platform.OSLinux, OSVersion: "6.8.0", Arch: platform.ArchX64, ArchRaw: "amd64",
	}})
}

func TestParseStringDefaults(t *testing.T) {
	prof, err := linuxParser().ParseString(context.Background(), `craftboot = {}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if prof.Version != "latest-release" {
		t.Errorf("Version = %q, want latest-release", prof.Version)
	}
	if prof.Username != "Player" {
		t.Errorf("Username = %q, want Player", prof.Username)
	}
	if prof.Java != "java" {
		t.Errorf("Java = %q, want java", prof.Java)
	}
	if prof.Downloads.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", prof.Downloads.MaxAttempts)
	}
	if prof.Downloads.FetchWorkers != 16 {
		t.Errorf("FetchWorkers = %d, want 16", prof.Downloads.FetchWorkers)
	}
	if prof.Downloads.UnpackWorkers != runtime.NumCPU() {
		t.Errorf("UnpackWorkers = %d, want NumCPU", prof.Downloads.UnpackWorkers)
	}
}

func TestParseStringFull(t *testing.T) {
	code := `
craftboot = {
	game_dir = "/srv/game",
	version = "1.20.4",
	username = "steve",
	java = "/opt/jdk/bin/java",
	manifest_url = "https://mirror.test/index.json",
	downloads = {
		max_attempts = 5,
		fetch_workers = 4,
	},
	signature = {
		url = "https://mirror.test/client.jar.asc",
		keyring = "/etc/craftboot/trusted.asc",
	},
	jvm_args = { "-Xmx4G", platform.when(platform.is_linux, "-Dlinux=1"), platform.when(platform.is_windows, "-Dwin=1") },
	game_args = { "--quickPlaySingleplayer", "world" },
}
`
	prof, err := linuxParser().ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if prof.GameDir != "/srv/game" || prof.Version != "1.20.4" || prof.Username != "steve" {
		t.Errorf("unexpected profile: %+v", prof)
	}
	if prof.Downloads.MaxAttempts != 5 || prof.Downloads.FetchWorkers != 4 {
		t.Errorf("downloads not applied: %+v", prof.Downloads)
	}
	if prof.Downloads.UnpackWorkers != runtime.NumCPU() {
		t.Errorf("unset unpack_workers lost its default: %d", prof.Downloads.UnpackWorkers)
	}
	if prof.Signature.URL == "" || prof.Signature.Keyring == "" {
		t.Errorf("signature not applied: %+v", prof.Signature)
	}

	// The windows conditional collapses to nil and is dropped.
	want := []string{"-Xmx4G", "-Dlinux=1"}
	if len(prof.ExtraJVMArgs) != len(want) {
		t.Fatalf("ExtraJVMArgs = %v, want %v", prof.ExtraJVMArgs, want)
	}
	for i := range want {
		if prof.ExtraJVMArgs[i] != want[i] {
			t.Errorf("ExtraJVMArgs[%d] = %q, want %q", i, prof.ExtraJVMArgs[i], want[i])
		}
	}
}

func TestParseStringPlatformBranching(t *testing.T) {
	code := `
if platform.is_linux then
	craftboot = { username = "tux" }
else
	craftboot = { username = "other" }
end
`
	prof, err := linuxParser().ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if prof.Username != "tux" {
		t.Errorf("Username = %q, want tux", prof.Username)
	}
}

func TestParseStringSandbox(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"os removed", `craftboot = { username = os.getenv("USER") }`},
		{"io removed", `local f = io.open("/etc/passwd"); craftboot = {}`},
		{"require removed", `require("socket"); craftboot = {}`},
		{"platform read-only", `platform.os = "windows"; craftboot = {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := linuxParser().ParseString(context.Background(), tt.code); err == nil {
				t.Error("sandbox did not reject the profile")
			}
		})
	}
}

func TestParseStringMissingTable(t *testing.T) {
	_, err := linuxParser().ParseString(context.Background(), `x = 1`)
	if err == nil {
		t.Fatal("expected error for missing craftboot table")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if !strings.Contains(perr.Message, "craftboot") {
		t.Errorf("unhelpful message: %s", perr.Message)
	}
}

func TestParseStringValidation(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty version", `craftboot = { version = "" }`},
		{"zero attempts", `craftboot = { downloads = { max_attempts = 0 } }`},
		{"signature without keyring", `craftboot = { signature = { url = "https://x.test/s.asc" } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := linuxParser().ParseString(context.Background(), tt.code); err == nil {
				t.Error("invalid profile accepted")
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.lua")
	if err := os.WriteFile(path, []byte(`craftboot = { version = "1.20.4" }`), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	prof, err := linuxParser().ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if prof.Version != "1.20.4" {
		t.Errorf("Version = %q", prof.Version)
	}

	if _, err := linuxParser().ParseFile(context.Background(), filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("expected error for missing profile file")
	}
}

func TestFormatError(t *testing.T) {
	err := &ParseError{Message: "Lua syntax error", Detail: "line 3: unexpected symbol\nstack traceback:\n..."}

	short := FormatError(err, false)
	if strings.Contains(short, "traceback") {
		t.Errorf("non-verbose format leaks traceback: %s", short)
	}

	long := FormatError(err, true)
	if !strings.Contains(long, "traceback") {
		t.Errorf("verbose format misses detail: %s", long)
	}
}
