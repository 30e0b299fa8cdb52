package platform

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func testInfo() *Info {
	return &Info{
		OS:        OSLinux,
		OSVersion: "6.1.0",
		Arch:      ArchX64,
		ArchRaw:   "amd64",
	}
}

func TestInjectPlatformTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, testInfo()); err != nil {
		t.Fatalf("InjectPlatformTable: %v", err)
	}

	tests := []struct {
		expr string
		want string
	}{
		{expr: `return platform.os`, want: "linux"},
		{expr: `return platform.arch`, want: "x64"},
		{expr: `return platform.arch_raw`, want: "amd64"},
		{expr: `return platform.os_version`, want: "6.1.0"},
		{expr: `return tostring(platform.is_linux)`, want: "true"},
		{expr: `return tostring(platform.is_windows)`, want: "false"},
		{expr: `return tostring(platform.is_x64)`, want: "true"},
		{expr: `return platform.when(platform.is_linux, "yes") or "no"`, want: "yes"},
		{expr: `return platform.when(platform.is_windows, "yes") or "no"`, want: "no"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if err := L.DoString(tt.expr); err != nil {
				t.Fatalf("DoString(%q): %v", tt.expr, err)
			}
			got := L.Get(-1).String()
			L.Pop(1)
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestPlatformTableIsReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, testInfo()); err != nil {
		t.Fatalf("InjectPlatformTable: %v", err)
	}

	if err := L.DoString(`platform.os = "windows"`); err == nil {
		t.Error("expected write to platform table to fail")
	}
}
