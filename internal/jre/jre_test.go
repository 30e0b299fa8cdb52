package jre

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ulikunitz/xz/lzma"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/layout"
)

func TestAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"jre-x64": [{
				"availability": {"group": 6511, "progress": 100},
				"manifest": {"sha1": "abc", "size": 60000000, "url": "https://example.test/jre-x64.zip.lzma"},
				"version": {"name": "8u51", "released": "2015-07-14T00:00:00Z"}
			}],
			"jre-x86": [{
				"availability": {"group": 6511, "progress": 100},
				"manifest": {"sha1": "def", "size": 55000000, "url": "https://example.test/jre-x86.zip.lzma"},
				"version": {"name": "8u51", "released": "2015-07-14T00:00:00Z"}
			}]
		}`))
	}))
	defer server.Close()

	rts, err := NewClient(server.URL).Available(context.Background())
	if err != nil {
		t.Fatalf("Available: %v", err)
	}

	if len(rts.X64) != 1 || len(rts.X86) != 1 {
		t.Fatalf("unexpected runtimes: %+v", rts)
	}
	if rts.X64[0].Version.Name != "8u51" {
		t.Errorf("version name = %s", rts.X64[0].Version.Name)
	}
	want := time.Date(2015, 7, 14, 0, 0, 0, 0, time.UTC)
	if !rts.X64[0].Version.Released.Equal(want) {
		t.Errorf("released = %v, want %v", rts.X64[0].Version.Released, want)
	}

	if got := rts.ForArch("x86"); len(got) != 1 || got[0].Manifest.SHA1 != "def" {
		t.Errorf("ForArch(x86) = %+v", got)
	}
	if got := rts.ForArch("x64"); got[0].Manifest.SHA1 != "abc" {
		t.Errorf("ForArch(x64) = %+v", got)
	}
	if got := rts.ForArch("arm64"); got[0].Manifest.SHA1 != "abc" {
		t.Errorf("ForArch(arm64) should fall back to x64, got %+v", got)
	}
}

func TestAvailableBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).Available(context.Background()); err == nil {
		t.Error("expected error for non-200 runtime index response")
	}
}

func TestRuntimeArtifact(t *testing.T) {
	l := layout.New(filepath.FromSlash("/game"))
	rt := Runtime{
		Manifest: Manifest{SHA1: "abc", Size: 1234, URL: "https://example.test/path/jre-x64.zip.lzma"},
		Version:  Version{Name: "8u51"},
	}

	a := RuntimeArtifact(rt, "x64", l)
	if a.Name != "jre-x64-8u51" {
		t.Errorf("Name = %s", a.Name)
	}
	if a.LocalPath != filepath.FromSlash("/game/runtimes/jre-x64-8u51/jre-x64.zip.lzma") {
		t.Errorf("LocalPath = %s", a.LocalPath)
	}
	if a.SHA1 != "abc" || a.Size != 1234 || !a.Applicable {
		t.Errorf("unexpected artifact: %+v", a)
	}
}

func TestDecompress(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("the uncompressed runtime archive bytes, repeated a bit to make it worth compressing, repeated a bit to make it worth compressing")

	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		t.Fatalf("lzma writer: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	compressedPath := filepath.Join(dir, "jre.zip.lzma")
	if err := os.WriteFile(compressedPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	outPath, err := Decompress(compressedPath, true)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if outPath != filepath.Join(dir, "jre.zip") {
		t.Errorf("output path = %s", outPath)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("roundtrip mismatch")
	}

	if _, err := os.Stat(compressedPath); !os.IsNotExist(err) {
		t.Error("compressed payload should be deleted after success")
	}
}

func TestDecompressRejectsWrongSuffix(t *testing.T) {
	if _, err := Decompress(filepath.Join(t.TempDir(), "jre.zip"), false); err == nil {
		t.Error("expected error for non-lzma path")
	}
}

func TestDecompressCorruptPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lzma")
	// 0xff is not a valid LZMA properties byte, so the header is rejected.
	header := append([]byte{0xff}, make([]byte, 16)...)
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Decompress(path, false); err == nil {
		t.Error("expected error for corrupt payload")
	}

	if _, err := os.Stat(filepath.Join(dir, "bad")); !os.IsNotExist(err) {
		t.Error("no output may exist after a failed decompression")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.part")); !os.IsNotExist(err) {
		t.Error("partial file left behind")
	}
}
