// Package layout maps artifact identities to their canonical locations
// under the game directory. All relative paths coming from manifests
// use forward slashes and are converted to the host separator here.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout computes paths under a single game directory root.
type Layout struct {
	Root string
}

// New creates a layout rooted at dir.
func New(dir string) *Layout {
	return &Layout{Root: dir}
}

// LibrariesDir is the shared library store.
func (l *Layout) LibrariesDir() string {
	return filepath.Join(l.Root, "libraries")
}

// AssetsDir is the root of the asset store.
func (l *Layout) AssetsDir() string {
	return filepath.Join(l.Root, "assets")
}

// AssetIndexesDir holds downloaded asset index documents.
func (l *Layout) AssetIndexesDir() string {
	return filepath.Join(l.AssetsDir(), "indexes")
}

// AssetObjectsDir holds content-addressed asset objects.
func (l *Layout) AssetObjectsDir() string {
	return filepath.Join(l.AssetsDir(), "objects")
}

// VersionsDir holds per-version metadata and client archives.
func (l *Layout) VersionsDir() string {
	return filepath.Join(l.Root, "versions")
}

// RuntimesDir holds installed managed runtimes.
func (l *Layout) RuntimesDir() string {
	return filepath.Join(l.Root, "runtimes")
}

// VersionDir is the directory for one version ID.
func (l *Layout) VersionDir(id string) string {
	return filepath.Join(l.VersionsDir(), id)
}

// VersionJSON is the version metadata document for one version ID.
func (l *Layout) VersionJSON(id string) string {
	return filepath.Join(l.VersionDir(id), id+".json")
}

// ClientJAR is the client archive for one version ID.
func (l *Layout) ClientJAR(id string) string {
	return filepath.Join(l.VersionDir(id), id+".jar")
}

// NativesDir is the per-version extraction target for native archives.
// It is cleared at the start of every acquisition run.
func (l *Layout) NativesDir(id string) string {
	return filepath.Join(l.VersionDir(id), "natives")
}

// RuntimePath locates one payload file under a named runtime's
// directory.
func (l *Layout) RuntimePath(runtime, file string) string {
	return filepath.Join(l.RuntimesDir(), runtime, file)
}

// LibraryPath resolves a manifest-relative library path (forward
// slashes) under the library store.
func (l *Layout) LibraryPath(rel string) string {
	return filepath.Join(l.LibrariesDir(), filepath.FromSlash(rel))
}

// AssetIndexPath is the on-disk location of the asset index named id.
func (l *Layout) AssetIndexPath(id string) string {
	return filepath.Join(l.AssetIndexesDir(), id+".json")
}

// AssetObjectPath shards an asset object by the first two characters of
// its content hash, matching the layout of the upstream asset store.
func (l *Layout) AssetObjectPath(hash string) string {
	if len(hash) < 2 {
		return filepath.Join(l.AssetObjectsDir(), hash)
	}
	return filepath.Join(l.AssetObjectsDir(), hash[:2], hash)
}

// Ensure creates the fixed directory skeleton. Artifact-specific
// subdirectories are created lazily as artifacts land.
func (l *Layout) Ensure() error {
	dirs := []string{
		l.Root,
		l.LibrariesDir(),
		l.AssetIndexesDir(),
		l.AssetObjectsDir(),
		l.VersionsDir(),
		l.RuntimesDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
