package manifest

import (
	"fmt"
	"path"
	"strings"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/fetch"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/layout"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/platform"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/rules"
)

// Resolver turns metadata documents into fetchable artifacts bound to
// on-disk locations for one platform.
type Resolver struct {
	layout       *layout.Layout
	info         *platform.Info
	assetBaseURL string
	log          logging.Logger
}

// NewResolver creates a resolver. An empty assetBaseURL selects the
// upstream asset store.
func NewResolver(l *layout.Layout, info *platform.Info, assetBaseURL string, log logging.Logger) *Resolver {
	if assetBaseURL == "" {
		assetBaseURL = DefaultAssetBaseURL
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{layout: l, info: info, assetBaseURL: assetBaseURL, log: log}
}

// VersionArtifact binds a version index entry to its on-disk document.
// The document is critical: nothing else can be resolved without it.
func (r *Resolver) VersionArtifact(meta *VersionMeta) fetch.Artifact {
	return fetch.Artifact{
		Name:       meta.ID + ".json",
		LocalPath:  r.layout.VersionJSON(meta.ID),
		URL:        meta.URL,
		SHA1:       meta.SHA1,
		Kind:       fetch.KindOrdinary,
		Critical:   true,
		Applicable: true,
	}
}

// ClientArtifact binds the version's client archive.
func (r *Resolver) ClientArtifact(v *Version) (fetch.Artifact, error) {
	client, ok := v.Downloads["client"]
	if !ok || client.URL == "" {
		return fetch.Artifact{}, fmt.Errorf("version %s: no client download", v.ID)
	}
	return fetch.Artifact{
		Name:       v.ID + ".jar",
		LocalPath:  r.layout.ClientJAR(v.ID),
		URL:        client.URL,
		SHA1:       client.SHA1,
		Size:       client.Size,
		Kind:       fetch.KindOrdinary,
		Critical:   true,
		Applicable: true,
	}, nil
}

// AssetIndexArtifact binds the version's asset index document. The
// index is critical when present; versions without one have no assets.
func (r *Resolver) AssetIndexArtifact(v *Version) (fetch.Artifact, bool) {
	ref := v.AssetIndex
	if ref == nil || ref.URL == "" {
		return fetch.Artifact{}, false
	}
	return fetch.Artifact{
		Name:       "asset index " + ref.ID,
		LocalPath:  r.layout.AssetIndexPath(ref.ID),
		URL:        ref.URL,
		SHA1:       ref.SHA1,
		Size:       ref.Size,
		Kind:       fetch.KindOrdinary,
		Critical:   true,
		Applicable: true,
	}, true
}

// LibraryArtifacts resolves the version's libraries for the resolver's
// platform. A library with a natives classifier resolves to its native
// archive; otherwise to its main artifact. Libraries whose rules
// disallow this platform come back with Applicable unset; entries with
// no usable download info are skipped with a warning.
func (r *Resolver) LibraryArtifacts(v *Version) []fetch.Artifact {
	artifacts := make([]fetch.Artifact, 0, len(v.Libraries))

	for _, lib := range v.Libraries {
		applicable := rules.Eval(lib.Rules, r.info)

		info, kind, ok := r.selectDownload(lib)
		if !ok {
			if applicable {
				r.log.Warn("library has no usable download info, skipping", "library", lib.Name)
			}
			continue
		}

		rel := info.Path
		if rel == "" {
			rel = path.Base(info.URL)
		}

		artifacts = append(artifacts, fetch.Artifact{
			Name:       lib.Name,
			LocalPath:  r.layout.LibraryPath(rel),
			URL:        info.URL,
			SHA1:       info.SHA1,
			Size:       info.Size,
			Kind:       kind,
			Applicable: applicable,
		})
	}

	return artifacts
}

// selectDownload picks the download entry a library resolves to on this
// platform: the native classifier when the library declares one for the
// host OS and the classifier map carries it, the main artifact
// otherwise.
func (r *Resolver) selectDownload(lib Library) (*DownloadInfo, fetch.Kind, bool) {
	if lib.Downloads == nil {
		return nil, fetch.KindOrdinary, false
	}

	if classifier, ok := lib.Natives[r.info.OS]; ok {
		classifier = strings.ReplaceAll(classifier, "${arch}", r.info.Bits())
		info, ok := lib.Downloads.Classifiers[classifier]
		if ok && info != nil && info.URL != "" {
			return info, fetch.KindNativeArchive, true
		}
		// A missing classifier entry does not sink the library; the
		// main artifact below still serves the classpath.
	}

	info := lib.Downloads.Artifact
	if info == nil || info.URL == "" {
		return nil, fetch.KindOrdinary, false
	}
	return info, fetch.KindOrdinary, true
}

// AssetArtifacts resolves every object in an asset index against the
// content-addressed store, sharded by hash prefix.
func (r *Resolver) AssetArtifacts(idx *AssetIndex) []fetch.Artifact {
	artifacts := make([]fetch.Artifact, 0, len(idx.Objects))

	for name, obj := range idx.Objects {
		if len(obj.Hash) < 2 {
			r.log.Warn("asset has malformed hash, skipping", "asset", name, "hash", obj.Hash)
			continue
		}
		artifacts = append(artifacts, fetch.Artifact{
			Name:       name,
			LocalPath:  r.layout.AssetObjectPath(obj.Hash),
			URL:        fmt.Sprintf("%s/%s/%s", r.assetBaseURL, obj.Hash[:2], obj.Hash),
			SHA1:       obj.Hash,
			Size:       obj.Size,
			Kind:       fetch.KindOrdinary,
			Applicable: true,
		})
	}

	return artifacts
}
