// Package manifest defines the distribution's metadata documents and
// resolves them into concrete artifacts for acquisition: the version
// index, per-version documents, and asset indexes.
package manifest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/rules"
)

// VersionMeta is one entry in the version index.
type VersionMeta struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	URL             string    `json:"url"`
	Time            time.Time `json:"time"`
	ReleaseTime     time.Time `json:"releaseTime"`
	SHA1            string    `json:"sha1"`
	ComplianceLevel int       `json:"complianceLevel"`
}

// Latest names the newest release and snapshot version IDs.
type Latest struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// VersionManifest is the top-level version index.
type VersionManifest struct {
	Latest   Latest        `json:"latest"`
	Versions []VersionMeta `json:"versions"`
}

// Find returns the entry for the given version ID. The aliases
// "latest-release" and "latest-snapshot" resolve through Latest.
func (m *VersionManifest) Find(id string) (*VersionMeta, error) {
	switch id {
	case "latest-release":
		id = m.Latest.Release
	case "latest-snapshot":
		id = m.Latest.Snapshot
	}

	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], nil
		}
	}
	return nil, fmt.Errorf("version %q not found in index", id)
}

// DownloadInfo describes one downloadable file.
type DownloadInfo struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// LibraryDownloads holds a library's main artifact and its optional
// per-classifier native variants.
type LibraryDownloads struct {
	Artifact    *DownloadInfo            `json:"artifact,omitempty"`
	Classifiers map[string]*DownloadInfo `json:"classifiers,omitempty"`
}

// Library is one dependency of a version.
type Library struct {
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Rules     []rules.Rule      `json:"rules,omitempty"`
}

// AssetIndexRef points at a version's asset index document.
type AssetIndexRef struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// Argument is one launch argument entry: either a plain string or a
// rule-guarded value carrying one or more strings.
type Argument struct {
	Rules  []rules.Rule
	Values []string
}

// UnmarshalJSON accepts the two wire forms an argument entry takes:
// a bare string, or an object with "rules" and a "value" that is itself
// a string or a string array.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Values = []string{s}
		return nil
	}

	var obj struct {
		Rules []rules.Rule    `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("argument entry: %w", err)
	}
	a.Rules = obj.Rules

	var one string
	if err := json.Unmarshal(obj.Value, &one); err == nil {
		a.Values = []string{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(obj.Value, &many); err != nil {
		return fmt.Errorf("argument value: %w", err)
	}
	a.Values = many
	return nil
}

// Arguments holds the modern split argument lists.
type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// JavaVersion names the runtime a version wants.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// Version is a per-version metadata document.
type Version struct {
	ID                 string                   `json:"id"`
	Type               string                   `json:"type"`
	MainClass          string                   `json:"mainClass"`
	Assets             string                   `json:"assets"`
	AssetIndex         *AssetIndexRef           `json:"assetIndex,omitempty"`
	Downloads          map[string]*DownloadInfo `json:"downloads"`
	Libraries          []Library                `json:"libraries"`
	Arguments          *Arguments               `json:"arguments,omitempty"`
	MinecraftArguments string                   `json:"minecraftArguments,omitempty"`
	JavaVersion        *JavaVersion             `json:"javaVersion,omitempty"`
}

// AssetObject is one content-addressed asset.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// AssetIndex maps logical asset names to content-addressed objects.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}
