package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
)

const (
	// DefaultManifestURL is the upstream version index.
	DefaultManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	// DefaultAssetBaseURL is the content-addressed asset store.
	DefaultAssetBaseURL = "https://resources.download.minecraft.net"

	indexTimeout = 30 * time.Second
)

// Client fetches and parses metadata documents. The version index is
// always fetched live; version and asset index documents are read from
// disk after acquisition has placed and verified them.
type Client struct {
	httpClient  *http.Client
	manifestURL string
	log         logging.Logger
}

// NewClient creates a metadata client. An empty manifestURL selects the
// upstream default.
func NewClient(manifestURL string, log logging.Logger) *Client {
	if manifestURL == "" {
		manifestURL = DefaultManifestURL
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: indexTimeout},
		manifestURL: manifestURL,
		log:         log,
	}
}

// VersionIndex fetches and parses the version index.
func (c *Client) VersionIndex(ctx context.Context) (*VersionManifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create index request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch version index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch version index: unexpected status %d", resp.StatusCode)
	}

	var m VersionManifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse version index: %w", err)
	}

	c.log.Debug("version index loaded", "versions", len(m.Versions), "latest_release", m.Latest.Release)
	return &m, nil
}

// ReadVersion parses a version document already on disk.
func ReadVersion(path string) (*Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read version document: %w", err)
	}

	var v Version
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse version document %s: %w", path, err)
	}
	if v.ID == "" || v.MainClass == "" {
		return nil, fmt.Errorf("version document %s: missing id or mainClass", path)
	}
	return &v, nil
}

// ReadAssetIndex parses an asset index already on disk.
func ReadAssetIndex(path string) (*AssetIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset index: %w", err)
	}

	var idx AssetIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse asset index %s: %w", path, err)
	}
	return &idx, nil
}
