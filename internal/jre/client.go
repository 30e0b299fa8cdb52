package jre

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/fetch"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/layout"
)

// DefaultRuntimeManifestURL is the upstream runtime index.
const DefaultRuntimeManifestURL = "https://launchermeta.mojang.com/mc/launcher.json"

const indexTimeout = 30 * time.Second

// Client fetches the runtime index.
type Client struct {
	httpClient  *http.Client
	manifestURL string
}

// NewClient creates a runtime client. An empty manifestURL selects the
// upstream default.
func NewClient(manifestURL string) *Client {
	if manifestURL == "" {
		manifestURL = DefaultRuntimeManifestURL
	}
	return &Client{
		httpClient:  &http.Client{Timeout: indexTimeout},
		manifestURL: manifestURL,
	}
}

// Available fetches and parses the published runtimes.
func (c *Client) Available(ctx context.Context) (*Runtimes, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create runtime index request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch runtime index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch runtime index: unexpected status %d", resp.StatusCode)
	}

	var rts Runtimes
	if err := json.NewDecoder(resp.Body).Decode(&rts); err != nil {
		return nil, fmt.Errorf("parse runtime index: %w", err)
	}
	return &rts, nil
}

// RuntimeArtifact binds a runtime payload to its location under the
// runtimes directory, keyed by architecture and release name so
// multiple runtimes can coexist.
func RuntimeArtifact(rt Runtime, arch string, l *layout.Layout) fetch.Artifact {
	name := fmt.Sprintf("jre-%s-%s", arch, rt.Version.Name)
	base := path.Base(rt.Manifest.URL)

	return fetch.Artifact{
		Name:       name,
		LocalPath:  l.RuntimePath(name, base),
		URL:        rt.Manifest.URL,
		SHA1:       rt.Manifest.SHA1,
		Size:       rt.Manifest.Size,
		Kind:       fetch.KindOrdinary,
		Applicable: true,
	}
}
