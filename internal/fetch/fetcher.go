package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/digest"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/progress"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "craftboot/1.0"
	// chunkSize is the streaming copy granularity; each written chunk
	// is reported to the progress sink.
	chunkSize = 8 * 1024
)

// Fetcher retrieves remote artifacts into local paths with digest
// verification and bounded retries. It is safe for concurrent use:
// artifacts are keyed by distinct local paths, so concurrent fetches
// never write the same file.
type Fetcher struct {
	client *http.Client
	policy RetryPolicy
	sink   progress.Sink
	log    logging.Logger

	// sleep waits between attempts; tests replace it with a recorder.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a fetcher. A zero policy gets defaults; nil sink and
// logger fall back to no-ops.
func New(policy RetryPolicy, sink progress.Sink, log logging.Logger) *Fetcher {
	if sink == nil {
		sink = progress.Nop()
	}
	if log == nil {
		log = logging.Nop()
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		policy: policy.withDefaults(),
		sink:   sink,
		log:    log,
		sleep:  sleepContext,
	}
}

// Fetch makes one artifact available at its LocalPath.
//
// If a file already exists there and either no digest is expected or
// the live digest matches, Fetch returns immediately with zero network
// activity. A mismatched file is deleted and treated as a cache miss.
// Downloads stream to a temporary file that is renamed into place only
// after verification, so LocalPath either holds a fully verified file
// or does not exist, never a partial one.
func (f *Fetcher) Fetch(ctx context.Context, a Artifact) error {
	if a.URL == "" || a.LocalPath == "" {
		return fmt.Errorf("artifact %s: incomplete metadata", a.Name)
	}

	hit, err := f.checkCached(a)
	if err != nil {
		return err
	}
	if hit {
		f.sink.Publish(progress.Event{Artifact: a.Name, Bytes: a.Size, Phase: progress.PhaseSkipped})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(a.LocalPath), 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	f.sink.Publish(progress.Event{Artifact: a.Name, Bytes: a.Size, Phase: progress.PhaseStarted})

	var lastErr error
	for attempt := 1; attempt <= f.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := f.sleep(ctx, f.policy.Backoff(attempt-1)); err != nil {
				return err
			}
		}

		err := f.downloadOnce(ctx, a)
		if err == nil {
			f.sink.Publish(progress.Event{Artifact: a.Name, Phase: progress.PhaseFinished})
			return nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt < f.policy.MaxAttempts {
			f.log.Warn("download attempt failed, retrying",
				"artifact", a.Name, "attempt", attempt, "error", err)
		}
	}

	f.sink.Publish(progress.Event{Artifact: a.Name, Phase: progress.PhaseFailed})
	return fmt.Errorf("fetch %s: all %d attempts failed: %w", a.Name, f.policy.MaxAttempts, lastErr)
}

// checkCached applies the cache-hit pre-check. A true result means the
// artifact is already satisfied on disk. A file with a mismatched
// digest is removed so the caller proceeds as a cache miss.
func (f *Fetcher) checkCached(a Artifact) (bool, error) {
	if _, err := os.Stat(a.LocalPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", a.LocalPath, err)
	}

	if a.SHA1 == "" {
		return true, nil
	}

	ok, err := digest.Matches(a.LocalPath, a.SHA1)
	if err != nil {
		return false, fmt.Errorf("verify cached artifact: %w", err)
	}
	if ok {
		return true, nil
	}

	f.log.Warn("cached artifact digest mismatch, redownloading",
		"artifact", a.Name, "path", a.LocalPath)
	if err := os.Remove(a.LocalPath); err != nil {
		return false, fmt.Errorf("remove mismatched artifact: %w", err)
	}

	return false, nil
}

// downloadOnce performs a single download attempt including digest
// verification and the atomic rename into place.
func (f *Fetcher) downloadOnce(ctx context.Context, a Artifact) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return &TransportError{URL: a.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransportError{URL: a.URL, Status: resp.StatusCode}
	}

	tmpPath := a.LocalPath + ".part"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	buf := make([]byte, chunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := tmpFile.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write %s: %w", tmpPath, werr)
			}
			f.sink.Publish(progress.Event{Artifact: a.Name, Bytes: int64(n), Phase: progress.PhaseAdvanced})
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &TransportError{URL: a.URL, Err: rerr}
		}
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if a.SHA1 != "" {
		got, err := digest.File(tmpPath)
		if err != nil {
			return fmt.Errorf("digest downloaded file: %w", err)
		}
		if !strings.EqualFold(got, a.SHA1) {
			return &IntegrityError{Path: a.LocalPath, Want: a.SHA1, Got: got}
		}
	}

	if err := os.Rename(tmpPath, a.LocalPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
