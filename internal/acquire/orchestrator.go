package acquire

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/fetch"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/progress"
)

const (
	// DefaultFetchWorkers bounds concurrent downloads.
	DefaultFetchWorkers = 16
)

// ContentFetcher retrieves one artifact into its local path.
type ContentFetcher interface {
	Fetch(ctx context.Context, a fetch.Artifact) error
}

// Unpacker extracts a native archive into a directory.
type Unpacker interface {
	Unpack(archivePath, outputDir string) error
}

// Options tunes the orchestrator's worker pools.
type Options struct {
	FetchWorkers  int
	UnpackWorkers int
}

func (o Options) withDefaults() Options {
	if o.FetchWorkers <= 0 {
		o.FetchWorkers = DefaultFetchWorkers
	}
	if o.UnpackWorkers <= 0 {
		o.UnpackWorkers = runtime.NumCPU()
	}
	return o
}

// Failure records one artifact that could not be acquired or unpacked.
type Failure struct {
	Artifact fetch.Artifact
	Err      error
}

// Readiness summarizes whether a run produced a launchable install.
type Readiness int

const (
	// Ready means every planned artifact is in place.
	Ready Readiness = iota
	// Degraded means optional artifacts failed but all critical ones
	// are in place.
	Degraded
	// NotReady means a critical artifact failed.
	NotReady
)

func (r Readiness) String() string {
	switch r {
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	case NotReady:
		return "not ready"
	default:
		return fmt.Sprintf("Readiness(%d)", int(r))
	}
}

// Result reports the outcome of one acquisition run. The outcome is
// independent of fetch completion order: Paths is sorted.
type Result struct {
	// Paths holds the local paths of every ordinary artifact that is in
	// place after the run, sorted lexicographically.
	Paths []string
	// NativesDir is the directory archives were unpacked into, empty
	// when the run had no archives.
	NativesDir string
	// Unpacked counts successfully extracted archives.
	Unpacked int

	FetchFailures  []Failure
	UnpackFailures []Failure
	Readiness      Readiness
}

// Contains reports whether path is among the acquired ordinary paths.
func (r *Result) Contains(path string) bool {
	i := sort.SearchStrings(r.Paths, path)
	return i < len(r.Paths) && r.Paths[i] == path
}

// Orchestrator runs acquisition over a planned artifact set.
type Orchestrator struct {
	fetcher  ContentFetcher
	unpacker Unpacker
	sink     progress.Sink
	log      logging.Logger
	opts     Options
}

// NewOrchestrator wires an orchestrator. Nil sink and logger fall back
// to no-ops; zero options get defaults.
func NewOrchestrator(f ContentFetcher, u Unpacker, sink progress.Sink, log logging.Logger, opts Options) *Orchestrator {
	if sink == nil {
		sink = progress.Nop()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Orchestrator{fetcher: f, unpacker: u, sink: sink, log: log, opts: opts.withDefaults()}
}

// Acquire makes every applicable artifact available locally and unpacks
// native archives into nativesDir. An empty plan is the only condition
// reported through the error return; acquisition failures, including
// critical ones, are reported in the Result.
func (o *Orchestrator) Acquire(ctx context.Context, artifacts []fetch.Artifact, nativesDir string) (*Result, error) {
	plan, err := BuildPlan(artifacts, o.log)
	if err != nil {
		return nil, err
	}
	if plan.Total() == 0 {
		return nil, fmt.Errorf("nothing to acquire: empty artifact plan")
	}

	o.log.Info("acquisition planned",
		"total", plan.Total(), "cached", len(plan.Satisfied), "pending", len(plan.Pending))

	for _, a := range plan.Satisfied {
		o.sink.Publish(progress.Event{Artifact: a.Name, Bytes: a.Size, Phase: progress.PhaseSkipped})
	}

	res := &Result{}
	fetched := o.fetchAll(ctx, plan.Pending, res)

	available := make([]fetch.Artifact, 0, plan.Total())
	available = append(available, plan.Satisfied...)
	available = append(available, fetched...)

	for _, a := range available {
		if a.Kind == fetch.KindOrdinary {
			res.Paths = append(res.Paths, a.LocalPath)
		}
	}
	sort.Strings(res.Paths)

	if res.Readiness == NotReady {
		o.log.Error("critical artifact failed, aborting acquisition",
			"fetch_failures", len(res.FetchFailures))
		return res, nil
	}

	if err := o.unpackAll(available, nativesDir, res); err != nil {
		return nil, err
	}

	if len(res.FetchFailures) > 0 || len(res.UnpackFailures) > 0 {
		res.Readiness = Degraded
	}
	return res, nil
}

// fetchAll downloads pending artifacts with a bounded pool and returns
// the ones that landed. A critical failure raises the abort flag: no
// further artifacts are submitted, while transfers already in flight
// run to completion.
func (o *Orchestrator) fetchAll(ctx context.Context, pending []fetch.Artifact, res *Result) []fetch.Artifact {
	var (
		mu      sync.Mutex
		fetched []fetch.Artifact
		abort   atomic.Bool
	)

	g := &errgroup.Group{}
	g.SetLimit(o.opts.FetchWorkers)

	for _, a := range pending {
		if abort.Load() {
			break
		}

		a := a
		g.Go(func() error {
			if abort.Load() {
				return nil
			}
			err := o.fetcher.Fetch(ctx, a)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.FetchFailures = append(res.FetchFailures, Failure{Artifact: a, Err: err})
				if a.Critical {
					res.Readiness = NotReady
					abort.Store(true)
				}
				return nil
			}
			fetched = append(fetched, a)
			return nil
		})
	}

	g.Wait()
	return fetched
}

// unpackAll clears nativesDir and extracts every available archive into
// it. Stale members from earlier runs must not survive, so the
// directory is recreated before the first extraction.
func (o *Orchestrator) unpackAll(available []fetch.Artifact, nativesDir string, res *Result) error {
	var archives []fetch.Artifact
	for _, a := range available {
		if a.Kind == fetch.KindNativeArchive {
			archives = append(archives, a)
		}
	}
	if len(archives) == 0 {
		return nil
	}
	if nativesDir == "" {
		return fmt.Errorf("native archives planned but no natives directory given")
	}

	if err := os.RemoveAll(nativesDir); err != nil {
		return fmt.Errorf("clear natives directory: %w", err)
	}
	if err := os.MkdirAll(nativesDir, 0o755); err != nil {
		return fmt.Errorf("create natives directory: %w", err)
	}
	res.NativesDir = nativesDir

	var mu sync.Mutex
	g := &errgroup.Group{}
	g.SetLimit(o.opts.UnpackWorkers)

	for _, a := range archives {
		a := a
		g.Go(func() error {
			err := o.unpacker.Unpack(a.LocalPath, nativesDir)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.UnpackFailures = append(res.UnpackFailures, Failure{Artifact: a, Err: err})
				return nil
			}
			res.Unpacked++
			return nil
		})
	}

	g.Wait()
	return nil
}
