// Package acquire orchestrates the acquisition pipeline: plan the
// artifact set against the local cache, fetch what is missing with a
// bounded worker pool, then unpack native archives. A failed critical
// artifact aborts submission of further work while in-flight transfers
// drain.
package acquire

import (
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/digest"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/fetch"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
)

// Plan partitions an artifact set into work that needs the network and
// work already satisfied by the local cache.
type Plan struct {
	Pending   []fetch.Artifact
	Satisfied []fetch.Artifact
}

// Total is the number of planned artifacts.
func (p *Plan) Total() int { return len(p.Pending) + len(p.Satisfied) }

// BuildPlan filters and partitions artifacts. Artifacts not applicable
// to this platform are dropped silently; artifacts with incomplete
// metadata are dropped with a warning. The rest are probed against the
// cache: a present file with a matching digest (or no expected digest)
// is satisfied, anything else is pending.
func BuildPlan(artifacts []fetch.Artifact, log logging.Logger) (*Plan, error) {
	if log == nil {
		log = logging.Nop()
	}

	plan := &Plan{}
	for _, a := range artifacts {
		if !a.Applicable {
			continue
		}
		if a.URL == "" || a.LocalPath == "" {
			log.Warn("artifact has incomplete metadata, dropped from plan", "artifact", a.Name)
			continue
		}

		ok, err := cacheSatisfied(a)
		if err != nil {
			return nil, fmt.Errorf("probe cache for %s: %w", a.Name, err)
		}
		if ok {
			plan.Satisfied = append(plan.Satisfied, a)
		} else {
			plan.Pending = append(plan.Pending, a)
		}
	}

	return plan, nil
}

// cacheSatisfied reports whether the artifact's local file already
// satisfies it. A digest-less artifact is satisfied by mere presence;
// a mismatched file counts as unsatisfied and is left for the fetcher
// to replace.
func cacheSatisfied(a fetch.Artifact) (bool, error) {
	if a.SHA1 == "" {
		_, err := os.Stat(a.LocalPath)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
	return digest.Matches(a.LocalPath, a.SHA1)
}
