package fetch

import "time"

// RetryPolicy bounds download attempts and the wait between them.
// It is plain data so tests can exercise retry behavior without real
// time passing.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Backoff returns the wait before the next attempt; failures is the
	// number of attempts that have already failed (1 after the first).
	Backoff func(failures int) time.Duration
}

// DefaultRetryPolicy returns the standard policy: three attempts with a
// linearly increasing wait of 500ms per failed attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(failures int) time.Duration {
			return time.Duration(failures) * 500 * time.Millisecond
		},
	}
}

// withDefaults fills unset fields so a zero policy still behaves.
func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultRetryPolicy().MaxAttempts
	}
	if p.Backoff == nil {
		p.Backoff = DefaultRetryPolicy().Backoff
	}
	return p
}
