package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Class buckets a remote failure for backoff selection.
type Class int

const (
	// ClassOther is any failure without a more specific classification.
	ClassOther Class = iota
	// ClassQuota is a rate-limit / quota-exhausted rejection.
	ClassQuota
	// ClassUnavailable is a transient service outage.
	ClassUnavailable
)

// Classifier maps an operation error to a Class.
type Classifier func(error) Class

// Policy bounds attempts and sets the per-class backoff profile. Quota and
// unavailable failures back off exponentially up to their caps; unclassified
// failures wait a small fixed delay.
type Policy struct {
	MaxAttempts int
	QuotaBase   time.Duration
	QuotaCap    time.Duration
	UnavailBase time.Duration
	UnavailCap  time.Duration
	OtherDelay  time.Duration
}

// ImageProfile suits the cheap, fast image stage: more attempts, shorter caps.
func ImageProfile() Policy {
	return Policy{
		MaxAttempts: 5,
		QuotaBase:   10 * time.Second,
		QuotaCap:    120 * time.Second,
		UnavailBase: 5 * time.Second,
		UnavailCap:  60 * time.Second,
		OtherDelay:  5 * time.Second,
	}
}

// AnimationProfile suits the slow animation stage: fewer, longer-spaced
// attempts so failed minutes-long generations don't burn the wall clock.
func AnimationProfile() Policy {
	return Policy{
		MaxAttempts: 3,
		QuotaBase:   30 * time.Second,
		QuotaCap:    180 * time.Second,
		UnavailBase: 30 * time.Second,
		UnavailCap:  180 * time.Second,
		OtherDelay:  10 * time.Second,
	}
}

// Backoff returns the wait before retrying after a failure of class c on the
// zero-based attempt index: min(base<<attempt, cap) for classified failures,
// the fixed other-delay otherwise.
func (p Policy) Backoff(c Class, attempt int) time.Duration {
	var base, limit time.Duration
	switch c {
	case ClassQuota:
		base, limit = p.QuotaBase, p.QuotaCap
	case ClassUnavailable:
		base, limit = p.UnavailBase, p.UnavailCap
	default:
		return p.OtherDelay
	}

	wait := base
	for i := 0; i < attempt; i++ {
		wait *= 2
		if wait >= limit {
			return limit
		}
	}
	if wait > limit {
		return limit
	}
	return wait
}

// Doer runs operations under a Policy. Sleep is injectable for tests.
type Doer struct {
	logger   zerolog.Logger
	policy   Policy
	classify Classifier
	sleep    func(time.Duration)
}

// New creates a Doer with real sleeping.
func New(logger zerolog.Logger, policy Policy, classify Classifier) *Doer {
	return &Doer{
		logger:   logger.With().Str("component", "retry").Logger(),
		policy:   policy,
		classify: classify,
		sleep:    time.Sleep,
	}
}

// WithSleep overrides the sleep function. Used by tests.
func (d *Doer) WithSleep(sleep func(time.Duration)) *Doer {
	d.sleep = sleep
	return d
}

// Do invokes op up to MaxAttempts times. On failure it classifies the error,
// waits the policy's backoff, and retries; the backoff after an unclassified
// failure is skipped when no attempt remains. Exhaustion returns the last
// error — the caller decides whether to fall back or abandon.
func (d *Doer) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < d.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.logger.Debug().
			Str("op", name).
			Int("attempt", attempt+1).
			Int("max_attempts", d.policy.MaxAttempts).
			Msg("invoking operation")

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		class := d.classify(err)
		if class == ClassOther && attempt == d.policy.MaxAttempts-1 {
			break
		}

		wait := d.policy.Backoff(class, attempt)
		d.logger.Warn().
			Err(err).
			Str("op", name).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Msg(classMessage(class))
		d.sleep(wait)
	}

	return lastErr
}

func classMessage(c Class) string {
	switch c {
	case ClassQuota:
		return "rate limited, backing off"
	case ClassUnavailable:
		return "service unavailable, backing off"
	default:
		return "operation failed, retrying"
	}
}
