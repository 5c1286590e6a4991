package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/onboarding/pkg/async"
	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/pkg/orgkey"
	"github.com/dmitrymomot/onboarding/svc/organization"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusInvalid   Status = "invalid"
	StatusUnknown   Status = "unknown"
)

type KeyResult struct {
	Key    string
	Status Status
	Err    error
}

func (r KeyResult) String() string {
	if r.Err != nil && r.Status == StatusUnknown {
		return fmt.Sprintf("%s: %s (%v)", r.Key, r.Status, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Key, r.Status)
}

// checker runs format checks locally and availability lookups remotely.
type checker struct {
	lookup  orgkey.Lookup
	timeout time.Duration
	log     *slog.Logger
}

func (c *checker) checkOne(ctx context.Context, key string) (KeyResult, error) {
	if err := orgkey.ValidateFormat(key); err != nil {
		return KeyResult{Key: key, Status: StatusInvalid, Err: err}, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	exists, err := c.lookup.KeyExists(ctx, key)
	c.log.DebugContext(ctx, "key looked up",
		logger.OrgKey(key),
		logger.Duration(time.Since(start)),
		logger.Error(err),
	)
	switch {
	case err != nil:
		return KeyResult{Key: key, Status: StatusUnknown, Err: err}, err
	case exists:
		return KeyResult{Key: key, Status: StatusTaken, Err: orgkey.ErrKeyTaken}, nil
	default:
		return KeyResult{Key: key, Status: StatusAvailable}, nil
	}
}

func (c *checker) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// checkKeys checks every key concurrently and returns the results in input
// order. Failed lookups are reported as StatusUnknown, not as errors.
func (c *checker) checkKeys(ctx context.Context, keys []string) []KeyResult {
	futures := make([]*async.Future[KeyResult], len(keys))
	for i, key := range keys {
		futures[i] = async.Async(ctx, key, c.checkOne)
	}

	settled := async.Settle(futures...)
	out := make([]KeyResult, len(settled))
	for i, res := range settled {
		out[i] = res.Value
		if res.Err != nil && out[i].Key == "" {
			out[i] = KeyResult{Key: keys[i], Status: StatusUnknown, Err: res.Err}
		}
	}
	return out
}

// report prints results and returns an error when any key is not available.
func report(w io.Writer, results []KeyResult) error {
	var unavailable int
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
		if r.Status != StatusAvailable {
			unavailable++
		}
	}
	if unavailable > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnavailable, unavailable, len(results))
	}
	return nil
}

var ErrUnavailable = errors.New("some keys are not available")

// suggest prints one free key per organization name, concurrently.
func suggest(ctx context.Context, c *checker, names []string, w io.Writer) error {
	futures := make([]*async.Future[string], len(names))
	for i, name := range names {
		futures[i] = async.Async(ctx, name, func(ctx context.Context, name string) (string, error) {
			ctx, cancel := c.withTimeout(ctx)
			defer cancel()
			return organization.SuggestKey(ctx, c.lookup, name)
		})
	}

	keys, err := async.WaitAll(ctx, futures...)
	if err != nil {
		return err
	}
	for i, key := range keys {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", names[i], key); err != nil {
			return err
		}
	}
	return nil
}
