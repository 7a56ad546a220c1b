package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
)

// WaitOption adjusts a single WaitFor call.
type WaitOption func(*waitOptions)

type waitOptions struct {
	timeout   time.Duration
	interval  time.Duration
	onTimeout func(error) error
}

// Timeout overrides Config.AsyncUtilTimeout.
func Timeout(d time.Duration) WaitOption {
	return func(o *waitOptions) { o.timeout = d }
}

// Interval overrides Config.AsyncInterval.
func Interval(d time.Duration) WaitOption {
	return func(o *waitOptions) { o.interval = d }
}

// OnTimeout replaces the error WaitFor returns on timeout. fn receives the
// default timeout error.
func OnTimeout(fn func(error) error) WaitOption {
	return func(o *waitOptions) { o.onTimeout = fn }
}

// WaitFor calls cb until it returns nil, the timeout expires or ctx is
// done. The first check happens immediately, later checks every interval.
//
// The whole call runs inside Config.AsyncWrapper and every check inside
// Config.AdvanceTimersWrapper. On timeout the error wraps ErrTimeout and
// the last error from cb.
//
// Example:
//
//	err := query.WaitFor(ctx, func() error {
//	    _, err := q.GetByText("Loaded")
//	    return err
//	})
func WaitFor(ctx context.Context, cb func() error, opts ...WaitOption) error {
	return waitFor(ctx, GetConfig(), cb, opts)
}

func waitFor(ctx context.Context, cfg Config, cb func() error, opts []WaitOption) error {
	o := waitOptions{timeout: cfg.AsyncUtilTimeout, interval: cfg.AsyncInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.interval <= 0 {
		o.interval = DefaultConfig().AsyncInterval
	}

	return cfg.AsyncWrapper(func() error {
		var last error
		check := func() bool {
			cfg.AdvanceTimersWrapper(func() { last = cb() })
			return last == nil
		}
		if check() {
			return nil
		}

		timer := time.NewTimer(o.timeout)
		defer timer.Stop()
		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return fmt.Errorf("query: WaitFor stopped: %w", errors.Join(ctx.Err(), last))
			case <-timer.C:
				if check() {
					return nil
				}
				err := vtlerrors.New("E052").
					WithDetail(fmt.Sprintf("The condition was not met within %s.", o.timeout)).
					Wrap(last)
				if o.onTimeout != nil {
					return o.onTimeout(err)
				}
				return err
			case <-ticker.C:
				if check() {
					return nil
				}
			}
		}
	})
}

// WaitForElementToBeRemoved waits until cb returns no elements. It fails
// immediately when cb returns none on the first call.
//
// Example:
//
//	err := query.WaitForElementToBeRemoved(ctx, func() []*html.Node {
//	    return q.QueryAll(query.ByText("Loading..."))
//	})
func WaitForElementToBeRemoved(ctx context.Context, cb func() []*html.Node, opts ...WaitOption) error {
	return waitForRemoval(ctx, GetConfig(), cb, opts)
}

// WaitForElementToBeRemoved is the package function using the
// configuration of q.
func (q *Queries) WaitForElementToBeRemoved(ctx context.Context, cb func() []*html.Node, opts ...WaitOption) error {
	return waitForRemoval(ctx, q.Config(), cb, opts)
}

var errStillPresent = errors.New("query: elements are still present")

func waitForRemoval(ctx context.Context, cfg Config, cb func() []*html.Node, opts []WaitOption) error {
	var initial []*html.Node
	cfg.AdvanceTimersWrapper(func() { initial = cb() })
	if len(initial) == 0 {
		return errors.New("query: the elements passed to WaitForElementToBeRemoved are already removed")
	}
	return waitFor(ctx, cfg, func() error {
		if len(cb()) > 0 {
			return errStillPresent
		}
		return nil
	}, opts)
}
