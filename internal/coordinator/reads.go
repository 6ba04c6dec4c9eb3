package coordinator

import (
	"context"
	"errors"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/cache"
	"github.com/applytrack/applytrack/internal/client"
	"github.com/applytrack/applytrack/internal/timeline"
)

const maxReadRetries = 3

// Application is the read-through for one application record: cached value
// if present, otherwise fetched (with retries on transient failures only)
// and cached. Mutations go through Confirm, never through here.
func (c *Coordinator) Application(ctx context.Context, id string) (application.Application, error) {
	key := cache.ApplicationKey(id)
	app := application.Application{}
	if c.cache.Get(key, &app) {
		return app, nil
	}
	err := retryRead(ctx, func() error {
		var err error
		app, err = c.api.GetApplication(ctx, id)
		return err
	})
	if err != nil {
		return application.Application{}, err
	}
	if err := c.cache.Set(key, app); err != nil {
		c.notifier.Warning("application cache write failed")
	}
	return app, nil
}

// Timeline is the read-through for an application's ordered ledger.
func (c *Coordinator) Timeline(ctx context.Context, id string) ([]timeline.Event, error) {
	key := cache.TimelineKey(id)
	events := []timeline.Event{}
	if c.cache.Get(key, &events) {
		return events, nil
	}
	err := retryRead(ctx, func() error {
		var err error
		events, err = c.api.Timeline(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	timeline.SortEvents(events)
	if err := c.cache.Set(key, events); err != nil {
		c.notifier.Warning("timeline cache write failed")
	}
	return events, nil
}

// retryRead retries idempotent reads on transient failures. Validation and
// not-found responses are permanent.
func retryRead(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		var tErr *client.TransientError
		if errors.As(err, &tErr) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxReadRetries), ctx))
}
