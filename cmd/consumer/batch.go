package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thep200/github-user-crawler/pkg/log"
)

const (
	batchSize    = 100
	batchTimeout = 5 * time.Second
)

// enqueue returns a handler decoding each message into T and sending it to
// messages.
func enqueue[T any](ctx context.Context, messages chan<- T) func([]byte) error {
	return func(data []byte) error {
		var msg T
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal message: %w", err)
		}

		select {
		case messages <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}
}

// processBatched flushes messages to save every size messages or every
// timeout, whichever comes first. Pending messages are flushed once ctx is
// done.
func processBatched[T any](ctx context.Context, name string, messages <-chan T, size int,
	timeout time.Duration, logger log.Logger, save func([]T) error) {

	var batch []T
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		logger.Info(ctx, "Processing batch of %d %s", len(batch), name)
		if err := save(batch); err != nil {
			logger.Error(ctx, "Failed to save batch of %s: %v", name, err)
		} else {
			logger.Info(ctx, "Successfully saved batch of %d %s", len(batch), name)
		}
		batch = nil
	}

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case msg := <-messages:
					batch = append(batch, msg)
				default:
					flush()
					return
				}
			}

		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= size {
				flush()
				timer.Reset(timeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(timeout)
		}
	}
}
