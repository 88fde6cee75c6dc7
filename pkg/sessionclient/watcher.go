package sessionclient

import (
	"context"
	"time"
)

const defaultWatchInterval = 500 * time.Millisecond

// WatchCache polls the cache for changes made by other processes sharing the
// same store, the equivalent of the browser's cross-tab poller. onChange runs
// on the watcher goroutine each time the stored state differs from the last
// observed one. Blocks until the context is canceled.
func (c *Client) WatchCache(ctx context.Context, interval time.Duration, onChange func(State)) error {
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	last, err := c.cache.Load()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current, err := c.cache.Load()
			if err != nil {
				c.logger.Warn("session cache poll failed", "error", err.Error())
				continue
			}
			if current != last {
				last = current
				if current.Token == "" {
					c.setStatus(StatusUnauthenticated)
				}
				onChange(current)
			}
		}
	}
}
