package keepalive

import (
	"context"
	"log"
	"net/http"
	"time"
)

// SelfPing hits the app's own /ping endpoint immediately and then on
// every tick until the context is cancelled. Failures are logged and
// retried on the next tick; there is nothing else to do about them.
func SelfPing(ctx context.Context, appURL string, interval time.Duration) {
	url := appURL + "/ping"
	log.Printf("self-ping configured for %s every %s", url, interval)

	ping := func() {
		resp, err := http.Get(url)
		if err != nil {
			log.Printf("self-ping %s: %v", url, err)
			return
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Printf("self-ping %s: status %d", url, resp.StatusCode)
			return
		}
	}
	ping()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ping()
		}
	}
}
