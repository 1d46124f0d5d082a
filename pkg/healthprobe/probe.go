// Package healthprobe checks a running server's liveness endpoint.
package healthprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnhealthy is returned when the endpoint answers with a status other than 200.
var ErrUnhealthy = errors.New("healthprobe: unhealthy")

// Probe performs a single GET against url. It returns nil only for a 200
// response. There is no retry and no client timeout; ctx bounds the call.
func Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("healthprobe: build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthprobe: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// ExitCode maps a Probe result to a process exit status.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
